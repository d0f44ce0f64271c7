package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/caretext/rope/pkg/docstore"
	"github.com/caretext/rope/pkg/registry"
	"github.com/caretext/rope/pkg/search"
)

// Server holds the API server's dependencies.
type Server struct {
	registry *registry.Registry
	search   *search.Engine
	config   ServerConfig
	metrics  *Metrics
}

// NewServer returns a Server wired to the given registry and search
// engine.
func NewServer(reg *registry.Registry, searchEngine *search.Engine, config ServerConfig, metrics *Metrics) *Server {
	return &Server{registry: reg, search: searchEngine, config: config, metrics: metrics}
}

func docResponse(id ksuid.KSUID, stat registry.Stats) DocumentResponse {
	return DocumentResponse{ID: id.String(), Bytes: stat.Bytes, Chars: stat.Chars, Lines: stat.Lines}
}

func parseDocumentID(r *http.Request) (ksuid.KSUID, error) {
	return docstore.ParseDocumentID(chi.URLParam(r, "id"))
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Report the API's liveness
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleCreateDocument godoc
//
//	@Summary		Create a document
//	@Description	Create a new document from initial content
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateDocumentRequest	true	"Initial content"
//	@Success		200		{object}	DocumentResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		500		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents [post]
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordDocOperation("create", false, time.Since(start))
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	doc, err := s.registry.Create(req.Content)
	if err != nil {
		s.metrics.RecordDocOperation("create", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to create document: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordDocOperation("create", true, time.Since(start))
	sendSuccess(w, docResponse(doc.ID, doc.Stat()))
}

// handleGetDocument godoc
//
//	@Summary		Get a document's content
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents/{id} [get]
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseDocumentID(r)
	if err != nil {
		sendError(w, "Invalid document id", http.StatusBadRequest)
		return
	}
	doc, err := s.registry.GetOrOpen(id)
	if err != nil {
		s.metrics.RecordDocOperation("get", false, time.Since(start))
		sendError(w, fmt.Sprintf("Document not found: %v", err), http.StatusNotFound)
		return
	}
	s.metrics.RecordDocOperation("get", true, time.Since(start))
	sendSuccess(w, map[string]interface{}{
		"id":      id.String(),
		"content": doc.Text(),
	})
}

// handleAppend godoc
//
//	@Summary		Append text to a document
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Document ID"
//	@Param			body	body		AppendRequest	true	"Text to append"
//	@Success		200		{object}	DocumentResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents/{id}/append [post]
func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseDocumentID(r)
	if err != nil {
		sendError(w, "Invalid document id", http.StatusBadRequest)
		return
	}
	var req AppendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	doc, err := s.registry.GetOrOpen(id)
	if err != nil {
		s.metrics.RecordDocOperation("append", false, time.Since(start))
		sendError(w, fmt.Sprintf("Document not found: %v", err), http.StatusNotFound)
		return
	}
	if err := doc.Append(req.Text); err != nil {
		s.metrics.RecordDocOperation("append", false, time.Since(start))
		sendError(w, fmt.Sprintf("Append failed: %v", err), http.StatusBadRequest)
		return
	}
	s.metrics.RecordDocOperation("append", true, time.Since(start))
	sendSuccess(w, docResponse(id, doc.Stat()))
}

// handleReplaceRange godoc
//
//	@Summary		Replace a byte range within a document
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Document ID"
//	@Param			body	body		ReplaceRangeRequest	true	"Range and replacement"
//	@Success		200		{object}	DocumentResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents/{id} [put]
func (s *Server) handleReplaceRange(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseDocumentID(r)
	if err != nil {
		sendError(w, "Invalid document id", http.StatusBadRequest)
		return
	}
	var req ReplaceRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	doc, err := s.registry.GetOrOpen(id)
	if err != nil {
		s.metrics.RecordDocOperation("replace_range", false, time.Since(start))
		sendError(w, fmt.Sprintf("Document not found: %v", err), http.StatusNotFound)
		return
	}
	if err := doc.ReplaceRange(req.Start, req.End, req.Replacement); err != nil {
		s.metrics.RecordDocOperation("replace_range", false, time.Since(start))
		sendError(w, fmt.Sprintf("Replace failed: %v", err), http.StatusBadRequest)
		return
	}
	s.metrics.RecordDocOperation("replace_range", true, time.Since(start))
	sendSuccess(w, docResponse(id, doc.Stat()))
}

// handleDeleteDocument godoc
//
//	@Summary		Delete a document
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	APIResponse
//	@Failure		500	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents/{id} [delete]
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseDocumentID(r)
	if err != nil {
		sendError(w, "Invalid document id", http.StatusBadRequest)
		return
	}
	s.registry.Close(id) // best-effort snapshot before delete
	if err := s.registry.Delete(id); err != nil {
		s.metrics.RecordDocOperation("delete", false, time.Since(start))
		sendError(w, fmt.Sprintf("Delete failed: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordDocOperation("delete", true, time.Since(start))
	sendSuccess(w, map[string]string{"id": id.String()})
}

// handleStats godoc
//
//	@Summary		Get a document's size statistics
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	DocumentResponse
//	@Failure		404	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents/{id}/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id, err := parseDocumentID(r)
	if err != nil {
		sendError(w, "Invalid document id", http.StatusBadRequest)
		return
	}
	doc, err := s.registry.GetOrOpen(id)
	if err != nil {
		sendError(w, fmt.Sprintf("Document not found: %v", err), http.StatusNotFound)
		return
	}
	sendSuccess(w, docResponse(id, doc.Stat()))
}

// handleListDocuments godoc
//
//	@Summary		List documents
//	@Tags			documents
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Failure		500	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents [get]
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.registry.List()
	if err != nil {
		sendError(w, fmt.Sprintf("List failed: %v", err), http.StatusInternalServerError)
		return
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	sendSuccess(w, out)
}

// handleSearch godoc
//
//	@Summary		Find a substring within a document
//	@Tags			search
//	@Produce		json
//	@Param			id	path		string	true	"Document ID"
//	@Param			q	query		string	true	"Substring to find"
//	@Success		200	{object}	APIResponse
//	@Failure		400	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents/{id}/search [get]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	id, err := parseDocumentID(r)
	if err != nil {
		sendError(w, "Invalid document id", http.StatusBadRequest)
		return
	}
	q := r.URL.Query().Get("q")
	matches, err := s.search.Find(context.Background(), id, q)
	if err != nil {
		sendError(w, fmt.Sprintf("Search failed: %v", err), http.StatusBadRequest)
		return
	}
	sendSuccess(w, matches)
}

// handleLineRange godoc
//
//	@Summary		Extract a line range from a document
//	@Tags			search
//	@Produce		json
//	@Param			id		path		string	true	"Document ID"
//	@Param			start	query		int		true	"Start line (inclusive)"
//	@Param			end		query		int		true	"End line (exclusive)"
//	@Success		200		{object}	APIResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/documents/{id}/lines [get]
func (s *Server) handleLineRange(w http.ResponseWriter, r *http.Request) {
	id, err := parseDocumentID(r)
	if err != nil {
		sendError(w, "Invalid document id", http.StatusBadRequest)
		return
	}
	startLine, _ := strconv.Atoi(r.URL.Query().Get("start"))
	endLine, _ := strconv.Atoi(r.URL.Query().Get("end"))
	text, err := s.search.LineRange(context.Background(), id, startLine, endLine)
	if err != nil {
		sendError(w, fmt.Sprintf("Line range failed: %v", err), http.StatusBadRequest)
		return
	}
	sendSuccess(w, map[string]string{"text": text})
}
