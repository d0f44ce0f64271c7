package api

// APIResponse is the standard envelope for every JSON response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateDocumentRequest is the body of POST /api/v1/documents.
type CreateDocumentRequest struct {
	Content string `json:"content"`
}

// DocumentResponse describes a document's identity and current size.
type DocumentResponse struct {
	ID    string `json:"id"`
	Bytes int    `json:"bytes"`
	Chars int    `json:"chars"`
	Lines int    `json:"lines"`
}

// AppendRequest is the body of POST /api/v1/documents/{id}/append.
type AppendRequest struct {
	Text string `json:"text"`
}

// ReplaceRangeRequest is the body of PUT /api/v1/documents/{id}.
type ReplaceRangeRequest struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Replacement string `json:"replacement"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Port    int
	APIKey  string
	DataDir string
}
