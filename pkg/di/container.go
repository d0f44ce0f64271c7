// Package di wires the document service's dependencies: configuration,
// durable snapshot storage, the open-document registry, and the
// content search engine.
package di

import (
	"github.com/caretext/rope/pkg/config"
	"github.com/caretext/rope/pkg/docstore"
	"github.com/caretext/rope/pkg/registry"
	"github.com/caretext/rope/pkg/search"
)

// Container holds every dependency the CLI and API server need, built
// once from a Config.
type Container struct {
	config   *config.Config
	store    *docstore.Store
	registry *registry.Registry
	search   *search.Engine
}

// NewContainer opens the docstore at cfg.DataDir and wires the
// registry and search engine on top of it.
func NewContainer(cfg *config.Config) (*Container, error) {
	store, err := docstore.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	reg := registry.New(cfg.DataDir, store, cfg.Tree.FsyncInterval())
	return &Container{
		config:   cfg,
		store:    store,
		registry: reg,
		search:   search.New(reg),
	}, nil
}

// Config returns the container's configuration.
func (c *Container) Config() *config.Config { return c.config }

// Registry returns the open-document registry.
func (c *Container) Registry() *registry.Registry { return c.registry }

// Search returns the content search engine.
func (c *Container) Search() *search.Engine { return c.search }

// Close snapshots every open document and releases the docstore.
func (c *Container) Close() error {
	if err := c.registry.CloseAll(); err != nil {
		c.store.Close()
		return err
	}
	return c.store.Close()
}
