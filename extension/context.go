// context.go defines the Context interface for extension access to
// notionmcp internals.
//
// Design: Context uses an interface to enable testing with mock
// implementations. Extensions receive Context during Init() and with every
// MCP call, not at construction, because extensions register before the
// API client exists.

package extension

import (
	"github.com/jpl-au/notionmcp/internal/config"
	"github.com/jpl-au/notionmcp/internal/script"
	"github.com/jpl-au/notionmcp/internal/service"
)

// Context provides extensions controlled access to notionmcp internals.
type Context interface {
	// Tools returns the Notion tool service, or nil when no token is set.
	Tools() service.Service

	// Scripts returns the script file store.
	Scripts() *script.Store

	// Config returns the loaded configuration.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	tools   service.Service
	scripts *script.Store
	cfg     *config.Config
}

// NewContext creates a new extension context. tools may be nil.
func NewContext(tools service.Service, scripts *script.Store, cfg *config.Config) Context {
	return &extContext{
		tools:   tools,
		scripts: scripts,
		cfg:     cfg,
	}
}

// Tools returns the Notion tool service.
func (c *extContext) Tools() service.Service {
	return c.tools
}

// Scripts returns the script file store.
func (c *extContext) Scripts() *script.Store {
	return c.scripts
}

// Config returns the loaded configuration.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
