/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, builds the Notion client and script store, and wires up
// extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before configuration is read. The Context is created
// once and shared across all extensions.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/config"
	"github.com/jpl-au/notionmcp/internal/log"
	"github.com/jpl-au/notionmcp/internal/notion"
	"github.com/jpl-au/notionmcp/internal/script"
	"github.com/jpl-au/notionmcp/internal/service"
	"github.com/jpl-au/notionmcp/internal/tools"
)

// offlineCommands lists commands that run without a Notion token.
// Built dynamically from bootstrap commands plus extension-declared
// offline commands.
var offlineCommands map[string]bool

// buildOfflineCommands creates the set of commands that skip the token check.
//
// When adding a new command: if it's a cobra built-in or a bootstrap
// command, add it here. Otherwise, implement extension.Offline in your
// extension.
func buildOfflineCommands() map[string]bool {
	cmds := map[string]bool{
		"notionmcp":  true, // bare root prints help
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if o, ok := ext.(extension.Offline); ok {
			for _, name := range o.OfflineCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads config and builds the shared Context.
//
// The Notion client is only built when a token is available; without one
// the Context carries a nil tool service and token-requiring commands are
// stopped by PersistentPreRunE.
func initExtensions(origin string) error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		var svc service.Service
		if token := cfg.Token(); token != "" {
			client := notion.New(token,
				notion.WithBaseURL(cfg.BaseURL()),
				notion.WithVersion(cfg.APIVersion()),
				notion.WithTimeout(cfg.Timeout()),
			)
			svc = tools.New(client, tools.WithOrigin(origin))
			log.SetIntegration(token)
		}

		extContext = extension.NewContext(svc, script.New(cfg.ScriptsDir()), cfg)

		// Inject the shared context into all Initializable extensions.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// Context returns the shared extension Context. It is nil until a command
// has started running.
func Context() extension.Context { return extContext }

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build offlineCommands after all extensions are registered
		offlineCommands = buildOfflineCommands()
	})
}
