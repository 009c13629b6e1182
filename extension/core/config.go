// config.go implements the "notionmcp config" command for configuration
// management.
//
// Design: Config follows a cascade model similar to git: local config
// (.notionmcp/config.yaml) takes precedence over global
// ($XDG_CONFIG_HOME/notionmcp/config.yaml). The --local flag forces use of
// local config even if it doesn't exist yet. Environment variables
// override both at runtime; values shown are the effective ones.

package core

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/notionmcp/cmd"
	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/config"
	"github.com/jpl-au/notionmcp/internal/log"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  notionmcp config                        # show config
  notionmcp config notion.version         # show one value
  notionmcp config notion.token ntn_...   # set the API token

Configuration locations:
  Global: $XDG_CONFIG_HOME/notionmcp/config.yaml
  Local:  .notionmcp/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.

See 'notionmcp guide config' for every key.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.notionmcp/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	// Load config: local if exists, otherwise global
	// --local flag forces local even if it doesn't exist yet
	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Origin(log.OriginCLI).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Origin(log.OriginCLI).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Origin(log.OriginCLI).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// Value not logged: notion.token is a secret
		log.Event("core:config", "set").Origin(log.OriginCLI).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}

		shown, _ := cfg.Get(args[0])
		if args[0] == "notion.token" {
			shown = config.MaskToken(cfg.Notion.Token)
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": shown, "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], shown, scopeName)
	}
	return nil
}
