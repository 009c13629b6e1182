/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE loads configuration, configures logging and
// builds the extension Context for every command. Commands that call the
// Notion API additionally require a token; the offlineCommands map lists
// the ones that don't.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpl-au/notionmcp/internal/config"
	"github.com/jpl-au/notionmcp/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "notionmcp",
	Short: "Notion tools for MCP clients and the command line",
	Long: `An MCP server exposing Notion search, page and database tools, with a
matching command line for each tool.

Run "notionmcp guide" to get started.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		cmdName := topLevelCmdName(cmd)
		if err := initExtensions(originFor(cmdName)); err != nil {
			return jsonFailure(cmd, fmt.Errorf("initialise extensions: %w", err))
		}
		if err := setupLogging(extContext.Config()); err != nil {
			return jsonFailure(cmd, err)
		}

		if !offlineCommands[cmdName] {
			if _, err := extContext.Config().RequireToken(); err != nil {
				return jsonFailure(cmd, err)
			}
		}
		return nil
	},
}

// jsonFailure prints err as JSON when -o json is set and silences cobra's
// own error line. The error is still returned so the exit code is 1.
func jsonFailure(cmd *cobra.Command, err error) error {
	if JSON() {
		_ = PrintJSON(map[string]string{"error": err.Error()})
		cmd.SilenceErrors = true
	}
	return err
}

// setupLogging sends slog output to stderr at the configured level. stdout
// is left for command output and MCP messages.
func setupLogging(cfg *config.Config) error {
	name := logLevel
	if name == "" {
		name = cfg.LogLevel()
	}
	lvl, err := config.ParseLevel(name)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// originFor reports whether calls made by a command come from an MCP client.
func originFor(cmdName string) string {
	if cmdName == "serve" {
		return log.OriginMCP
	}
	return log.OriginCLI
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "notionmcp page <id>", returns "page".
// For "notionmcp script ls", returns "script".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions and executes the command.
// Interrupts cancel the command context. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	registerExtensions()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	log.Close()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
