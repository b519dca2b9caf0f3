package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelroll/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show which configuration file would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Discover()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	var explicit string
	if len(args) > 0 {
		explicit = args[0]
	}
	path, err := config.Resolve(explicit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Server:     %s:%d (log: %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	if cfg.Database.Driver == "postgres" {
		fmt.Fprintln(w, "  Database:   postgres")
	} else {
		fmt.Fprintf(w, "  Database:   %s (%s)\n", cfg.Database.Path, cfg.Database.Driver)
	}
	fmt.Fprintf(w, "  Catalog:    %d per page (max %d), sort %s\n",
		cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize, cfg.Catalog.DefaultSort)

	active := cfg.Filters.Spec(time.Now()).Active()
	if len(active) > 0 {
		fmt.Fprintf(w, "  Filters:    %s\n", strings.Join(active, ", "))
	} else {
		fmt.Fprintln(w, "  Filters:    none")
	}

	// Integrations
	integrations := []string{}
	if cfg.TMDB.Enabled() {
		integrations = append(integrations, "tmdb")
	}
	if cfg.YouTube.Enabled() {
		integrations = append(integrations, "youtube")
	}
	if len(integrations) > 0 {
		fmt.Fprintf(w, "  Integrations: %s\n", strings.Join(integrations, ", "))
	}
}
