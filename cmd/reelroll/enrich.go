package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [title]",
	Short: "Look up poster and trailer for a movie",
	Long: `Look up a poster (TMDB) and trailer (YouTube) for a movie.

Examples:
  reelroll enrich "Heat" --year 1995
  reelroll enrich --id tt0113277`,
	Args: cobra.ArbitraryArgs,
	RunE: runEnrichCmd,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.Flags().Int("year", 0, "Release year hint")
	enrichCmd.Flags().String("id", "", "IMDb ID (tt...)")
}

func runEnrichCmd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	year, _ := cmd.Flags().GetInt("year")
	id, _ := cmd.Flags().GetString("id")
	if title == "" && id == "" {
		return fmt.Errorf("a title or --id is required")
	}

	client := NewClient(serverURL)
	e, err := client.Enrich(title, year, id)
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, e)
		return nil
	}

	heading := e.Title
	if e.Year > 0 {
		heading = fmt.Sprintf("%s (%d)", e.Title, e.Year)
	}
	fmt.Fprintln(out, heading)
	fmt.Fprintf(out, "  Poster:   %s\n", orNone(e.PosterURL))
	fmt.Fprintf(out, "  Trailer:  %s\n", orNone(e.TrailerURL))
	if e.Description != "" {
		fmt.Fprintf(out, "\n  %s\n", e.Description)
	}
	if len(e.Unavailable) > 0 {
		fmt.Fprintf(out, "  Unavailable: %s (try again later)\n", strings.Join(e.Unavailable, ", "))
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
