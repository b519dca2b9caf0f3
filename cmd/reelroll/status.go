package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Server and catalog status",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the server's active catalog filters",
	Args:  cobra.NoArgs,
	RunE:  runFiltersCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(filtersCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(cmd.OutOrStdout(), status)
		return nil
	}
	printStatus(cmd.OutOrStdout(), serverURL, status)
	return nil
}

func printStatus(w io.Writer, server string, s *StatusResponse) {
	fmt.Fprintf(w, "reelroll v%s | Server: %s | Status: %s\n\n", s.Version, server, s.Status)

	fmt.Fprintln(w, "Catalog")
	fmt.Fprintf(w, "  Movies:   %d\n", s.Catalog.Movies)
	fmt.Fprintf(w, "  Rated:    %d\n", s.Catalog.Rated)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Enrichment")
	fmt.Fprintf(w, "  Posters:  %s\n", configured(s.Enrichment.Poster))
	fmt.Fprintf(w, "  Trailers: %s\n", configured(s.Enrichment.Trailer))
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func runFiltersCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	filters, err := client.Filters()
	if err != nil {
		return fmt.Errorf("get filters: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, filters)
		return nil
	}

	if len(filters.Active) == 0 {
		fmt.Fprintln(out, "No filters active; every movie is eligible.")
		return nil
	}

	rows := make([][]string, 0, len(filters.Active))
	for _, name := range filters.Active {
		rows = append(rows, []string{name, formatFilterValue(filters.Filters[name])})
	}
	slices.SortFunc(rows, func(a, b []string) int { return strings.Compare(a[0], b[0]) })
	fmt.Fprintln(out, renderTable([]string{"Filter", "Value"}, rows, nil))
	return nil
}

func formatFilterValue(v any) string {
	switch val := v.(type) {
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ", ")
	case nil:
		return "-"
	default:
		return fmt.Sprint(val)
	}
}
