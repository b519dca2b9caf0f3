package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List movies from the catalog",
	Long: `List one page of eligible movies.

Examples:
  reelroll movies                          # Top rated, first page
  reelroll movies --sort year --page 2     # Newest first, second page
  reelroll movies --category Horror --min-votes 50000
  reelroll movies --exclude-genres Drama,Romance`,
	Args: cobra.NoArgs,
	RunE: runMoviesCmd,
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Pick a random eligible movie",
	Long: `Pick one movie uniformly at random from the eligible set.

Examples:
  reelroll random
  reelroll random --category Comedy --year 1999`,
	Args: cobra.NoArgs,
	RunE: runRandomCmd,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowCmd,
}

func init() {
	rootCmd.AddCommand(moviesCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(showCmd)

	addPageFlags(moviesCmd)
	for _, cmd := range []*cobra.Command{moviesCmd, randomCmd} {
		addFacetFlags(cmd)
	}
}

// addPageFlags registers pagination and sort flags.
func addPageFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("page", 1, "Page number (starting at 1)")
	f.Int("limit", 0, "Movies per page (default: server setting)")
	f.String("sort", "", "Sort order: rating, releaseDate, title, year, random")
}

// addFacetFlags registers the narrowing and filter override flags.
func addFacetFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("year", 0, "Only movies released in this year")
	f.String("category", "", "Only movies in this genre")
	f.Int("min-votes", 0, "Override minimum vote count")
	f.Float64("min-rating", 0, "Override minimum average rating")
	f.Int("min-runtime", 0, "Override minimum runtime in minutes")
	f.Int("max-year", 0, "Override latest release year")
	f.StringSlice("exclude-genres", nil, "Override excluded genres")
	f.Bool("exclude-adult", true, "Override adult title exclusion")
}

// queryFromFlags builds the request query from the flags the user set.
// Unset flags are omitted so the server defaults apply.
func queryFromFlags(cmd *cobra.Command) (url.Values, error) {
	q := url.Values{}
	f := cmd.Flags()

	if f.Lookup("page") != nil && f.Changed("page") {
		page, _ := f.GetInt("page")
		if page < 1 {
			return nil, fmt.Errorf("--page must be at least 1, got %d", page)
		}
		// The API counts pages from zero.
		q.Set("page", strconv.Itoa(page-1))
	}

	ints := map[string]string{
		"limit":       "limit",
		"year":        "year",
		"min-votes":   "min_votes",
		"min-runtime": "min_runtime",
		"max-year":    "max_year",
	}
	for flag, param := range ints {
		if f.Lookup(flag) == nil || !f.Changed(flag) {
			continue
		}
		v, _ := f.GetInt(flag)
		q.Set(param, strconv.Itoa(v))
	}

	if f.Lookup("sort") != nil && f.Changed("sort") {
		v, _ := f.GetString("sort")
		q.Set("sort", v)
	}
	if f.Changed("category") {
		v, _ := f.GetString("category")
		q.Set("category", v)
	}
	if f.Changed("min-rating") {
		v, _ := f.GetFloat64("min-rating")
		q.Set("min_rating", strconv.FormatFloat(v, 'f', -1, 64))
	}
	if f.Changed("exclude-genres") {
		v, _ := f.GetStringSlice("exclude-genres")
		q.Set("exclude_genres", strings.Join(v, ","))
	}
	if f.Changed("exclude-adult") {
		v, _ := f.GetBool("exclude-adult")
		q.Set("exclude_adult", strconv.FormatBool(v))
	}
	return q, nil
}

func runMoviesCmd(cmd *cobra.Command, args []string) error {
	q, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	movies, err := client.Movies(q)
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, movies)
		return nil
	}

	if len(movies) == 0 {
		fmt.Fprintln(out, "No movies found.")
		return nil
	}
	fmt.Fprintln(out, renderMovies(movies))
	return nil
}

func runRandomCmd(cmd *cobra.Command, args []string) error {
	q, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	movie, err := client.Random(q)
	if IsCode(err, "NO_ELIGIBLE_TITLES") {
		return fmt.Errorf("no movies match the current filters")
	}
	if err != nil {
		return fmt.Errorf("random pick: %w", err)
	}

	if jsonOutput {
		printJSON(cmd.OutOrStdout(), movie)
		return nil
	}
	printMovie(cmd.OutOrStdout(), movie)
	return nil
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	movie, err := client.Movie(args[0])
	if IsCode(err, "NOT_FOUND") {
		return fmt.Errorf("movie %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("show movie: %w", err)
	}

	if jsonOutput {
		printJSON(cmd.OutOrStdout(), movie)
		return nil
	}
	printMovie(cmd.OutOrStdout(), movie)
	return nil
}
