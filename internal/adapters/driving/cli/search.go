package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// searchHint is printed for an empty query.
const searchHint = "Start typing to search transcriptions"

var (
	searchLimit  int
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search transcriptions",
	Long: `Searches transcribed audio and prints each match with the matched
text highlighted.

Multiple arguments are joined with spaces. On a terminal matches are
highlighted in colour; when piped they are wrapped in [[ and ]].

Formats:
  text      file name, timestamp and highlighted transcript (default)
  markdown  matches in bold
  pretty    markdown rendered for the terminal
  json      results with their highlight segments`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = all)")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", FormatText, "output format: text, markdown, pretty or json")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	switch searchFormat {
	case FormatText, FormatMarkdown, FormatPretty, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q", searchFormat)
	}
	if searchLimit < 0 {
		return errors.New("limit must not be negative")
	}

	out := cmd.OutOrStdout()
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(out, searchHint)
		return nil
	}

	if err := requireAPI(); err != nil {
		return err
	}

	snap := searchDispatcher.Dispatch(cmd.Context(), query)
	if snap.Failed {
		return fmt.Errorf("search for %q failed", query)
	}

	results := snap.Results
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}
	views := buildViews(results, query)

	if len(views) == 0 && searchFormat != FormatJSON {
		fmt.Fprintf(out, "No results found for %q\n", query)
		return nil
	}

	switch searchFormat {
	case FormatJSON:
		return writeJSON(out, views)
	case FormatMarkdown:
		fmt.Fprint(out, renderMarkdown(views, query))
	case FormatPretty:
		rendered, err := renderPretty(renderMarkdown(views, query), terminalWidth(out))
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
	default:
		writeText(out, views, matchStyler(out))
	}
	return nil
}
