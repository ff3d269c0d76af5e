package cmd

import (
	"fmt"
	"text/tabwriter"
)

// SearchCmd runs a one-off search and prints the candidates.
type SearchCmd struct {
	Query  string `arg:"" help:"Free-text query (title, author, ISBN)"`
	Format string `help:"Output format" enum:"table,json,yaml" default:"table"`
}

func (s *SearchCmd) Run(app *App) error {
	svc, err := app.SearchService()
	if err != nil {
		return err
	}

	candidates := svc.Search(app.Context(), s.Query)

	if s.Format != formatTable {
		return writeStructured(app.Out, s.Format, candidates)
	}

	if len(candidates) == 0 {
		_, err := fmt.Fprintf(app.Out, "No results for %q\n", s.Query)
		return err
	}

	tw := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tBOOK")
	for _, c := range candidates {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Label)
	}
	return tw.Flush()
}
