package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/samuelcardenasg23/book-play/internal/book"
	"github.com/samuelcardenasg23/book-play/internal/tui"
)

// ListCmd prints the owner's library, newest first.
type ListCmd struct {
	Status string `help:"Only show books with this status"`
	Format string `help:"Output format" enum:"table,json,yaml" default:"table"`
}

func (l *ListCmd) Run(app *App) error {
	var filter *book.Status
	if l.Status != "" {
		status, err := book.ParseStatus(l.Status)
		if err != nil {
			return err
		}
		filter = &status
	}

	store, err := app.Store()
	if err != nil {
		return err
	}

	records, err := store.List(app.Context(), app.Config.Owner, filter)
	if err != nil {
		return err
	}

	if l.Format != formatTable {
		return writeStructured(app.Out, l.Format, records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(app.Out, "No books yet")
		return err
	}

	tw := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tAUTHORS\tPRICE")
	for _, r := range records {
		price := "-"
		if r.Price != nil {
			price = r.Price.Format()
		}
		authors := strings.Join(r.Authors, ", ")
		if authors == "" {
			authors = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, tui.StatusStyles[r.Status].Label, r.Title, authors, price)
	}
	return tw.Flush()
}

// FieldsCmd prints the fields the entry form shows for a status.
type FieldsCmd struct {
	Status string `arg:"" help:"Reading status"`
}

func (f *FieldsCmd) Run(app *App) error {
	status, err := book.ParseStatus(f.Status)
	if err != nil {
		return err
	}
	for _, field := range book.VisibleFields(status).Sorted() {
		if _, err := fmt.Fprintln(app.Out, field); err != nil {
			return err
		}
	}
	return nil
}

// ShowCmd prints one library record.
type ShowCmd struct {
	ID     string `arg:"" help:"Record ID as printed by list"`
	Format string `help:"Output format" enum:"json,yaml" default:"yaml"`
}

func (s *ShowCmd) Run(app *App) error {
	store, err := app.Store()
	if err != nil {
		return err
	}
	record, err := store.Get(app.Context(), app.Config.Owner, s.ID)
	if err != nil {
		return err
	}
	return writeStructured(app.Out, s.Format, record)
}
