package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samuelcardenasg23/book-play/internal/book"
	"github.com/samuelcardenasg23/book-play/internal/tui"
)

// AddCmd searches, lets the user pick a candidate, enriches it and saves
// the result as a new library record.
type AddCmd struct {
	Query         string `arg:"" optional:"" help:"Initial search query"`
	Status        string `help:"Reading status (FOR_PURCHASE, OWNED, READING, READ); asked interactively when omitted"`
	Price         string `help:"Price paid, e.g. 10.50 (ignored while the book is only wanted)"`
	Progress      int    `help:"Reading progress in percent" default:"0"`
	Rating        string `help:"Personal rating from 0 to 5, e.g. 4.5"`
	Notes         string `help:"Personal notes"`
	NoInteractive bool   `help:"Disable the interactive search UI (pick the first result)"`
}

func (a *AddCmd) Run(app *App) error {
	volumeID, err := a.pickVolume(app)
	if err != nil || volumeID == "" {
		return err
	}

	mapper, err := app.Mapper()
	if err != nil {
		return err
	}

	patch := mapper.MapToRecord(app.Context(), volumeID)
	if patch.IsClear() {
		return fmt.Errorf("could not load metadata for volume %s", volumeID)
	}

	record := book.NewRecord(app.Config.Owner)
	if err := patch.Apply(record); err != nil {
		return fmt.Errorf("applying metadata: %w", err)
	}

	status, err := a.resolveStatus(record.Title)
	if err != nil {
		return err
	}
	record.Status = status

	if err := a.applyPersonalFields(record); err != nil {
		return err
	}
	record.ApplyStatusDefaults(now())

	store, err := app.Store()
	if err != nil {
		return err
	}
	if err := store.Save(app.Context(), record); err != nil {
		return fmt.Errorf("saving book: %w", err)
	}

	slog.Info("Saved book", "id", record.ID, "title", record.Title, "status", record.Status)
	_, err = fmt.Fprintf(app.Out, "Added %q (%s) as %s\n", record.Title, record.ID, tui.StatusStyles[record.Status].Label)
	return err
}

func (a *AddCmd) pickVolume(app *App) (string, error) {
	svc, err := app.SearchService()
	if err != nil {
		return "", err
	}

	if a.NoInteractive {
		if strings.TrimSpace(a.Query) == "" {
			return "", errors.New("a query is required with --no-interactive")
		}
		candidates := svc.Search(app.Context(), a.Query)
		if len(candidates) == 0 {
			return "", fmt.Errorf("no results for %q", a.Query)
		}
		slog.Info("Picked first result", "id", candidates[0].ID, "label", candidates[0].Label)
		return candidates[0].ID, nil
	}

	result, err := searchAndSelect(app.Context(), svc, a.Query)
	if err != nil {
		return "", err
	}
	if result.Action != tui.ActionSelected || result.Selection == nil {
		slog.Info("No book selected, nothing saved")
		return "", nil
	}
	return result.Selection.ID, nil
}

func (a *AddCmd) resolveStatus(title string) (book.Status, error) {
	if a.Status != "" {
		return book.ParseStatus(a.Status)
	}
	if a.NoInteractive {
		return book.StatusForPurchase, nil
	}
	return selectStatus(fmt.Sprintf("Status for %s", title), book.StatusForPurchase)
}

// applyPersonalFields copies the flag values that are visible for the
// chosen status and drops the rest with a warning.
func (a *AddCmd) applyPersonalFields(record *book.Record) error {
	visible := book.VisibleFields(record.Status)

	if a.Price != "" {
		if !visible.Has(book.FieldPrice) {
			slog.Warn("Ignoring price for a book that is not bought yet", "status", record.Status)
		} else {
			price, err := book.ParsePrice(a.Price)
			if err != nil {
				return err
			}
			record.Price = &price
		}
	}

	if a.Progress != 0 {
		if !visible.Has(book.FieldReadingProgress) {
			slog.Warn("Ignoring reading progress for a book that is not started", "status", record.Status)
		} else {
			record.ReadingProgress = a.Progress
		}
	}

	if a.Rating != "" {
		rating, err := strconv.ParseFloat(strings.TrimSpace(a.Rating), 64)
		if err != nil {
			return fmt.Errorf("invalid rating %q: %w", a.Rating, err)
		}
		record.PersonalRating = &rating
	}
	record.PersonalNotes = strings.TrimSpace(a.Notes)

	return record.Validate()
}
