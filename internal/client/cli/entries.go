package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/remood/internal/client/models"
	"github.com/dmitrijs2005/remood/internal/common"
)

// sealed reports whether e still carries an envelope the user cannot read
// here: another user's private entry, or a private entry fetched outside the
// cache.
func (a *App) sealed(e models.Entry) bool {
	if !e.IsEncrypted || e.DecryptionFailed {
		return false
	}
	if e.Username != "" && e.Username != a.session.Username() {
		return true
	}
	return !slices.ContainsFunc(a.entries.Entries(), func(c models.Entry) bool {
		return c.ID == e.ID
	})
}

func parseID(arg string) (int64, error) {
	if arg == "" {
		return 0, fmt.Errorf("%w: entry id is required", common.ErrValidation)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q is not an entry id", common.ErrValidation, arg)
	}
	return id, nil
}

// List fetches the user's entries and prints them.
func (a *App) List(ctx context.Context) error {
	var entries []models.Entry
	err := a.busy("Loading entries", func() (err error) {
		entries, err = a.entries.FetchEntries(ctx)
		return err
	})
	if err != nil {
		return err
	}
	a.palette.printList(a.out, entries, a.sealed)
	return nil
}

// Reload drops the cached entries and decrypts everything again.
func (a *App) Reload(ctx context.Context) error {
	err := a.busy("Reloading entries", func() error {
		return a.entries.ReloadEntries(ctx)
	})
	if err != nil {
		return err
	}
	a.palette.printList(a.out, a.entries.Entries(), a.sealed)
	return nil
}

// Feed prints the public entries of all users.
func (a *App) Feed(ctx context.Context) error {
	var entries []models.Entry
	err := a.busy("Loading feed", func() (err error) {
		entries, err = a.entries.FetchPublicEntries(ctx)
		return err
	})
	if err != nil {
		return err
	}
	a.palette.printList(a.out, entries, a.sealed)
	return nil
}

// Share prints one user's public entries; without a name it shows the
// logged-in user's own.
func (a *App) Share(ctx context.Context, username string) error {
	if username == "" {
		username = a.session.Username()
	}
	if username == "" {
		return fmt.Errorf("%w: usage: share <username>", common.ErrValidation)
	}

	var entries []models.Entry
	err := a.busy("Loading shared entries", func() (err error) {
		entries, err = a.entries.FetchUserPublicEntries(ctx, username)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, a.palette.title.Sprintf("Public entries of %s", username))
	a.palette.printList(a.out, entries, a.sealed)
	return nil
}

// Show prints a single entry in full.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	e, err := a.entries.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	a.palette.printEntry(a.out, e, a.sealed(e))
	return nil
}

// promptEntry asks for every field of an entry, offering cur as defaults.
// keepContent allows an empty answer to keep cur.Content.
func (a *App) promptEntry(cur models.EntryInput, keepContent bool) (models.EntryInput, error) {
	in := cur

	mood, err := GetInt(a.reader, "Mood from 1 (awful) to 5 (great)", cur.MoodScore, models.MinMood, models.MaxMood, a.out)
	if err != nil {
		return in, err
	}
	in.MoodScore = mood

	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	cat, err := getSimpleText(a.reader, fmt.Sprintf("Category (%s) [%s]", strings.Join(names, ", "), cur.Category), a.out)
	if err != nil {
		return in, err
	}
	if cat != "" {
		c := models.Category(strings.ToLower(cat))
		if !c.Valid() {
			return in, fmt.Errorf("%w: unknown category %q", common.ErrValidation, cat)
		}
		in.Category = c
	}

	prompt := "How was your day?"
	if keepContent {
		prompt += " (empty keeps the current text)"
	}
	text, err := GetMultiline(a.reader, prompt, a.out)
	if err != nil {
		return in, err
	}
	switch {
	case text != "":
		in.Content = text
	case !keepContent:
		return in, fmt.Errorf("%w: content is required", common.ErrValidation)
	}

	private, err := GetYesNo(a.reader, "Private (encrypted, visible only to you)?", cur.IsEncrypted, a.out)
	if err != nil {
		return in, err
	}
	in.IsEncrypted = private

	breakdown, err := GetYesNo(a.reader, "Mark as breakdown?", cur.IsBreakdown, a.out)
	if err != nil {
		return in, err
	}
	in.IsBreakdown = breakdown

	return in, nil
}

// New prompts for a new entry and saves it.
func (a *App) New(ctx context.Context) error {
	in, err := a.promptEntry(models.EntryInput{MoodScore: 3, Category: models.CategoryGeneral}, false)
	if err != nil {
		return err
	}

	var created models.Entry
	err = a.busy("Saving", func() (err error) {
		created, err = a.entries.CreateEntry(ctx, in)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, a.palette.ok.Sprintf("Entry #%d saved.", created.ID))
	return nil
}

// Edit prompts for new values of an existing entry and saves them.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	cur, err := a.entries.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if cur.Username != "" && a.session.Username() != "" && cur.Username != a.session.Username() {
		return fmt.Errorf("%w: you can only edit your own entries", common.ErrValidation)
	}

	// the text of an unreadable entry must not be sent back as content
	keep := !cur.DecryptionFailed && !a.sealed(cur)
	if !keep {
		fmt.Fprintln(a.out, a.palette.warn.Sprint("The current text cannot be read here; enter the full text again."))
	}

	in, err := a.promptEntry(cur.Input(), keep)
	if err != nil {
		return err
	}

	err = a.busy("Saving", func() error {
		_, err := a.entries.UpdateEntry(ctx, id, in)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, a.palette.ok.Sprintf("Entry #%d updated.", id))
	return nil
}

// Theme toggles the dark palette.
func (a *App) Theme(ctx context.Context) error {
	dark, err := a.theme.ToggleDarkMode(ctx)
	if err != nil {
		return err
	}
	a.palette = newPalette(dark)

	mode := "light"
	if dark {
		mode = "dark"
	}
	fmt.Fprintln(a.out, a.palette.ok.Sprintf("Switched to %s theme.", mode))
	return nil
}
