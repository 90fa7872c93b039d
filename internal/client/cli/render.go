package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/remood/internal/client/models"
	"github.com/fatih/color"
)

type palette struct {
	title  *color.Color
	accent *color.Color
	ok     *color.Color
	warn   *color.Color
	dim    *color.Color
}

func newPalette(dark bool) palette {
	if dark {
		return palette{
			title:  color.New(color.FgHiWhite, color.Bold),
			accent: color.New(color.FgHiCyan),
			ok:     color.New(color.FgHiGreen),
			warn:   color.New(color.FgHiYellow),
			dim:    color.New(color.FgHiBlack),
		}
	}
	return palette{
		title:  color.New(color.FgBlue, color.Bold),
		accent: color.New(color.FgBlue),
		ok:     color.New(color.FgGreen),
		warn:   color.New(color.FgRed),
		dim:    color.New(color.FgHiBlack),
	}
}

var moodEmoji = [...]string{"😢", "😕", "😐", "🙂", "😊"}

func moodLabel(score int) string {
	if score < models.MinMood || score > models.MaxMood {
		return "?"
	}
	return fmt.Sprintf("%s %d/5", moodEmoji[score-1], score)
}

const previewLen = 60

func preview(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	if utf8.RuneCountInString(line) <= previewLen {
		return line
	}
	r := []rune(line)
	return string(r[:previewLen-1]) + "…"
}

func entryTime(e models.Entry) time.Time {
	if !e.Date.IsZero() {
		return e.Date.Time
	}
	return e.CreatedAt.Time
}

// header renders the one-line summary of an entry.
func (p palette) header(e models.Entry) string {
	parts := []string{
		p.accent.Sprintf("#%d", e.ID),
		entryTime(e).Local().Format("2006-01-02 15:04"),
		moodLabel(e.MoodScore),
		string(e.Category),
	}
	if e.IsEncrypted {
		parts = append(parts, p.dim.Sprint("private"))
	}
	if e.IsBreakdown {
		parts = append(parts, p.warn.Sprint("breakdown"))
	}
	return strings.Join(parts, "  ")
}

// content renders what may be shown of an entry's text. Sealed entries still
// carry their envelope, which is never printed.
func (p palette) content(e models.Entry, sealed bool) string {
	switch {
	case e.DecryptionFailed:
		return p.warn.Sprint("⚠ " + e.Content)
	case sealed:
		return p.dim.Sprint("[encrypted]")
	default:
		return e.Content
	}
}

func (p palette) printList(w io.Writer, entries []models.Entry, sealed func(models.Entry) bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, p.dim.Sprint("No entries."))
		return
	}
	for _, e := range entries {
		text := p.content(e, sealed(e))
		if !e.DecryptionFailed && !sealed(e) {
			text = preview(text)
		}
		fmt.Fprintf(w, "%s\n    %s\n", p.header(e), text)
	}
}

func (p palette) printEntry(w io.Writer, e models.Entry, sealed bool) {
	fmt.Fprintln(w, p.header(e))
	if e.Username != "" {
		fmt.Fprintln(w, p.dim.Sprint("by "+e.Username))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.content(e, sealed))
}
