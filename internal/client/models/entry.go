// Package models defines client-side data models used by the ReMood CLI.
package models

// Category classifies an entry. The zero value is not a valid category;
// EntryInput.Normalize replaces it with CategoryGeneral.
type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryWork     Category = "work"
	CategoryFamily   Category = "family"
	CategoryHealth   Category = "health"
	CategorySocial   Category = "social"
	CategoryPersonal Category = "personal"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryGeneral,
	CategoryWork,
	CategoryFamily,
	CategoryHealth,
	CategorySocial,
	CategoryPersonal,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

const (
	MinMood = 1
	MaxMood = 5
)

// Entry is a journal record as exchanged with the remote collection.
//
// For private entries (IsEncrypted) the server only ever stores the
// ciphertext envelope in Content. Entries held by the client cache carry the
// decrypted text instead, or a placeholder with DecryptionFailed set.
type Entry struct {
	ID          int64     `json:"id"`
	Date        Timestamp `json:"date"`
	MoodScore   int       `json:"mood_score"`
	Content     string    `json:"content"`
	Category    Category  `json:"category"`
	IsEncrypted bool      `json:"is_encrypted"`
	IsBreakdown bool      `json:"is_breakdown"`
	CreatedAt   Timestamp `json:"created_at"`
	Username    string    `json:"username"`

	// DecryptionFailed is only ever set on private entries owned by the
	// current user whose content could not be recovered.
	DecryptionFailed bool `json:"decryption_failed"`
}

// Input converts an entry back into the payload accepted by create/update.
// Content is copied as held, so callers editing a cached private entry get
// the plaintext.
func (e Entry) Input() EntryInput {
	in := EntryInput{
		MoodScore:   e.MoodScore,
		Content:     e.Content,
		Category:    e.Category,
		IsEncrypted: e.IsEncrypted,
		IsBreakdown: e.IsBreakdown,
	}
	if !e.Date.IsZero() {
		d := e.Date
		in.Date = &d
	}
	return in
}
