package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/remood/internal/common"
	"github.com/go-playground/validator/v10"
)

// validate is shared; it caches struct metadata.
var validate = validator.New()

// EntryInput is the payload of create and update requests.
type EntryInput struct {
	MoodScore   int        `json:"mood_score" validate:"min=1,max=5"`
	Content     string     `json:"content" validate:"required"`
	Category    Category   `json:"category" validate:"oneof=general work family health social personal"`
	IsEncrypted bool       `json:"is_encrypted"`
	IsBreakdown bool       `json:"is_breakdown"`
	Date        *Timestamp `json:"date,omitempty"`
}

// Normalize fills defaults: an empty category becomes CategoryGeneral.
func (in *EntryInput) Normalize() {
	if in.Category == "" {
		in.Category = CategoryGeneral
	}
	in.Category = Category(strings.ToLower(string(in.Category)))
}

// Validate checks field constraints and reports the first offending field.
// Errors wrap common.ErrValidation.
func (in EntryInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		switch f.Field() {
		case "MoodScore":
			return fmt.Errorf("%w: mood must be between %d and %d", common.ErrValidation, MinMood, MaxMood)
		case "Content":
			return fmt.Errorf("%w: content is required", common.ErrValidation)
		case "Category":
			return fmt.Errorf("%w: unknown category %q", common.ErrValidation, f.Value())
		}
		return fmt.Errorf("%w: %s failed on %s", common.ErrValidation, f.Field(), f.Tag())
	}
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}
