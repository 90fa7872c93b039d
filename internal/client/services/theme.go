package services

import (
	"context"
	"fmt"
)

// ThemeStorage is the dark-mode slot of durable storage.
type ThemeStorage interface {
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, dark bool) error
}

// ThemeService reads and toggles the dark-mode preference. The preference
// is not part of the session and survives logout.
type ThemeService interface {
	IsDarkMode(ctx context.Context) (bool, error)
	ToggleDarkMode(ctx context.Context) (bool, error)
}

type themeService struct {
	store ThemeStorage
}

func NewThemeService(store ThemeStorage) ThemeService {
	return &themeService{store: store}
}

func (t *themeService) IsDarkMode(ctx context.Context) (bool, error) {
	dark, err := t.store.DarkMode(ctx)
	if err != nil {
		return false, fmt.Errorf("read theme: %w", err)
	}
	return dark, nil
}

// ToggleDarkMode flips the preference and returns the new value.
func (t *themeService) ToggleDarkMode(ctx context.Context) (bool, error) {
	dark, err := t.IsDarkMode(ctx)
	if err != nil {
		return false, err
	}
	dark = !dark
	if err := t.store.SetDarkMode(ctx, dark); err != nil {
		return false, fmt.Errorf("save theme: %w", err)
	}
	return dark, nil
}
