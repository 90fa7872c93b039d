// Package services contains application services for the ReMood client.
//
// EntryCache mirrors the remote entry collection for the current session and
// owns the encrypt-before-send / decrypt-after-receive policy for private
// entries. ThemeService persists the dark-mode preference.
package services
