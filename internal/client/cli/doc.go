// Package cli provides the interactive ReMood command-line client.
//
// It wires configuration, local storage, the API client, the credential
// session and the entry cache behind a read-eval-print loop.
//
// Key features:
//   - Register / Login / Logout
//   - List, reload, show, create and edit journal entries; private entries
//     are encrypted before they leave the machine
//   - Browse the public feed and a user's shared entries
//   - Toggle the dark colour palette
//
// Commands that need an account are gated: while logged out they print a
// login hint instead of running. The REPL is started via App.Run(ctx), which
// blocks until the user exits.
package cli
