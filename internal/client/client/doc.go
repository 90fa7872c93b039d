// Package client contains client-side building blocks for ReMood.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface) to talk to the ReMood
//     backend: Authenticate/Register and the entry endpoints.
//  2. A concrete REST implementation (see HTTPClient) that sends form and
//     JSON requests, tags each with an X-Request-ID and maps HTTP statuses
//     to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError wrapping one of ErrUnauthorized,
// common.ErrNotFound or common.ErrRequest. Transport failures wrap
// ErrUnavailable. Authenticate reports every failure as
// common.ErrAuthentication. Match with errors.Is.
//
// HTTPClient is safe for concurrent use.
package client
