// Package client contains the transport side of the jobboard CLI.
//
// # Overview
//
// The package provides:
//  1. The Client interface: every REST endpoint the CLI consumes (auth,
//     jobs, applications, upload signatures).
//  2. HTTPClient, its implementation over net/http. Responses use the
//     {success, data, error, meta} envelope; the session cookie is kept in
//     a cookie jar and sent with every request.
//  3. Coordinator, which supersedes identical in-flight requests and
//     caches the current user. It is owned by one HTTPClient and reset on
//     logout.
//  4. Local session store bootstrap (InitDatabase, RunMigrations) applying
//     embedded goose migrations to SQLite.
//
// # Error Handling
//
// Backend failures are *common.APIError values whose Kind is one of the
// common sentinels (ErrValidation, ErrAuth, ErrNotFound, ErrConflict,
// ErrNetwork). A request cancelled by a newer identical one returns
// ErrSuperseded. No request is retried.
package client
