package repository

import "errors"

// ErrNotFound is a repository-specific sentinel error, returned when a query
// for a single generation finds no rows.
//
// The service layer checks for this error and translates it into the
// domain-level sentinel, decoupling business logic from the data access
// implementation and from the underlying driver's `sql.ErrNoRows`.
var ErrNotFound = errors.New("repository: not found")
