// Package repository holds the per-table data access code.  Every statement
// goes through database.Gateway, so each call runs on its own connection.
// These sentinel values let handlers tell failure kinds apart.
package repository

import "errors"

// ErrNotFound is returned when a row addressed by id does not exist.
// Handlers translate it into an HTTP 404 warning.
var ErrNotFound = errors.New("not found")
