package handler

import "database/sql"

// Handler contains the dependency-free HTTP handlers (health, readiness).
type Handler struct {
	db      *sql.DB
	version string
}

// New creates a new handler. db may be nil; readiness then skips the
// database check.
func New(db *sql.DB, version string) *Handler {
	return &Handler{db: db, version: version}
}
