package storage

import "errors"

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrInit is returned when the storage engine cannot be opened.
	ErrInit = errors.New("storage initialization failed")
	// ErrMigration is returned when a versioned schema step fails.
	// The recorded schema version is left unchanged so a retry resumes
	// from the same point.
	ErrMigration = errors.New("schema migration failed")
	// ErrWrite is returned when a mutating statement fails.
	ErrWrite = errors.New("write failed")
)
