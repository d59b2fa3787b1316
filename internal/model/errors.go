package model

import "errors"

var (
	// ErrNoToken is returned before any network call when a privileged action has no bearer token.
	ErrNoToken = errors.New("no authentication token found, please log in again")
	// ErrAdminRequired is returned by the console guard when no admin session is persisted.
	ErrAdminRequired = errors.New("admin session required, please log in as admin")
	// ErrNotImplemented marks console actions that have no backend endpoint.
	ErrNotImplemented = errors.New("not implemented")
	ErrNotFound       = errors.New("not found")
	ErrCancelled      = errors.New("cancelled")
)
