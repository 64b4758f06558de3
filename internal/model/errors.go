package model

import "errors"

// Sentinel errors shared across repositories and services. The REST layer
// maps ErrNotFound and ErrAlreadyExists to 400 responses whose body carries
// the error text, so the messages are part of the API contract.
var (
	ErrNotFound      = errors.New("Not found")
	ErrAlreadyExists = errors.New("Already exists")
	ErrUnauthorized  = errors.New("Unauthorized")
	ErrForbidden     = errors.New("Forbidden")
)
