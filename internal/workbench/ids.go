package workbench

import "github.com/google/uuid"

// IDSource generates opaque unique identifiers.
type IDSource interface {
	NewID() string
}

// UUIDSource generates random (version 4) UUIDs.
type UUIDSource struct{}

func (UUIDSource) NewID() string {
	return uuid.NewString()
}

// IDFunc adapts a function to IDSource.
type IDFunc func() string

func (f IDFunc) NewID() string {
	return f()
}
