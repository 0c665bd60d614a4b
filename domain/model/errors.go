// Package model provides domain model for tsvenn
package model

import "errors"

var (
	// ErrInvalidDescriptor is returned when a load descriptor cannot be parsed
	ErrInvalidDescriptor = errors.New("invalid load descriptor")

	// ErrInvalidRelation is returned when a comparison relation is incomplete
	ErrInvalidRelation = errors.New("invalid comparison relation")
)
