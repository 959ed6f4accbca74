// Package errors provides error handling for dbscan.
//
// This package re-exports github.com/cockroachdb/errors, providing stack
// traces, wrapping, user-facing hints and sentinel marking:
//
//	err := errors.Newf("eps must be >= 0, got %v", eps)
//	return errors.Mark(err, ErrInvalidRadius)
//
//	if errors.Is(err, ErrInvalidRadius) {
//	    // handle bad radius
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	WithStack = crdb.WithStack
	Mark      = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	As           = crdb.As
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)
