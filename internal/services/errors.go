// Package services defines the business logic for CUIT lookups. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrUpstream indicates that the padrón web service could not be
	// reached or answered with a failure status.
	ErrUpstream = errors.New("padron lookup failed")

	// ErrBadResponse indicates that the padrón web service answered, but
	// with a body that is not well-formed XML.
	ErrBadResponse = errors.New("padron response is not parseable")
)
