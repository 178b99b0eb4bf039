package ote

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceUnavailable means the OTE portal answered with its outage
	// page instead of XML.
	ErrServiceUnavailable = errors.New("ote portal is currently not available")

	// ErrMalformedResponse means the response was not valid XML and did not
	// match the outage page signature.
	ErrMalformedResponse = errors.New("failed to parse query response")
)

// Fault is the domain error for transport failures and upstream SOAP faults.
// The message is taken verbatim from the upstream faultstring when one is
// present.
type Fault struct {
	Message string
	Cause   error
}

func (f *Fault) Error() string {
	return f.Message
}

func (f *Fault) Unwrap() error {
	return f.Cause
}

// InvalidFormatError reports an Item that violates the response schema
// contract, e.g. a missing or unparsable Date.
type InvalidFormatError struct {
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid item format: %s", e.Reason)
}
