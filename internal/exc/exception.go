// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"

	"github.com/JonDotsoy/icalendar.go/internal/source"
)

type Exception interface {
	error
	Code() string
	Message() string
	Location() Location
}

type Location struct {
	source.Location
	URI string
}

type exc struct {
	code     string
	message  string
	location Location
}

func (e *exc) Error() string {
	msg := fmt.Sprintf("parse aborted with %s: %s", Taxonomy(e.code), e.message)
	// Line is 1-based, so zero means the failure has no source position.
	if e.location.Line > 0 {
		msg = fmt.Sprintf("parse aborted with %s at %d:%d: %s", Taxonomy(e.code), e.location.Line, e.location.Column, e.message)
	}
	if e.location.URI != "" {
		return e.location.URI + ": " + msg
	}
	return msg
}

func (e *exc) Code() string {
	return e.code
}

func (e *exc) Message() string {
	return e.message
}

func (e *exc) Location() Location {
	return e.location
}

type excUnwrap struct {
	Exception
	cause error
}

func (e *excUnwrap) Unwrap() error {
	return e.cause
}

func New(location Location, code string, message string) Exception {
	return &exc{
		location: location,
		message:  message,
		code:     code,
	}
}

// At builds the Location from a source position and the URI of the input.
func At(loc source.Location, uri string, code string, message string) Exception {
	return New(Location{Location: loc, URI: uri}, code, message)
}

func Wrap(location Location, code string, err error) Exception {
	if err == nil {
		return nil
	}
	if e, ok := err.(Exception); ok {
		return &excUnwrap{
			Exception: New(location, code, e.Message()),
			cause:     e,
		}
	}
	return &excUnwrap{
		cause:     err,
		Exception: New(location, code, err.Error()),
	}
}

func WrapUnknown(location Location, err error) Exception {
	return Wrap(location, CodeUnknownFatal, err)
}
