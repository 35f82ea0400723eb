// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// New creates an error for a registered code. details describes the
// specific failure; the generic message comes from the code definition.
func New(code ErrorCode, details string) *MigrateError {
	def, ok := errorDefinitions[code]
	if !ok {
		return &MigrateError{
			Code:     code,
			Domain:   DomainSystem,
			Message:  "Unknown error",
			Details:  details,
			ExitCode: ExitFailure,
		}
	}

	return &MigrateError{
		Code:     code,
		Domain:   def.domain,
		Message:  def.message,
		Details:  details,
		ExitCode: def.exitCode,
	}
}

// Wrap attaches a code to an underlying error. A *MigrateError passed in
// keeps its metadata.
func Wrap(err error, code ErrorCode) *MigrateError {
	if err == nil {
		return nil
	}

	e := New(code, err.Error())
	e.cause = err

	var inner *MigrateError
	if errors.As(err, &inner) {
		e.Details = inner.Message
		if inner.Details != "" {
			e.Details += ": " + inner.Details
		}
		for k, v := range inner.Metadata {
			e.WithMetadata(k, v)
		}
	}

	return e
}

// WithMetadata adds a key/value pair to the error and returns it.
func (e *MigrateError) WithMetadata(key, value string) *MigrateError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

func (e *MigrateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s-%d] %s", e.Domain, e.Code, e.Message)
	if e.Details != "" {
		b.WriteString(": ")
		b.WriteString(e.Details)
	}

	if len(e.Metadata) > 0 {
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+e.Metadata[k])
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(pairs, ", "))
		b.WriteString(")")
	}

	return b.String()
}

func (e *MigrateError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a *MigrateError with the same code.
func (e *MigrateError) Is(target error) bool {
	t, ok := target.(*MigrateError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(*MigrateError); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// ExitCodeOf returns the process exit code for err.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var e *MigrateError
	if errors.As(err, &e) {
		return e.ExitCode
	}
	return ExitFailure
}
