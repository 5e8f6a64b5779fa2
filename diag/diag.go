// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package diag provides the diagnostic sink that lowering passes
// report into. Diagnostics are accumulated values, never panics or
// early aborts: a pass reports everything it finds and its caller
// decides what the collected severities mean for the compile.
package diag

import (
	"fmt"
	"io"

	"github.com/gogpu/slate/ir"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Code identifies a diagnostic kind.
type Code uint16

const (
	// CodeImplicitCapabilityUpgrade reports that an entry point needs
	// capabilities beyond its configured profile and the compiler is
	// upgrading the profile implicitly.
	CodeImplicitCapabilityUpgrade Code = iota

	// CodeImplicitCapabilityUpgradeStrict is the restrictive-mode
	// form of CodeImplicitCapabilityUpgrade.
	CodeImplicitCapabilityUpgradeStrict

	// CodeSeeRequirementSite points at the location that introduced a
	// capability requirement.
	CodeSeeRequirementSite
)

// String returns a stable code name.
func (c Code) String() string {
	switch c {
	case CodeImplicitCapabilityUpgrade:
		return "implicit-capability-upgrade"
	case CodeImplicitCapabilityUpgradeStrict:
		return "implicit-capability-upgrade-strict"
	case CodeSeeRequirementSite:
		return "see-requirement-site"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported condition.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Span     ir.Span
	Message  string
}

// String formats the diagnostic on one line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s] at [%d:%d]: %s", d.Severity, d.Code, d.Span.Start, d.Span.End, d.Message)
}

// Sink accumulates diagnostics in emission order.
type Sink struct {
	diags  []Diagnostic
	errors int
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report records one diagnostic.
func (s *Sink) Report(sev Severity, code Code, span ir.Span, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		Severity: sev,
		Code:     code,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
	})
	if sev == SeverityError {
		s.errors++
	}
}

// Diagnostics returns the recorded diagnostics in emission order.
// The returned slice must not be modified.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Len returns the number of recorded diagnostics.
func (s *Sink) Len() int {
	return len(s.diags)
}

// ErrorCount returns the number of error-severity diagnostics.
func (s *Sink) ErrorCount() int {
	return s.errors
}

// Dump writes every diagnostic to w, one per line.
func (s *Sink) Dump(w io.Writer) error {
	for _, d := range s.diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}
