//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package common provides shared types and utilities used across the
// dqengine packages.
//
// # Error Handling
//
// The [EvalError] type provides structured error information for rule
// evaluation failures. Every error carries a machine-readable
// [ReasonCode]; the code's class decides whether the failure marks a rule
// as inconclusive (data absence), as defective (authoring error), or
// aborts the whole evaluation run (engine error).
package common

import (
	"errors"
	"fmt"
)

// ReasonCode is the machine-readable classification of an evaluation failure.
type ReasonCode int

// Reason codes grouped by failure class.
const (
	// Data-absence conditions: the rule cannot be checked against this
	// filing. Recorded as inconclusive outcomes, never as violations.
	NamespaceNotFound ReasonCode = iota + 1
	RequiredContextMissing
	ConceptNotFound
	EvaluationTimeout

	// Authoring errors: defects in a rule or template definition. Fatal
	// for the rule, surfaced loudly.
	UnknownVariation
	TemplateResolution
	MissingBinding
	UnknownTemplate

	// Engine errors: fatal for the whole run.
	EngineFailure
)

var reasonNames = map[ReasonCode]string{
	NamespaceNotFound:      "NAMESPACE_NOT_FOUND",
	RequiredContextMissing: "REQUIRED_CONTEXT_MISSING",
	ConceptNotFound:        "CONCEPT_NOT_FOUND",
	EvaluationTimeout:      "EVALUATION_TIMEOUT",
	UnknownVariation:       "UNKNOWN_VARIATION",
	TemplateResolution:     "TEMPLATE_RESOLUTION",
	MissingBinding:         "MISSING_BINDING",
	UnknownTemplate:        "UNKNOWN_TEMPLATE",
	EngineFailure:          "ENGINE_FAILURE",
}

// String returns the symbolic name of the reason code.
func (c ReasonCode) String() string {
	if name, ok := reasonNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(c))
}

// EvalError represents an error encountered during rule evaluation.
//
// EvalError is returned by resolvers, predicates and the templating engine
// instead of the bare error interface so that the engine can route
// failures to the correct outcome class.
type EvalError struct {
	// ReasonCode is the machine-readable error classification.
	ReasonCode ReasonCode
	// Reason is a human-readable description of the error.
	Reason string
}

// Error implements the error interface, returning a formatted string
// containing both the reason message and the reason code.
func (e *EvalError) Error() string {
	return fmt.Sprintf("%s(code-%s)", e.Reason, e.ReasonCode)
}

// NewError creates a new [EvalError] with the specified reason code and
// formatted message.
func NewError(code ReasonCode, format string, args ...interface{}) *EvalError {
	return &EvalError{ReasonCode: code, Reason: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the reason code from err, or EngineFailure if err is not
// an [EvalError].
func CodeOf(err error) ReasonCode {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.ReasonCode
	}
	return EngineFailure
}

// IsInconclusive reports whether err represents a data-absence condition:
// the rule could not be checked, which is distinct from both "checked and
// passed" and "rule definition is broken".
func IsInconclusive(err error) bool {
	switch CodeOf(err) {
	case NamespaceNotFound, RequiredContextMissing, ConceptNotFound, EvaluationTimeout:
		return true
	}
	return false
}

// IsAuthoring reports whether err indicates a defect in a rule or template
// definition rather than a data problem in the filing.
func IsAuthoring(err error) bool {
	switch CodeOf(err) {
	case UnknownVariation, TemplateResolution, MissingBinding, UnknownTemplate:
		return true
	}
	return false
}
