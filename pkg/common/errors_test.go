//
//  Copyright © Manetu Inc. All rights reserved.
//

package common

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestEvalError(t *testing.T) {
	err := NewError(ConceptNotFound, "taxonomy does not define %s", "us-gaap:Assets")
	assert.Equal(t, "taxonomy does not define us-gaap:Assets(code-CONCEPT_NOT_FOUND)", err.Error())
	assert.Equal(t, ConceptNotFound, CodeOf(err))
}

func TestCodeOf_Wrapped(t *testing.T) {
	err := errors.Wrap(NewError(NamespaceNotFound, "no match"), "resolving prefix")
	assert.Equal(t, NamespaceNotFound, CodeOf(err))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, EngineFailure, CodeOf(errors.New("something else")))
}

func TestClassification(t *testing.T) {
	inconclusive := []ReasonCode{NamespaceNotFound, RequiredContextMissing, ConceptNotFound, EvaluationTimeout}
	for _, code := range inconclusive {
		err := NewError(code, "x")
		assert.True(t, IsInconclusive(err), code.String())
		assert.False(t, IsAuthoring(err), code.String())
	}

	authoring := []ReasonCode{UnknownVariation, TemplateResolution, MissingBinding, UnknownTemplate}
	for _, code := range authoring {
		err := NewError(code, "x")
		assert.True(t, IsAuthoring(err), code.String())
		assert.False(t, IsInconclusive(err), code.String())
	}

	failure := NewError(EngineFailure, "x")
	assert.False(t, IsInconclusive(failure))
	assert.False(t, IsAuthoring(failure))
}

func TestReasonCode_String(t *testing.T) {
	assert.Equal(t, "ENGINE_FAILURE", EngineFailure.String())
	assert.Equal(t, "UNKNOWN(99)", ReasonCode(99).String())
}
