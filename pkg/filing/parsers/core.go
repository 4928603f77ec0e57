//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package parsers loads fact-model interchange documents into
// [filing.Filing] instances.
//
// The interchange format is a YAML/JSON rendering of an already-processed
// filing: schemas, concepts, linkbase networks, contexts and facts. It
// exists so the CLI and tests have an input surface; production callers
// may equally construct the object graph directly from their own XBRL
// processor.
package parsers

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xbrldq/dqengine/pkg/filing"
	v1 "github.com/xbrldq/dqengine/pkg/filing/parsers/v1"
)

// Preamble represents the header information of an interchange document.
type Preamble struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// Load loads a filing interchange document from a file path.
func Load(path string) (*filing.Filing, error) {
	f, err := os.Open(path) // #nosec G304 -- CLI tool intentionally reads user-provided paths
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse loads a filing interchange document from raw bytes.
func Parse(data []byte) (*filing.Filing, error) {
	var preamble Preamble
	if err := yaml.Unmarshal(data, &preamble); err != nil {
		return nil, errors.Wrap(err, "reading document preamble")
	}

	if preamble.Kind != "Filing" {
		return nil, errors.Errorf("expected Filing got %s", preamble.Kind)
	}

	switch preamble.APIVersion {
	case "dqengine.xbrldq.io/v1":
		return v1.Parse(data)
	}

	return nil, errors.Errorf("unsupported Filing API Version %s", preamble.APIVersion)
}
