//
//  Copyright © Manetu Inc. All rights reserved.
//

package templates

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// Store maps rule ids to compiled template entries. Loaded once at engine
// start; read-only thereafter.
type Store struct {
	entries map[string]*Entry
	order   []string
}

// stringList accepts either a single scalar or a sequence in YAML, since
// published rule templates write single hints as bare strings.
type stringList []string

func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*s = []string{single}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*s = many
	return nil
}

type bodyDoc struct {
	Msg     string     `yaml:"msg"`
	Hint    stringList `yaml:"hint"`
	Content []string   `yaml:"content"`
}

type entryDoc struct {
	Version    rules.Info         `yaml:"version"`
	Msg        string             `yaml:"msg"`
	Hint       stringList         `yaml:"hint"`
	Content    []string           `yaml:"content"`
	Variations map[string]bodyDoc `yaml:"variations"`
}

// Load reads a template store document from a file path.
func Load(path string) (*Store, error) {
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

// Parse builds a store from a template document: a mapping from rule id
// to template entry. Every placeholder is compiled here, once, so that
// malformed templates fail at load rather than mid-evaluation.
func Parse(data []byte) (*Store, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "parsing template store")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 ||
		root.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("template store must be a mapping of rule id to entry")
	}

	store := &Store{entries: make(map[string]*Entry)}

	mapping := root.Content[0]
	for i := 0; i < len(mapping.Content); i += 2 {
		id := mapping.Content[i].Value

		var doc entryDoc
		if err := mapping.Content[i+1].Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, "decoding template entry %s", id)
		}

		entry, err := buildEntry(id, doc)
		if err != nil {
			return nil, err
		}
		if _, dup := store.entries[id]; dup {
			return nil, errors.Errorf("duplicate template entry %s", id)
		}
		store.entries[id] = entry
		store.order = append(store.order, id)
	}
	return store, nil
}

func buildEntry(id string, doc entryDoc) (*Entry, error) {
	entry := &Entry{ID: id, Version: doc.Version}

	switch {
	case len(doc.Variations) > 0:
		if doc.Msg != "" {
			return nil, errors.Errorf("template %s mixes a flat msg with variations", id)
		}
		entry.kind = Variant
		entry.variations = make(map[rules.Variation]*Body, len(doc.Variations))
		for key, vdoc := range doc.Variations {
			body, err := compileBody(id, vdoc.Msg, vdoc.Hint, vdoc.Content)
			if err != nil {
				return nil, err
			}
			entry.variations[rules.Variation(key)] = body
		}
	case doc.Msg != "":
		body, err := compileBody(id, doc.Msg, doc.Hint, doc.Content)
		if err != nil {
			return nil, err
		}
		entry.body = body
		entry.kind = Flat
		if len(body.Content) > 0 {
			entry.kind = Paragraphed
		}
	default:
		return nil, errors.Errorf("template %s has neither msg nor variations", id)
	}
	return entry, nil
}

func compileBody(id, msg string, hints stringList, content []string) (*Body, error) {
	if msg == "" {
		return nil, errors.Errorf("template %s has a body without msg", id)
	}
	body := &Body{}

	var err error
	if body.Msg, err = Compile(msg); err != nil {
		return nil, errors.Wrapf(err, "template %s", id)
	}
	for _, h := range hints {
		t, err := Compile(h)
		if err != nil {
			return nil, errors.Wrapf(err, "template %s hint", id)
		}
		body.Hints = append(body.Hints, t)
	}
	for _, c := range content {
		t, err := Compile(c)
		if err != nil {
			return nil, errors.Wrapf(err, "template %s content", id)
		}
		body.Content = append(body.Content, t)
	}
	return body, nil
}

// Lookup returns the entry for a rule id, falling back to the parent id
// with the trailing test-case number removed, mirroring how the published
// templates key shared messages.
func (s *Store) Lookup(ruleID string) (*Entry, error) {
	if e, ok := s.entries[ruleID]; ok {
		return e, nil
	}
	if idx := strings.LastIndex(ruleID, "."); idx > 0 {
		if e, ok := s.entries[ruleID[:idx]]; ok {
			return e, nil
		}
	}
	return nil, common.NewError(common.UnknownTemplate,
		"no template entry for rule %s", ruleID)
}

// IDs returns the entry ids in document order.
func (s *Store) IDs() []string {
	return s.order
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}
