// SPDX-License-Identifier: MIT

// Package channels holds the fixed, ordered set of channels a run covers.
package channels

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Channel is one guide channel. ID is the stable XMLTV identifier, Name the
// canonical display name and Alias the query key the upstream API expects.
type Channel struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Alias string `yaml:"alias"`
}

// Registry is an immutable, ordered list of channels.
type Registry struct {
	channels []Channel
}

// ErrEmptyRegistry is returned when a registry would contain no channels.
var ErrEmptyRegistry = errors.New("channel registry is empty")

// New validates the given channels and returns a registry preserving their order.
func New(list []Channel) (*Registry, error) {
	if len(list) == 0 {
		return nil, ErrEmptyRegistry
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]Channel, 0, len(list))
	for i, ch := range list {
		ch.ID = strings.TrimSpace(ch.ID)
		ch.Name = strings.TrimSpace(ch.Name)
		ch.Alias = strings.TrimSpace(ch.Alias)
		switch {
		case ch.ID == "":
			return nil, fmt.Errorf("channel #%d: id is empty", i+1)
		case ch.Name == "":
			return nil, fmt.Errorf("channel %q: name is empty", ch.ID)
		case ch.Alias == "":
			return nil, fmt.Errorf("channel %q: alias is empty", ch.ID)
		}
		if _, dup := seen[ch.ID]; dup {
			return nil, fmt.Errorf("channel %q: duplicate id", ch.ID)
		}
		seen[ch.ID] = struct{}{}
		out = append(out, ch)
	}
	return &Registry{channels: out}, nil
}

// All returns a copy of the channels in registry order.
func (r *Registry) All() []Channel {
	out := make([]Channel, len(r.channels))
	copy(out, r.channels)
	return out
}

// Len reports the number of channels.
func (r *Registry) Len() int { return len(r.channels) }

// Load reads a registry from a YAML list of {id, name, alias} entries.
// Unknown keys are rejected.
func Load(path string) (*Registry, error) {
	path = filepath.Clean(path)
	// #nosec G304 -- channel file path is provided by the operator via config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read channels file: %w", err)
	}

	var list []Channel
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRegistry
		}
		return nil, fmt.Errorf("parse channels file: %w", err)
	}

	reg, err := New(list)
	if err != nil {
		return nil, fmt.Errorf("channels file %s: %w", path, err)
	}
	return reg, nil
}
