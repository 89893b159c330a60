// Package project persists a target sequence as a yaml snapshot. It stands
// in for the editor runtime when the engine is driven from the command line.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/sequence"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateTarget is returned when a target id is added twice.
var ErrDuplicateTarget = errors.New("target already exists")

// Record is one target in the snapshot.
type Record struct {
	ID    string            `yaml:"id"`
	Name  string            `yaml:"name,omitempty"`
	Stage bool              `yaml:"stage,omitempty"`
	Group *group.Descriptor `yaml:"group,omitempty"`
}

// File is the snapshot document, targets in layer order.
type File struct {
	Targets []Record `yaml:"targets"`
}

// Store reads and writes one snapshot file.
type Store struct {
	path string
}

// NewStore creates a Store for the snapshot at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the snapshot file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the snapshot into a new sequence.
func (s *Store) Load() (*sequence.Sequence, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("project not found: %s", s.path)
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	return Decode(&f)
}

// Save writes seq to the snapshot file.
func (s *Store) Save(seq *sequence.Sequence) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data, err := yaml.Marshal(Encode(seq))
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Encode converts seq to its snapshot document.
func Encode(seq *sequence.Sequence) *File {
	f := &File{Targets: make([]Record, 0, seq.Len())}
	for _, t := range seq.Targets() {
		r := Record{ID: t.ID, Stage: t.IsStage}
		if t.Sprite != nil {
			r.Name = t.Sprite.Name
			r.Group = t.Group().Clone()
		}
		f.Targets = append(f.Targets, r)
	}
	return f
}

// Decode builds a sequence from a snapshot document. Ids must be present
// and unique; grouping consistency is left to sequence.Validate.
func Decode(f *File) (*sequence.Sequence, error) {
	seen := make(map[string]bool, len(f.Targets))
	targets := make([]*sequence.Target, 0, len(f.Targets))
	for i, r := range f.Targets {
		if r.ID == "" {
			return nil, fmt.Errorf("target %d: missing id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("target %q: %w", r.ID, ErrDuplicateTarget)
		}
		seen[r.ID] = true

		if r.Stage {
			targets = append(targets, sequence.NewStage(r.ID))
			continue
		}
		t := sequence.NewSprite(r.ID, r.Name)
		t.SetGroup(r.Group.Clone())
		targets = append(targets, t)
	}
	return sequence.New(targets...), nil
}

// Add installs a new target at the end of seq.
func Add(seq *sequence.Sequence, t *sequence.Target) error {
	if seq.Get(t.ID) != nil {
		return fmt.Errorf("target %q: %w", t.ID, ErrDuplicateTarget)
	}
	return seq.InsertAt(seq.Len(), t)
}
