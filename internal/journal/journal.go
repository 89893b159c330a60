// Package journal keeps an append-only history of committed reorder
// operations.
//
// Entries are stored one per line as JSON (NDJSON). Each append is assigned
// the next sequence number, so a history file can be read back from any
// point.
package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one committed operation.
type Entry struct {
	// Seq is assigned by Append, starting at 1.
	Seq  uint64    `json:"seq"`
	Time time.Time `json:"time"`
	Txn  string    `json:"txn"`
	Op   string    `json:"op"`
	Args []string  `json:"args,omitempty"`
	// Order is the target ids in layer order after the commit.
	Order []string `json:"order"`
}

// FileStore appends entries to a history file.
type FileStore struct {
	path string

	// mu protects nextSeq and serializes writes
	mu      sync.Mutex
	nextSeq uint64
}

// Open returns a FileStore for path. The file is created on first Append.
// If it already exists, numbering continues after its highest sequence
// number.
func Open(path string) (*FileStore, error) {
	fs := &FileStore{path: path, nextSeq: 1}

	entries, err := fs.Read(0)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Seq >= fs.nextSeq {
			fs.nextSeq = e.Seq + 1
		}
	}
	return fs, nil
}

// Path returns the history file path.
func (fs *FileStore) Path() string {
	return fs.path
}

// Append assigns the next sequence number to e and writes it. A zero Time is
// set to now.
func (fs *FileStore) Append(e *Entry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	e.Seq = fs.nextSeq
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	f, err := os.OpenFile(fs.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to append entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}

	fs.nextSeq++
	return nil
}

// Read returns every entry with Seq >= fromSeq, oldest first. Malformed
// lines are skipped. A missing file reads as empty.
func (fs *FileStore) Read(fromSeq uint64) ([]*Entry, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	entries := []*Entry{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		if e.Seq >= fromSeq {
			entries = append(entries, &e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan history file: %w", err)
	}
	return entries, nil
}

// Tail returns the last n entries, oldest first. n <= 0 returns all.
func (fs *FileStore) Tail(n int) ([]*Entry, error) {
	entries, err := fs.Read(0)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// LastSeq returns the sequence number of the last entry, or 0 if none.
func (fs *FileStore) LastSeq() uint64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.nextSeq - 1
}
