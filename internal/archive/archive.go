package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is a saved post together with the form values that produced it.
type Entry struct {
	ID       string    `json:"id"`
	Platform string    `json:"platform"`
	Tone     string    `json:"tone"`
	Style    string    `json:"style"`
	Topic    string    `json:"topic"`
	Post     string    `json:"post"`
	Provider string    `json:"provider,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// NewEntry stamps a fresh ID and timestamp onto a saved post.
func NewEntry(platform, tone, style, topic, post, provider string) Entry {
	return Entry{
		ID:       uuid.NewString(),
		Platform: platform,
		Tone:     tone,
		Style:    style,
		Topic:    strings.TrimSpace(topic),
		Post:     post,
		Provider: provider,
		SavedAt:  time.Now().UTC(),
	}
}

// Store appends entries to a JSON file on disk.
type Store struct {
	path string
}

// NewStore returns a Store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path is the archive file the store writes to.
func (s *Store) Path() string { return s.path }

// Save appends a single entry.
func (s *Store) Save(entry Entry) error {
	return Append(s.path, entry)
}

// Append appends entries to the archive file, creating it if necessary.
func Append(path string, newEntries ...Entry) error {
	if len(newEntries) == 0 {
		return nil
	}
	if path == "" {
		return errors.New("archive path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	entries, err := Load(path)
	if err != nil {
		return err
	}
	entries = append(entries, newEntries...)
	return writeEntries(path, entries)
}

// Load returns all archived entries. A missing file is an empty archive.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode archive %s: %w", path, err)
	}
	return entries, nil
}

func writeEntries(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
