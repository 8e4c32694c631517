// Package store is the persistence adapter: it maps categories, rows and
// preferences onto keys of a kv.Store and never lets a bad stored value
// reach the caller.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/kv"
)

// Storage keys.
const (
	HomeRowsKey   = "audioRecorderRows"
	CategoriesKey = "audioRecorderCategories"
	ZoomKey       = "audioRecorderZoom"
	AccessKey     = "directoryAccessGranted"

	rowsKeySeparator = "::"
)

// RowsKey returns the storage key of a category's rows. The empty slug is
// the home category.
func RowsKey(slug string) string {
	if slug == "" {
		return HomeRowsKey
	}
	return HomeRowsKey + rowsKeySeparator + slug
}

// Store reads and writes notas data.
type Store struct {
	kv     kv.Store
	logger *slog.Logger

	// written holds a fingerprint of the last payload this process wrote per
	// key, so unchanged debounced saves skip the write.
	written map[string]uint64
}

// New creates a Store over backend.
func New(backend kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:      backend,
		logger:  logger,
		written: make(map[string]uint64),
	}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Load returns the rows stored under key. Missing keys, malformed JSON and
// non-array values all yield an empty list.
func (s *Store) Load(key string) []document.Row {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("store: read failed", "key", key, "err", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	rows, err := decodeRows([]byte(raw))
	if err != nil {
		s.logger.Warn("store: ignoring malformed rows", "key", key, "err", err)
		return nil
	}
	return rows
}

// LoadCategory returns the rows of a category.
func (s *Store) LoadCategory(slug string) []document.Row {
	return s.Load(RowsKey(slug))
}

// Save writes rows under key, keeping only the persisted fields.
func (s *Store) Save(key string, rows []document.Row) error {
	data, err := encodeRows(rows)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}

	sum := xxhash.Sum64(data)
	if prev, ok := s.written[key]; ok && prev == sum {
		return nil
	}

	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.written[key] = sum
	s.logger.Debug("store: rows saved", "key", key, "rows", len(rows))
	return nil
}

// SaveCategory writes the rows of a category.
func (s *Store) SaveCategory(slug string, rows []document.Row) error {
	return s.Save(RowsKey(slug), rows)
}

func (s *Store) remove(key string) error {
	delete(s.written, key)
	return s.kv.Remove(key)
}

// encodeRows serializes rows with every resource list present.
func encodeRows(rows []document.Row) ([]byte, error) {
	out := make([]document.Row, len(rows))
	for i, r := range rows {
		out[i] = document.Row{
			ID:        r.ID,
			Name:      r.Name,
			Checked:   r.Checked,
			Link:      r.Link,
			Resources: r.Resources.Normalized(),
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeRows parses stored rows loosely: every field is checked for its
// type and anything unexpected falls back to the zero value.
func decodeRows(data []byte) ([]document.Row, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	items, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", parsed)
	}

	rows := make([]document.Row, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		res, _ := obj["resources"].(map[string]any)
		rows = append(rows, document.Row{
			ID:      jsString(obj["id"]),
			Name:    stringField(obj["name"]),
			Checked: truthy(obj["checked"]),
			Link:    stringField(obj["link"]),
			Resources: document.Resources{
				Videos:    decodeResources(res["videos"]),
				TrueFalse: decodeResources(res["trueFalse"]),
				Quizzes:   decodeResources(res["quizzes"]),
			},
		})
	}
	return rows, nil
}

func decodeResources(v any) []document.Resource {
	items, ok := v.([]any)
	if !ok {
		return []document.Resource{}
	}
	out := make([]document.Resource, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, document.Resource{
			ID:   jsString(obj["id"]),
			Name: stringField(obj["name"]),
			Link: stringField(obj["link"]),
		})
	}
	return out
}

// stringField returns v when it is a string, "" otherwise.
func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// jsString converts a scalar the way String(x ?? "") does in the browser.
func jsString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// truthy applies JavaScript truthiness to a decoded JSON value.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
