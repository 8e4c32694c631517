package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Categories returns the category index. Non-string entries are skipped and
// unreadable data yields an empty index.
func (s *Store) Categories() []string {
	raw, ok, err := s.kv.Get(CategoriesKey)
	if err != nil {
		s.logger.Warn("store: read categories failed", "err", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Warn("store: ignoring malformed categories", "err", err)
		return nil
	}
	items, ok := parsed.([]any)
	if !ok {
		return nil
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		if slug, ok := item.(string); ok {
			list = append(list, slug)
		}
	}
	return list
}

// SaveCategories replaces the category index.
func (s *Store) SaveCategories(list []string) error {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := s.kv.Set(CategoriesKey, string(data)); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}

// EnsurePresent appends slug to the index when it is missing.
func (s *Store) EnsurePresent(slug string) error {
	if slug == "" {
		return nil
	}
	list := s.Categories()
	for _, c := range list {
		if c == slug {
			return nil
		}
	}
	return s.SaveCategories(append(list, slug))
}

// DeleteCategory removes slug from the index and drops its rows.
func (s *Store) DeleteCategory(slug string) error {
	if slug == "" {
		return nil
	}
	list := s.Categories()
	filtered := make([]string, 0, len(list))
	for _, c := range list {
		if c != slug {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) != len(list) {
		if err := s.SaveCategories(filtered); err != nil {
			return err
		}
	}
	if err := s.remove(RowsKey(slug)); err != nil {
		return fmt.Errorf("delete category %s: %w", slug, err)
	}
	return nil
}

// PruneEmpty drops every indexed category except keep whose rows are
// missing, unreadable or empty. It returns the slugs that were removed.
func (s *Store) PruneEmpty(keep string) ([]string, error) {
	list := s.Categories()
	kept := make([]string, 0, len(list))
	var pruned []string

	for _, slug := range list {
		if slug == "" {
			pruned = append(pruned, slug)
			continue
		}
		if slug == keep || s.hasRows(slug) {
			kept = append(kept, slug)
			continue
		}
		if err := s.remove(RowsKey(slug)); err != nil {
			s.logger.Warn("store: prune remove failed", "category", slug, "err", err)
		}
		pruned = append(pruned, slug)
	}

	if len(pruned) == 0 {
		return nil, nil
	}
	if err := s.SaveCategories(kept); err != nil {
		return pruned, err
	}
	s.logger.Debug("store: pruned empty categories", "pruned", pruned)
	return pruned, nil
}

// Orphans returns the slugs that have stored rows but are missing from the
// category index, sorted.
func (s *Store) Orphans() ([]string, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	indexed := s.Categories()
	var out []string
	for _, k := range keys {
		slug, ok := strings.CutPrefix(k, HomeRowsKey+rowsKeySeparator)
		if !ok || slug == "" || slices.Contains(indexed, slug) {
			continue
		}
		out = append(out, slug)
	}
	slices.Sort(out)
	return out, nil
}

// hasRows reports whether a category's stored value is a non-empty array.
func (s *Store) hasRows(slug string) bool {
	raw, ok, err := s.kv.Get(RowsKey(slug))
	if err != nil || !ok {
		return false
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return false
	}
	return len(items) > 0
}
