// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package catalog

import "fmt"

// Store is the in-memory catalog: an ordered slice of records plus
// lookup maps built once at construction. The row order is significant:
// dense similarity matrices index rows by catalog position.
//
// Store is immutable after NewStore returns and safe for concurrent reads.
type Store struct {
	records []GameRecord
	byID    map[int]int    // id -> row index
	byName  map[string]int // name key -> row index (first encountered wins)
	names   []string       // display names in catalog order
}

// NewStore builds a Store from records.
//
// Duplicate ids are rejected: id is the primary key and must be unique.
// Duplicate name keys are allowed (franchise reprints); lookup by name
// resolves to the first encountered row, which is defined-but-arbitrary
// behavior carried over from the source dataset.
func NewStore(records []GameRecord) (*Store, error) {
	s := &Store{
		records: records,
		byID:    make(map[int]int, len(records)),
		byName:  make(map[string]int, len(records)),
		names:   make([]string, len(records)),
	}

	for i := range records {
		rec := &records[i]
		if rec.NameKey == "" {
			rec.NameKey = NameKeyOf(rec.Name)
		}

		if _, dup := s.byID[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %d in catalog", rec.ID)
		}
		s.byID[rec.ID] = i

		if _, seen := s.byName[rec.NameKey]; !seen {
			s.byName[rec.NameKey] = i
		}
		s.names[i] = rec.Name
	}

	return s, nil
}

// Len returns the number of catalog rows.
func (s *Store) Len() int {
	return len(s.records)
}

// ByID returns the record with the given id.
func (s *Store) ByID(id int) (*GameRecord, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.records[i], true
}

// ByNameKey returns the record whose normalized name matches key.
// When duplicate names exist the first encountered row is returned.
func (s *Store) ByNameKey(key string) (*GameRecord, bool) {
	i, ok := s.byName[key]
	if !ok {
		return nil, false
	}
	return &s.records[i], true
}

// ByName is ByNameKey with normalization applied to name first.
func (s *Store) ByName(name string) (*GameRecord, bool) {
	return s.ByNameKey(NameKeyOf(name))
}

// RowIndex returns the catalog row position for id. Dense similarity
// matrices are indexed by this position.
func (s *Store) RowIndex(id int) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// At returns the record at catalog row position i.
func (s *Store) At(i int) *GameRecord {
	return &s.records[i]
}

// Names returns the display names in catalog order. The returned slice
// is shared; callers must not modify it.
func (s *Store) Names() []string {
	return s.names
}
