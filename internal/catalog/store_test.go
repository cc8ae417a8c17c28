// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package catalog

import "testing"

func testRecords() []GameRecord {
	return []GameRecord{
		{ID: 1, Name: "Power Grid"},
		{ID: 2, Name: "Catan"},
		{ID: 3, Name: "Catan: Seafarers"},
		{ID: 4, Name: "catan"}, // duplicate name key, distinct id
	}
}

func TestNewStoreBuildsIndexes(t *testing.T) {
	s, err := NewStore(testRecords())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}

	rec, ok := s.ByID(3)
	if !ok {
		t.Fatal("ByID(3) not found")
	}
	if rec.Name != "Catan: Seafarers" {
		t.Errorf("ByID(3).Name = %q", rec.Name)
	}

	if _, ok := s.ByID(999); ok {
		t.Error("ByID(999) = found, want missing")
	}
}

func TestNewStoreRejectsDuplicateID(t *testing.T) {
	_, err := NewStore([]GameRecord{
		{ID: 7, Name: "A"},
		{ID: 7, Name: "B"},
	})
	if err == nil {
		t.Fatal("NewStore() with duplicate ids: want error, got nil")
	}
}

func TestByNameKeyFirstEncounteredWins(t *testing.T) {
	s, err := NewStore(testRecords())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	// ids 2 and 4 share the key "catan"; the first row must win.
	rec, ok := s.ByNameKey("catan")
	if !ok {
		t.Fatal("ByNameKey(catan) not found")
	}
	if rec.ID != 2 {
		t.Errorf("ByNameKey(catan).ID = %d, want 2 (first encountered)", rec.ID)
	}
}

func TestByNameNormalizes(t *testing.T) {
	s, _ := NewStore(testRecords())

	tests := []struct {
		in     string
		wantID int
		wantOK bool
	}{
		{"Power Grid", 1, true},
		{"  POWER GRID  ", 1, true},
		{"Catan: Seafarers", 3, true},
		{"Cartan", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rec, ok := s.ByName(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ByName(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && rec.ID != tt.wantID {
				t.Errorf("ByName(%q).ID = %d, want %d", tt.in, rec.ID, tt.wantID)
			}
		})
	}
}

func TestRowIndexMatchesCatalogOrder(t *testing.T) {
	s, _ := NewStore(testRecords())

	for i, id := range []int{1, 2, 3, 4} {
		row, ok := s.RowIndex(id)
		if !ok || row != i {
			t.Errorf("RowIndex(%d) = %d, %v, want %d, true", id, row, ok, i)
		}
		if s.At(i).ID != id {
			t.Errorf("At(%d).ID = %d, want %d", i, s.At(i).ID, id)
		}
	}
}
