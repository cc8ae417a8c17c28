// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package catalog

import (
	"strings"
	"testing"
)

const sampleCSV = `id,name,yearpublished,minplayers,maxplayers,playingtime,average,bayesaverage,averageweight,BGGrank,description,thumbnail,category_list,mech_list,tags,boardgamefamily
1,Power Grid,2004,2,6,120,7.81,7.72,3.27,41,Manage power plants.,http://img/1.jpg,"['Economic', 'Industry']","['Auction', 'Network Building']","['strategy']","Series: Power Grid; Game: Power Grid"
2,Catan,1995,3,4,90,7.1,6.9,2.3,500,Trade and build.,http://img/2.jpg,"['Negotiation']","['Trading']","['family']",
3,Broken Numbers,oops,x,y,1200,bad,,,unranked,,,,,,"Crowdfunding: Kickstarter; Digital Implementations"
`

func TestLoadCSV(t *testing.T) {
	s, err := LoadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	rec, _ := s.ByID(1)
	if rec.YearPublished != 2004 || rec.MinPlayers != 2 || rec.MaxPlayers != 6 {
		t.Errorf("numeric columns parsed wrong: %+v", rec)
	}
	if rec.AverageRating != 7.81 || rec.BayesRating != 7.72 || rec.Weight != 3.27 {
		t.Errorf("float columns parsed wrong: %+v", rec)
	}
	if rec.Rank != 41 {
		t.Errorf("Rank = %d, want 41", rec.Rank)
	}
	if len(rec.Categories) != 2 || rec.Categories[0] != "Economic" {
		t.Errorf("Categories = %v", rec.Categories)
	}
	if len(rec.Family.SeriesNames) != 1 || rec.Family.SeriesNames[0] != "Power Grid" {
		t.Errorf("Family.SeriesNames = %v", rec.Family.SeriesNames)
	}
}

func TestLoadCSVCoercesUnknowns(t *testing.T) {
	s, err := LoadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	rec, _ := s.ByID(3)
	if rec.YearPublished != 0 || rec.MinPlayers != 0 || rec.AverageRating != 0 {
		t.Errorf("malformed cells should coerce to 0: %+v", rec)
	}
	if rec.Rank != 0 {
		t.Errorf("Rank = %d, want 0 for unranked", rec.Rank)
	}
	if !rec.Family.IsCrowdfunded {
		t.Error("IsCrowdfunded = false, want true")
	}
	if !rec.Family.IsDigital || rec.Family.DigitalPlatforms[0] != "Other" {
		t.Errorf("Family digital = %+v", rec.Family)
	}
}

func TestLoadCSVCapsPlaytime(t *testing.T) {
	s, err := LoadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	rec, _ := s.ByID(3)
	if rec.PlayingTime != PlaytimeCeiling {
		t.Errorf("PlayingTime = %d, want capped at %d", rec.PlayingTime, PlaytimeCeiling)
	}
}

func TestLoadCSVRejectsMissingColumns(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"no id column", "name,yearpublished\nCatan,1995\n"},
		{"no name column", "id,yearpublished\n1,1995\n"},
		{"bad id cell", "id,name\nnope,Catan\n"},
		{"empty name cell", "id,name\n1,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("LoadCSV() error = nil, want error")
			}
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"python style", "['Economic', 'Trains']", []string{"Economic", "Trains"}},
		{"semicolon joined", "Economic; Trains", []string{"Economic", "Trains"}},
		{"comma joined", "Economic, Trains", []string{"Economic", "Trains"}},
		{"empty", "", nil},
		{"empty brackets", "[]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseList(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("parseList(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseList(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}
