package scraper

import (
	"testing"
	"time"
)

func TestParseFirst(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		layouts []string
		want    time.Time
		wantErr bool
	}{
		{
			name:    "pcms detail format",
			input:   "Sunday, April 25, 2021 - 3:00 PM",
			layouts: []string{"Monday, January 2, 2006 - 3:04 PM"},
			want:    time.Date(2021, 4, 25, 15, 0, 0, 0, time.UTC),
		},
		{
			name:    "second layout wins",
			input:   "26 March, 7:30PM",
			layouts: []string{"2 January 2006, 15:04", "2 January, 3:04PM"},
			want:    time.Date(0, 3, 26, 19, 30, 0, 0, time.UTC),
		},
		{
			name:    "hungarian numeric format",
			input:   "2021.3.4.19:00",
			layouts: []string{"2006.1.2.15:04"},
			want:    time.Date(2021, 3, 4, 19, 0, 0, 0, time.UTC),
		},
		{
			name:    "nothing matches",
			input:   "next Tuesday-ish",
			layouts: []string{"2 January 2006"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFirst(tt.input, tt.layouts...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseFirst(%q) expected error, got %s", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFirst(%q) failed: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseFirst(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLoose(t *testing.T) {
	got, err := parseLoose("4 March 2021 19:00")
	if err != nil {
		t.Fatalf("parseLoose failed: %v", err)
	}
	want := time.Date(2021, 3, 4, 19, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseLoose = %s, want %s", got, want)
	}

	if _, err := parseLoose("definitely not a date"); err == nil {
		t.Error("expected error for junk input")
	}
}

func TestTranslateGermanMonths(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"12. März 2021 – 20.15", "12. March 2021 – 20.15"},
		{"1. Dezember 2021", "1. December 2021"},
		{"5. April 2021", "5. April 2021"}, // spelled identically
	}

	for _, tt := range tests {
		if got := translateGermanMonths(tt.in); got != tt.want {
			t.Errorf("translateGermanMonths(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
