package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fardannozami/habit-streak/internal/domain"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-03", "2024-01-03", true},
		{" 2024-01-03 ", "2024-01-03", true},
		{"2024-01-03T23:30:00+07:00", "2024-01-03", true},
		{"2024-01-03T00:10:00-05:00", "2024-01-03", true},
		{"2024-02-30", "", false},
		{"03/01/2024", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, err := domain.ParseDay(tt.in)
		if tt.ok && err != nil {
			t.Errorf("ParseDay(%q): unexpected error %v", tt.in, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("ParseDay(%q): expected error, got %s", tt.in, got)
			}
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseDay(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDayOf_UsesOwnLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	late := time.Date(2024, 6, 1, 23, 45, 0, 0, jakarta)

	if got := domain.DayOf(late).String(); got != "2024-06-01" {
		t.Errorf("DayOf: expected 2024-06-01, got %s", got)
	}
	if got := domain.DayOf(late.UTC()).String(); got != "2024-06-01" {
		t.Errorf("DayOf(UTC): expected 2024-06-01, got %s", got)
	}
}

func TestDay_Arithmetic(t *testing.T) {
	d := domain.NewDay(2024, time.February, 28)

	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Errorf("AddDays(1): got %s", got)
	}
	if got := d.AddDays(2).DaysSince(d); got != 2 {
		t.Errorf("DaysSince: expected 2, got %d", got)
	}
	if got := d.DaysSince(d.AddDays(5)); got != -5 {
		t.Errorf("DaysSince (reverse): expected -5, got %d", got)
	}
	if !d.Before(d.AddDays(1)) || !d.AddDays(1).After(d) || !d.Equal(domain.NewDay(2024, 2, 28)) {
		t.Error("ordering helpers disagree")
	}
}

func TestDay_JSON(t *testing.T) {
	type payload struct {
		Date domain.Day `json:"date"`
	}

	data, err := json.Marshal(payload{Date: domain.NewDay(2024, 1, 9)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"date":"2024-01-09"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"date":null}`), &p); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !p.Date.IsZero() {
		t.Errorf("expected zero day, got %s", p.Date)
	}

	if err := json.Unmarshal([]byte(`{"date":"nope"}`), &p); err == nil {
		t.Error("expected error for invalid date")
	}
}
