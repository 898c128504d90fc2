package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pq "github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique", &pq.Error{Code: "23505"}, true},
		{"wrapped unique", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"foreign key", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpen_InvalidConnectionString(t *testing.T) {
	_, err := Open(context.Background(), "postgres://%zz")
	if !errors.Is(err, ErrInvalidConnectionString) {
		t.Errorf("Expected ErrInvalidConnectionString, got %v", err)
	}
}
