package domain_test

import (
	"errors"
	"testing"

	"github.com/jonesrussell/crawlsearch/internal/domain"
)

func TestValidatePositions(t *testing.T) {
	tests := []struct {
		name      string
		frequency int
		positions []int
		wantErr   error
	}{
		{"empty ok", 0, nil, nil},
		{"matching ascending", 3, []int{1, 4, 9}, nil},
		{"frequency mismatch", 2, []int{1, 4, 9}, domain.ErrPostingFrequencyMismatch},
		{"not ascending", 2, []int{4, 1}, domain.ErrPositionsNotAscending},
		{"duplicate position", 2, []int{4, 4}, domain.ErrPositionsNotAscending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidatePositions(tt.frequency, tt.positions)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidatePositions() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidatePositions() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
