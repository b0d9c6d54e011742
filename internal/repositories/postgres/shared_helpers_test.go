package postgres

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/edigitalnetwork/course-service/internal/repositories"
)

func TestHandleDBError(t *testing.T) {
	other := errors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil", wantNil: true},
		{name: "not found", err: gorm.ErrRecordNotFound, wantIs: repositories.ErrNotFound},
		{name: "duplicate", err: gorm.ErrDuplicatedKey, wantIs: repositories.ErrDuplicate},
		{name: "other", err: other, wantIs: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := handleDBError(tt.err, "get course")
			if tt.wantNil {
				if got != nil {
					t.Fatalf("handleDBError(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.wantIs) {
				t.Errorf("handleDBError() = %v, want wrapping %v", got, tt.wantIs)
			}
		})
	}
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"physics", "%physics%"},
		{"  algebra ", "%algebra%"},
		{"100%", `%100\%%`},
		{"csc_1", `%csc\_1%`},
		{`a\b`, `%a\\b%`},
	}

	for _, tt := range tests {
		if got := containsPattern(tt.in); got != tt.want {
			t.Errorf("containsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
