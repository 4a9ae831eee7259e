package bid

import (
	"errors"
	"testing"
)

func price(v int64) *int64 { return &v }

func TestNextAmount(t *testing.T) {
	tests := []struct {
		name      string
		limit     *int64
		highest   *int64
		increment int64
		want      int64
		wantErr   error
	}{
		{"first bid from limit", price(10_000_000), nil, 50_000, 10_050_000, nil},
		{"on top of known high bid", price(10_000_000), price(10_050_000), 50_000, 10_100_000, nil},
		{"high bid wins over limit", price(20_000_000), price(10_050_000), 50_000, 10_100_000, nil},
		{"zero increment", price(10_000_000), nil, 0, 0, ErrInvalidIncrement},
		{"negative increment", price(10_000_000), price(10_050_000), -50_000, 0, ErrInvalidIncrement},
		{"nothing to base on", nil, nil, 50_000, 0, ErrMissingBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextAmount(tt.limit, tt.highest, tt.increment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NextAmount error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NextAmount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveBase(t *testing.T) {
	hist, snap := price(10_100_000), price(10_050_000)

	if got := ResolveBase(hist, snap); got == nil || *got != 10_100_000 {
		t.Errorf("history should win, got %v", got)
	}
	if got := ResolveBase(nil, snap); got == nil || *got != 10_050_000 {
		t.Errorf("snapshot should back up history, got %v", got)
	}
	if got := ResolveBase(nil, nil); got != nil {
		t.Errorf("no signal should resolve to nil, got %v", got)
	}
}
