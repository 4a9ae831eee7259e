package model

import (
	"testing"
	"time"
)

func TestParseCountdown(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"plain", "00:01:05:30", time.Hour + 5*time.Minute + 30*time.Second, false},
		{"days", "02:00:00:00", 48 * time.Hour, false},
		{"zero", "00:00:00:00", 0, false},
		{"decorated", "0 hari:1 jam:05 menit:30 detik", time.Hour + 5*time.Minute + 30*time.Second, false},
		{"three parts", "01:05:30", 0, true},
		{"empty", "", 0, true},
		{"no digits part", "xx:00:10:00", 10 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCountdown(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCountdown(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseCountdown(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCountdownMinutes(t *testing.T) {
	// Seconds are ignored, matching the page's minute granularity.
	if m, ok := CountdownMinutes("00:00:09:59"); !ok || m != 9 {
		t.Errorf("CountdownMinutes = %d, %v, want 9, true", m, ok)
	}
	if m, ok := CountdownMinutes("00:02:00:30"); !ok || m != 120 {
		t.Errorf("CountdownMinutes = %d, %v, want 120, true", m, ok)
	}
	if _, ok := CountdownMinutes("broken"); ok {
		t.Error("CountdownMinutes accepted an unparseable string")
	}
}

func TestSnapshotEnded(t *testing.T) {
	if !(Snapshot{Countdown: "00:00:00:00"}).Ended() {
		t.Error("zero countdown should mark the auction ended")
	}
	if !(Snapshot{Status: "Selesai"}).Ended() {
		t.Error("terminal status should mark the auction ended")
	}
	if (Snapshot{Countdown: "00:00:05:00", Status: "Sedang Berlangsung"}).Ended() {
		t.Error("running auction reported as ended")
	}
	if (Snapshot{}).Ended() {
		t.Error("unknown countdown and status reported as ended")
	}
}
