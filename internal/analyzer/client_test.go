package analyzer

import (
	"testing"
	"time"
)

func TestStripCodeBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"fence mid-text left alone", "prefix ```json\n{}\n```", "prefix ```json\n{}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeBlock(tt.in); got != tt.want {
				t.Errorf("stripCodeBlock(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghij", 4); got != "abcd..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{Token: "tok"})
	if c.Model() != "gpt-4o" {
		t.Errorf("default model = %q", c.Model())
	}
	if c.Stats == nil {
		t.Error("stats not initialized")
	}
}

func TestStatsSnapshot(t *testing.T) {
	s := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400} {
		s.Record(ms)
	}

	snap := s.SnapshotNow()
	if snap.Count != 4 {
		t.Fatalf("count = %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 400 {
		t.Errorf("min/max = %d/%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 250 {
		t.Errorf("avg = %v", snap.AvgMs)
	}
	if snap.P50Ms != 250 {
		t.Errorf("p50 = %v", snap.P50Ms)
	}
}

func TestStatsEmptySnapshot(t *testing.T) {
	s := NewStats(time.Minute)
	if snap := s.SnapshotNow(); snap.Count != 0 {
		t.Errorf("empty snapshot = %+v", snap)
	}
}

func TestStatsNegativeDurationClamped(t *testing.T) {
	s := NewStats(time.Minute)
	s.Record(-5)
	if snap := s.SnapshotNow(); snap.MinMs != 0 {
		t.Errorf("min = %d, want 0", snap.MinMs)
	}
}
