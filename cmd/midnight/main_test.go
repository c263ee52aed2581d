package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/echoflaresat/midnightline/midnight"
)

func TestPrintReport(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		at       time.Time
		want     []string
	}{
		{
			name:     "mean only",
			strategy: "mean",
			at:       time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC),
			want:     []string{"2024-01-01T03:00:00Z", "midnight  -45.0000° (mean)", "mean  -45.0000°", "apparent "},
		},
		{
			name:     "outside the frame range",
			strategy: "apparent",
			at:       time.Date(1500, 1, 1, 12, 0, 0, 0, time.UTC),
			want:     []string{"midnight  180.0000° (mean)", "apparent n/a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := midnight.NewFromName(nil, tt.strategy)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			printReport(&buf, calc, tt.at)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			if !strings.HasSuffix(out, "s\n") {
				t.Errorf("output %q does not end with the equation of time", out)
			}
		})
	}
}

func TestParseTimeOrExit(t *testing.T) {
	got := parseTimeOrExit("2025-08-02T15:04:05Z")
	if !got.Equal(time.Date(2025, 8, 2, 15, 4, 5, 0, time.UTC)) {
		t.Errorf("parseTimeOrExit = %v", got)
	}
	if d := time.Since(parseTimeOrExit("")); d < 0 || d > time.Minute {
		t.Errorf("empty time is not now: %v ago", d)
	}
}
