package config

import (
	"os"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Radar Data Report.pdf", "Radar Data Report.pdf"},
		{"separator", "north/south", "northsouth"},
		{"list separator", "08:00", "0800"},
		{"leading dots", "...hidden", "hidden"},
		{"surrounding spaces", "  counts  ", "counts"},
		{"control characters", "tab\there\x00", "tabhere"},
		{"unicode", "Отчёт", "Отчёт"},
		{"empty", "", badFileName},
		{"only dots", "../..", badFileName},
		{"only spaces", " . ", badFileName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanFileName(tt.in); got != tt.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnableColorOutput_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if EnableColorOutput(os.Stdout) {
		t.Error("colors enabled with NO_COLOR set")
	}
}
