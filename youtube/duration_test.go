package youtube

import (
	"testing"
	"time"

	"ytnotify/config"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		iso     string
		want    time.Duration
		wantErr bool
	}{
		{iso: "PT1H5M30S", want: time.Hour + 5*time.Minute + 30*time.Second},
		{iso: "PT15M", want: 15 * time.Minute},
		{iso: "PT45S", want: 45 * time.Second},
		{iso: "P1DT2H", want: 26 * time.Hour},
		{iso: "PT0S", want: 0},
		{iso: "P", want: 0},
		{iso: "", wantErr: true},
		{iso: "1h30m", wantErr: true},
		{iso: "PTXS", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseISODuration(tt.iso)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseISODuration(%q) expected error, got %v", tt.iso, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseISODuration(%q) unexpected error: %v", tt.iso, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseISODuration(%q) = %v, want %v", tt.iso, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		lang config.Language
		want string
	}{
		{"full english", time.Hour + 5*time.Minute + 30*time.Second, config.LangEnglish, "1h 5m 30s"},
		{"full korean", time.Hour + 5*time.Minute + 30*time.Second, config.LangKorean, "1시간 5분 30초"},
		{"minutes only", 15 * time.Minute, config.LangEnglish, "15m"},
		{"seconds only", 45 * time.Second, config.LangEnglish, "45s"},
		{"zero english", 0, config.LangEnglish, "0s"},
		{"zero korean", 0, config.LangKorean, "0초"},
		{"hours no minutes", 2*time.Hour + 3*time.Second, config.LangEnglish, "2h 3s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.d, tt.lang); got != tt.want {
				t.Errorf("FormatDuration(%v, %s) = %q, want %q", tt.d, tt.lang, got, tt.want)
			}
		})
	}
}

func TestFormatISODuration(t *testing.T) {
	if got := FormatISODuration("PT1H5M30S", config.LangEnglish); got != "1h 5m 30s" {
		t.Errorf("FormatISODuration valid = %q, want %q", got, "1h 5m 30s")
	}
	// Unparseable input degrades to a zero duration rather than failing the run.
	if got := FormatISODuration("garbage", config.LangEnglish); got != "0s" {
		t.Errorf("FormatISODuration invalid = %q, want %q", got, "0s")
	}
}
