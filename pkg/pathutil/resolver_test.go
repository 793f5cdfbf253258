package pathutil

import (
	"path/filepath"
	"testing"
)

func TestGetReportPath(t *testing.T) {
	p := New("/tmp/exports")

	tests := []struct {
		report    string
		yearMonth string
		want      string
		wantErr   bool
	}{
		{"summary", "202411", filepath.Join("/tmp/exports", "202411", "summary_202411.csv"), false},
		{"banana", "202502", filepath.Join("/tmp/exports", "202502", "banana_202502.csv"), false},
		{"summary", "2024-11", "", true},
		{"summary", "112024x", "", true},
	}

	for _, tt := range tests {
		got, err := p.GetReportPath(tt.report, tt.yearMonth)
		if (err != nil) != tt.wantErr {
			t.Errorf("GetReportPath(%s, %s) error = %v, wantErr %v", tt.report, tt.yearMonth, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("GetReportPath(%s, %s) = %s, want %s", tt.report, tt.yearMonth, got, tt.want)
		}
	}
}

func TestGetClosingPath(t *testing.T) {
	p := New("/tmp/exports")
	want := filepath.Join("/tmp/exports", "closing_2024.csv")
	if got := p.GetClosingPath("2024"); got != want {
		t.Errorf("GetClosingPath(2024) = %s, want %s", got, want)
	}
}
