package finance

import (
	"reflect"
	"testing"
)

func TestExtractPeriods(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "fy short form",
			text: "Revenue for FY25 grew 12% over FY24.",
			want: []string{"FY25", "FY24"},
		},
		{
			name: "fy with space and full year",
			text: "Results for FY 2025 compared with FY 2024.",
			want: []string{"FY25", "FY24"},
		},
		{
			name: "fiscal year phrase",
			text: "During fiscal year 2025 the company expanded.",
			want: []string{"FY25"},
		},
		{
			name: "year ended phrase",
			text: "For the year ended March 31, 2025, revenue was Rs 500 crores.",
			want: []string{"FY25"},
		},
		{
			name: "dedup across forms",
			text: "FY25 results. In fiscal year 2025 margins held.",
			want: []string{"FY25"},
		},
		{
			name: "none",
			text: "No periods mentioned here.",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPeriods(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPeriods = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectCurrencyUnit(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantCurrency string
		wantUnit     string
	}{
		{"rupees crores", "All figures in Rs. crores unless stated.", "INR", "crores"},
		{"dollar millions", "Revenue of $4.2 million this quarter.", "USD", "millions"},
		{"rupee symbol", "Revenue of ₹500 crores.", "INR", "crores"},
		{"default inr no unit", "Plain transcript with no money talk.", "INR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			currency, unit := DetectCurrencyUnit(tt.text)
			if currency != tt.wantCurrency || unit != tt.wantUnit {
				t.Errorf("DetectCurrencyUnit = (%q, %q), want (%q, %q)", currency, unit, tt.wantCurrency, tt.wantUnit)
			}
		})
	}
}
