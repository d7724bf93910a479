package finance

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	st := testStatement()
	Derive(st)

	data, err := BuildWorkbook(st)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated workbook does not open: %v", err)
	}
	defer f.Close()

	const sheet = "Income Statement"
	got, err := f.GetCellValue(sheet, "A1")
	if err != nil || got != "Particulars" {
		t.Errorf("A1 = %q (err %v), want Particulars", got, err)
	}
	if got, _ := f.GetCellValue(sheet, "B1"); got != "FY25" {
		t.Errorf("B1 = %q, want FY25", got)
	}
	if got, _ := f.GetCellValue(sheet, "D1"); got != "Status" {
		t.Errorf("D1 = %q, want Status", got)
	}

	// Row 2 is the first display row: Revenue from operations.
	if got, _ := f.GetCellValue(sheet, "A2"); got != "Revenue from operations" {
		t.Errorf("A2 = %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "B2"); got != "500" {
		t.Errorf("B2 = %q, want 500", got)
	}
	if got, _ := f.GetCellValue(sheet, "D2"); got != "Extracted" {
		t.Errorf("D2 = %q, want Extracted", got)
	}

	if got, _ := f.GetCellValue("Metadata", "A1"); got != "Field" {
		t.Errorf("Metadata A1 = %q", got)
	}
	if got, _ := f.GetCellValue("Metadata", "B3"); got != "INR" {
		t.Errorf("Metadata B3 = %q, want INR", got)
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		extracted, calculated, periods int
		want                           string
	}{
		{0, 0, 2, "Not found"},
		{1, 0, 2, "Partial"},
		{2, 0, 2, "Extracted"},
		{0, 2, 2, "Calculated"},
		{1, 1, 2, "Extracted"},
	}
	for _, tt := range tests {
		if got := overallStatus(tt.extracted, tt.calculated, tt.periods); got != tt.want {
			t.Errorf("overallStatus(%d, %d, %d) = %q, want %q", tt.extracted, tt.calculated, tt.periods, got, tt.want)
		}
	}
}

func TestExportPeriodsIncludesExtras(t *testing.T) {
	st := &Statement{
		Periods: []string{"FY25"},
		LineItems: []LineItem{
			{Name: "Revenue from operations", Values: map[string]float64{"FY25": 1, "FY23": 2}},
		},
	}
	got := exportPeriods(st)
	if len(got) != 2 || got[0] != "FY25" || got[1] != "FY23" {
		t.Errorf("exportPeriods = %v, want [FY25 FY23]", got)
	}
}
