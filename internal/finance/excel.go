package finance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// displayOrder fixes the row layout of the exported income statement. Blank
// entries render as spacer rows, trailing-colon entries as section headers.
var displayOrder = []string{
	"Revenue from operations",
	"Other income",
	"Total Revenue",
	"",
	"Expenses:",
	"Cost of materials consumed",
	"Employee benefits expense",
	"Other expenses",
	"",
	"Gross Profit",
	"Gross Margin",
	"EBITDA",
	"Finance costs",
	"Depreciation",
	"Profit before tax",
	"Tax expense",
	"Profit after tax",
}

// BuildWorkbook renders the statement as an XLSX workbook with an Income
// Statement sheet (one column per period plus a status column) and a
// Metadata sheet.
func BuildWorkbook(st *Statement) ([]byte, error) {
	periods := exportPeriods(st)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Income Statement"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	setCell := func(sheetName string, col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}

	header := append([]string{"Particulars"}, periods...)
	header = append(header, "Status")
	for i, h := range header {
		if err := setCell(sheet, i+1, 1, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, name := range displayOrder {
		if name == "" {
			row++
			continue
		}
		if name[len(name)-1] == ':' {
			if err := setCell(sheet, 1, row, name); err != nil {
				return nil, err
			}
			row++
			continue
		}

		if err := setCell(sheet, 1, row, name); err != nil {
			return nil, err
		}
		item := st.Item(name)
		if item == nil {
			if err := setCell(sheet, len(periods)+2, row, "Not found"); err != nil {
				return nil, err
			}
			row++
			continue
		}

		extracted, calculated := 0, 0
		for i, p := range periods {
			v, ok := item.Values[p]
			if !ok {
				continue
			}
			if name == ItemGrossMargin {
				if err := setCell(sheet, i+2, row, fmt.Sprintf("%.4f", v)); err != nil {
					return nil, err
				}
			} else {
				if err := setCell(sheet, i+2, row, v); err != nil {
					return nil, err
				}
			}
			if item.Status[p] == StatusCalculated {
				calculated++
			} else {
				extracted++
			}
		}
		if err := setCell(sheet, len(periods)+2, row, overallStatus(extracted, calculated, len(periods))); err != nil {
			return nil, err
		}
		row++
	}

	const meta = "Metadata"
	if _, err := f.NewSheet(meta); err != nil {
		return nil, fmt.Errorf("create metadata sheet: %w", err)
	}
	metaRows := [][2]string{
		{"Field", "Value"},
		{"Source Document", st.SourceDocument},
		{"Currency", st.Currency},
		{"Unit", st.Unit},
		{"Periods", strings.Join(periods, ", ")},
	}
	for i, r := range metaRows {
		if err := setCell(meta, 1, i+1, r[0]); err != nil {
			return nil, err
		}
		if err := setCell(meta, 2, i+1, r[1]); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func overallStatus(extracted, calculated, periods int) string {
	total := extracted + calculated
	switch {
	case total == 0:
		return "Not found"
	case total < periods:
		return "Partial"
	case calculated > 0 && extracted == 0:
		return "Calculated"
	default:
		return "Extracted"
	}
}

func exportPeriods(st *Statement) []string {
	seen := map[string]bool{}
	var periods []string
	for _, p := range st.Periods {
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	var extra []string
	for _, item := range st.LineItems {
		for p := range item.Values {
			if !seen[p] {
				seen[p] = true
				extra = append(extra, p)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(extra)))
	return append(periods, extra...)
}
