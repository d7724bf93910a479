package finance

import (
	"regexp"
	"sort"
	"strings"
)

var (
	fyRe         = regexp.MustCompile(`(?i)\bFY\s*(\d{2}|\d{4})\b`)
	fiscalYearRe = regexp.MustCompile(`(?i)fiscal\s+year\s+(\d{4})`)
	yearEndedRe  = regexp.MustCompile(`(?i)year\s+ended\b[^\n]*?(\d{4})`)
)

// ExtractPeriods finds fiscal-year labels in the document (FY25, FY 2025,
// "fiscal year 2025", "year ended ... 2025"), normalized to FYnn, newest
// first.
func ExtractPeriods(text string) []string {
	seen := map[string]bool{}
	var periods []string
	add := func(year string) {
		if len(year) == 4 {
			year = year[2:]
		}
		fy := "FY" + year
		if !seen[fy] {
			seen[fy] = true
			periods = append(periods, fy)
		}
	}

	for _, re := range []*regexp.Regexp{fyRe, fiscalYearRe, yearEndedRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			add(m[1])
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(periods)))
	return periods
}

// DetectCurrencyUnit inspects the document header for currency (INR/USD) and
// reporting unit (crores/millions).
func DetectCurrencyUnit(text string) (currency, unit string) {
	header := text
	if len(header) > 2000 {
		header = header[:2000]
	}
	header = strings.ToLower(header)

	currency = "INR"
	switch {
	case strings.Contains(header, "₹"), strings.Contains(header, "rs."), strings.Contains(header, "rupees"):
		currency = "INR"
	case strings.Contains(header, "$"), strings.Contains(header, "usd"):
		currency = "USD"
	}

	if strings.Contains(header, "crore") {
		unit = "crores"
	} else if strings.Contains(header, "million") {
		unit = "millions"
	}
	return currency, unit
}
