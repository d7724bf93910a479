package finance

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type wireLineItem struct {
	Name       string              `json:"name"`
	Values     map[string]*float64 `json:"values"`
	Confidence string              `json:"confidence"`
}

type wireStatement struct {
	Periods   []string       `json:"periods"`
	Currency  string         `json:"currency"`
	Unit      string         `json:"unit"`
	LineItems []wireLineItem `json:"line_items"`
}

// ParseStatement decodes the model's extraction output into a Statement.
// Null values (the model's representation of "not stated") are dropped; every
// surviving value is flagged as extracted.
func ParseStatement(raw json.RawMessage, source string) (*Statement, error) {
	var wire wireStatement
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode extraction output: %w", err)
	}
	if len(wire.LineItems) == 0 {
		return nil, errors.New("extraction output contains no line items")
	}

	st := &Statement{
		SourceDocument: source,
		Periods:        wire.Periods,
		Currency:       wire.Currency,
		Unit:           wire.Unit,
	}
	for _, item := range wire.LineItems {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		li := LineItem{
			Name:       name,
			Values:     map[string]float64{},
			Status:     map[string]string{},
			Confidence: item.Confidence,
		}
		for period, v := range item.Values {
			if v == nil {
				continue
			}
			li.Values[period] = *v
			li.Status[period] = StatusExtracted
		}
		if len(li.Values) == 0 {
			continue
		}
		st.LineItems = append(st.LineItems, li)
	}
	if len(st.LineItems) == 0 {
		return nil, errors.New("extraction output contains no usable values")
	}
	return st, nil
}
