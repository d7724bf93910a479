// Package finance extracts structured income-statement data from financial
// documents via the inference endpoint and derives a small set of metrics
// from the extracted values only. Nothing is inferred or back-filled.
package finance

// Line item status values per period.
const (
	StatusExtracted  = "extracted"
	StatusCalculated = "calculated"
)

// LineItem is one income-statement row with values per period.
type LineItem struct {
	Name       string             `json:"name"`
	Values     map[string]float64 `json:"values"`
	Status     map[string]string  `json:"status,omitempty"`
	Confidence string             `json:"confidence,omitempty"`
}

// Statement is the extracted (and optionally derived) financial data for one
// document.
type Statement struct {
	SourceDocument string     `json:"source_document,omitempty"`
	Periods        []string   `json:"periods"`
	Currency       string     `json:"currency"`
	Unit           string     `json:"unit"`
	LineItems      []LineItem `json:"line_items"`
}

// Item returns the named line item, or nil.
func (st *Statement) Item(name string) *LineItem {
	for i := range st.LineItems {
		if st.LineItems[i].Name == name {
			return &st.LineItems[i]
		}
	}
	return nil
}
