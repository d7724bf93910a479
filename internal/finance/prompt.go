package finance

import (
	"fmt"
	"strings"
)

// SystemPrompt pins the model to extraction-only behavior for financial data.
const SystemPrompt = `You are a financial data extraction specialist. Output only valid JSON.`

const extractionTemplate = `Extract financial statement data from this document.

PERIODS TO EXTRACT: %s

RULES:
1. Extract ONLY values explicitly stated
2. Do NOT calculate or infer values
3. Use null for missing items
4. Preserve exact numbers

OUTPUT JSON:
{
  "periods": [list of periods found],
  "currency": "INR|USD",
  "unit": "crores|millions",
  "line_items": [
    {
      "name": "Revenue from operations",
      "values": {"FY25": 204813.0, "FY24": 163210.0},
      "confidence": "high"
    }
  ]
}

EXTRACT THESE LINE ITEMS (if present):
- Revenue from operations
- Other income
- Cost of materials consumed
- Employee benefits expense
- Other expenses
- Finance costs
- Depreciation
- Profit before tax
- Tax expense
- Profit after tax

DOCUMENT:
%s

Return ONLY the JSON object.`

// BuildExtractionPrompt creates the line-item extraction prompt for a
// document and the periods detected in it.
func BuildExtractionPrompt(text string, periods []string) string {
	return fmt.Sprintf(extractionTemplate, strings.Join(periods, ", "), text)
}
