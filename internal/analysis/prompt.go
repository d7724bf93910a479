package analysis

import "fmt"

// SystemPrompt pins the model to extraction-only behavior. The rules exist to
// prevent hallucinated values; the sentinel is the only permitted stand-in
// for missing information.
const SystemPrompt = `You are a professional financial research analyst.

CRITICAL RULES:
1. Use ONLY information explicitly stated in the document.
2. Do NOT infer, guess, or use external knowledge.
3. If information is missing or unclear, return the value: "Not mentioned"
4. Do NOT add explanations, notes, or commentary.
5. Output MUST be valid JSON matching the provided schema.
6. Do NOT include markdown code blocks or any text outside the JSON object.

Any violation of these rules is unacceptable.`

const promptTemplate = `Analyze the following earnings call transcript or management discussion.

Extract the information strictly based on the text.

Return the result in the following JSON schema:

{
  "management_tone": "<optimistic|cautious|neutral|pessimistic>",
  "confidence_level": "<high|medium|low>",
  "key_positives": ["<item1>", "<item2>", ...],
  "key_concerns": ["<item1>", "<item2>", ...],
  "forward_guidance": {
    "revenue": "<value or 'Not mentioned'>",
    "margin": "<value or 'Not mentioned'>",
    "capex": "<value or 'Not mentioned'>"
  },
  "capacity_utilization_trends": "<value or 'Not mentioned'>",
  "growth_initiatives": ["<item1>", "<item2>", ...]
}

Rules:
- If a value is not mentioned in the text, use "Not mentioned"
- Each list may contain at most 5 items
- Do NOT make up information
- Do NOT include any text outside the JSON object
- Do NOT use markdown code blocks

DOCUMENT TEXT:
---
%s
---`

// BuildPrompt creates the per-chunk user prompt.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
