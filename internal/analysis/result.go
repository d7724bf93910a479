package analysis

// NotMentioned is the sentinel used wherever the document is silent.
// Absence is always this string or an empty list, never null.
const NotMentioned = "Not mentioned"

// ConflictPrefix marks a merged scalar field whose chunks disagreed.
const ConflictPrefix = "inconsistent: "

// Tones are the allowed management_tone values, lowercase.
var Tones = []string{"optimistic", "cautious", "neutral", "pessimistic"}

// ConfidenceLevels are the allowed confidence_level values, lowercase.
var ConfidenceLevels = []string{"high", "medium", "low"}

// MaxListItems bounds each list field of a Result.
const MaxListItems = 5

// ForwardGuidance holds management's stated outlook. Each field is either a
// quoted value from the document or the NotMentioned sentinel.
type ForwardGuidance struct {
	Revenue string `json:"revenue"`
	Margin  string `json:"margin"`
	Capex   string `json:"capex"`
}

// Result is the fixed analysis schema returned for a document or a chunk.
type Result struct {
	ManagementTone            string          `json:"management_tone"`
	ConfidenceLevel           string          `json:"confidence_level"`
	KeyPositives              []string        `json:"key_positives"`
	KeyConcerns               []string        `json:"key_concerns"`
	ForwardGuidance           ForwardGuidance `json:"forward_guidance"`
	CapacityUtilizationTrends string          `json:"capacity_utilization_trends"`
	GrowthInitiatives         []string        `json:"growth_initiatives"`
}
