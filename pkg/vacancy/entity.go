package vacancy

// JobPosting is the structured summary of a job advertisement extracted from
// free text. It is ephemeral: produced per request, never stored server-side.
// Description is a short synthesized summary, not the raw posting text.
type JobPosting struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Keywords     []string `json:"keywords"`
	Salary       string   `json:"salary,omitempty"`
}

// Field caps promised to callers; enforced in code after synthesis because
// the model treats "max N items" as advisory.
const (
	MaxRequirements = 10
	MaxKeywords     = 15
)
