package dto

import "fmt"

// ImportSummaryResponse reports the outcome of a bulk import. Row failures
// are non-fatal: each row is attempted independently and both counts are
// reported.
type ImportSummaryResponse struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Summary renders the trailing batch message.
func (r ImportSummaryResponse) Summary() string {
	return fmt.Sprintf("%d succeeded, %d failed", r.Imported, r.Failed)
}
