package models

// ImportResult aggregates one import run. Errors keeps row order; a
// failed row never aborts the batch and never clears Success, which
// reports only that the file itself was processed.
type ImportResult struct {
	Success  bool     `json:"success"`
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}
