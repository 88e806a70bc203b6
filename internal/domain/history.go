package domain

// RunEntry is one persisted project validation run.
type RunEntry struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Status     string `json:"status"`
	Files      int    `json:"files"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
}
