// Package ingest holds types shared by the lift log importers.
package ingest

// Result holds the outcome of an import.
type Result struct {
	Sessions     int   `json:"sessions"`
	SetsReceived int   `json:"sets_received"`
	SetsInserted int64 `json:"sets_inserted"`
	SetsSkipped  int64 `json:"sets_skipped"` // already stored
	SetsRejected int   `json:"sets_rejected"`

	WarmupsSkipped    int `json:"warmups_skipped"`
	BodyweightSkipped int `json:"bodyweight_skipped"`
	FilteredOut       int `json:"filtered_out,omitempty"`

	RejectedReasons []string `json:"rejected_reasons,omitempty"`
	Message         string   `json:"message,omitempty"`
}
