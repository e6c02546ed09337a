package models

type FileTags struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

type TrackOutcome string

const (
	OutcomeResized   TrackOutcome = "resized"
	OutcomeAdded     TrackOutcome = "added"
	OutcomeUnchanged TrackOutcome = "unchanged"
	OutcomeMissing   TrackOutcome = "missing"
	OutcomeSkipped   TrackOutcome = "skipped"
)

// OutcomeRecord is the result of processing one track file. Reason is only
// set for skipped files.
type OutcomeRecord struct {
	Path    string       `json:"path"`
	Outcome TrackOutcome `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
}
