package models

// ProcessReport tallies the outcomes of one library walk. Reports are plain
// values, merged by the caller, so no run statistics live in globals.
type ProcessReport struct {
	TotalFiles   int      `json:"total_files"`
	Resized      int      `json:"resized"`
	Added        int      `json:"added"`
	Unchanged    int      `json:"unchanged"`
	Missing      int      `json:"missing"`
	Skipped      int      `json:"skipped"`
	MissingPaths []string `json:"missing_paths"`
	SkippedPaths []string `json:"skipped_paths"`
}

// Record adds one file outcome to the tally.
func (report *ProcessReport) Record(record OutcomeRecord) {
	report.TotalFiles++

	switch record.Outcome {
	case OutcomeResized:
		report.Resized++
	case OutcomeAdded:
		report.Added++
	case OutcomeUnchanged:
		report.Unchanged++
	case OutcomeMissing:
		report.Missing++
		report.MissingPaths = append(report.MissingPaths, record.Path)
	case OutcomeSkipped:
		report.Skipped++
		report.SkippedPaths = append(report.SkippedPaths, record.Path)
	}
}

// Merge folds another report into this one.
func (report *ProcessReport) Merge(other ProcessReport) {
	report.TotalFiles += other.TotalFiles
	report.Resized += other.Resized
	report.Added += other.Added
	report.Unchanged += other.Unchanged
	report.Missing += other.Missing
	report.Skipped += other.Skipped
	report.MissingPaths = append(report.MissingPaths, other.MissingPaths...)
	report.SkippedPaths = append(report.SkippedPaths, other.SkippedPaths...)
}
