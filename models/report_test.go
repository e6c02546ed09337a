package models

import "testing"

func TestProcessReportRecord(t *testing.T) {
	report := ProcessReport{}

	report.Record(OutcomeRecord{Path: "a.mp3", Outcome: OutcomeResized})
	report.Record(OutcomeRecord{Path: "b.mp3", Outcome: OutcomeAdded})
	report.Record(OutcomeRecord{Path: "c.mp3", Outcome: OutcomeUnchanged})
	report.Record(OutcomeRecord{Path: "d.mp3", Outcome: OutcomeMissing})
	report.Record(OutcomeRecord{Path: "e.mp3", Outcome: OutcomeSkipped, Reason: "missing tags"})

	if report.TotalFiles != 5 {
		t.Errorf("expected 5 total files, got %d", report.TotalFiles)
	}
	if report.Resized != 1 || report.Added != 1 || report.Unchanged != 1 || report.Missing != 1 || report.Skipped != 1 {
		t.Errorf("unexpected tally: %+v", report)
	}
	if len(report.MissingPaths) != 1 || report.MissingPaths[0] != "d.mp3" {
		t.Errorf("unexpected missing paths: %v", report.MissingPaths)
	}
	if len(report.SkippedPaths) != 1 || report.SkippedPaths[0] != "e.mp3" {
		t.Errorf("unexpected skipped paths: %v", report.SkippedPaths)
	}
}

func TestProcessReportMerge(t *testing.T) {
	first := ProcessReport{}
	first.Record(OutcomeRecord{Path: "a.mp3", Outcome: OutcomeAdded})
	first.Record(OutcomeRecord{Path: "b.mp3", Outcome: OutcomeMissing})

	second := ProcessReport{}
	second.Record(OutcomeRecord{Path: "c.mp3", Outcome: OutcomeResized})
	second.Record(OutcomeRecord{Path: "d.mp3", Outcome: OutcomeSkipped, Reason: "fetch error"})

	first.Merge(second)

	if first.TotalFiles != 4 {
		t.Errorf("expected 4 total files after merge, got %d", first.TotalFiles)
	}
	if first.Added != 1 || first.Resized != 1 || first.Missing != 1 || first.Skipped != 1 {
		t.Errorf("unexpected tally after merge: %+v", first)
	}
	if len(first.MissingPaths) != 1 || len(first.SkippedPaths) != 1 {
		t.Errorf("path lists not merged: %+v", first)
	}
}
