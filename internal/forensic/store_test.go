package forensic

import (
	"bytes"
	"testing"
	"time"

	"github.com/wyawin/docaudit/internal/analysis"
	"github.com/wyawin/docaudit/internal/home"
)

func testResult(id string) *Result {
	return &Result{
		ID:        id,
		FileName:  "doc.pdf",
		FileSize:  4,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Report: analysis.Report{
			Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Suspicious:    true,
			SeverityScore: 0.4,
			Confidence:    0.86,
			Summary: analysis.Summary{
				TotalIssues:      1,
				FontFamilyIssues: 1,
			},
		},
		SuspiciousOverlay: []byte("%PDF-suspicious"),
		FontTypeOverlay:   []byte("%PDF-fonts"),
	}
}

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	h, err := home.New(dir)
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}
	s, err := NewStore(h)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	res := testResult("abc-123")
	if err := s.Save(res, []byte("%PDF")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	record, ok := s.Get("abc-123")
	if !ok {
		t.Fatal("Get() returned not found")
	}
	if record.FileName != "doc.pdf" {
		t.Errorf("FileName = %q, want %q", record.FileName, "doc.pdf")
	}
	if !record.Suspicious {
		t.Error("Suspicious = false, want true")
	}
	if record.TotalIssues != 1 {
		t.Errorf("TotalIssues = %d, want 1", record.TotalIssues)
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) found a record")
	}
}

func TestStore_Report(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	if err := s.Save(testResult("abc-123"), []byte("%PDF")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	report, err := s.Report("abc-123")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if report.SeverityScore != 0.4 {
		t.Errorf("SeverityScore = %v, want 0.4", report.SeverityScore)
	}

	if _, err := s.Report("missing"); err == nil {
		t.Error("Report(missing) error = nil, want error")
	}
}

func TestStore_Overlay(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	if err := s.Save(testResult("abc-123"), []byte("%PDF")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := s.Overlay("abc-123", OverlaySuspicious)
	if err != nil {
		t.Fatalf("Overlay(suspicious) error = %v", err)
	}
	if !bytes.Equal(data, []byte("%PDF-suspicious")) {
		t.Errorf("suspicious overlay = %q", data)
	}

	data, err = s.Overlay("abc-123", OverlayFontTypes)
	if err != nil {
		t.Fatalf("Overlay(fonts) error = %v", err)
	}
	if !bytes.Equal(data, []byte("%PDF-fonts")) {
		t.Errorf("fonts overlay = %q", data)
	}

	if _, err := s.Overlay("abc-123", "bogus"); err == nil {
		t.Error("Overlay(bogus kind) error = nil, want error")
	}
	if _, err := s.Overlay("missing", OverlaySuspicious); err == nil {
		t.Error("Overlay(missing id) error = nil, want error")
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	older := testResult("older")
	older.CreatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	newer := testResult("newer")
	newer.CreatedAt = time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)

	if err := s.Save(older, []byte("%PDF")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(newer, []byte("%PDF")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records := s.List()
	if len(records) != 2 {
		t.Fatalf("List() = %d records, want 2", len(records))
	}
	if records[0].ID != "newer" || records[1].ID != "older" {
		t.Errorf("order = [%s, %s], want [newer, older]", records[0].ID, records[1].ID)
	}
}

func TestStore_IndexSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	s := newTestStore(t, dir)
	if err := s.Save(testResult("abc-123"), []byte("%PDF")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened := newTestStore(t, dir)
	record, ok := reopened.Get("abc-123")
	if !ok {
		t.Fatal("record not found after reopen")
	}
	if record.SeverityScore != 0.4 {
		t.Errorf("SeverityScore = %v, want 0.4", record.SeverityScore)
	}
}
