package forensic

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wyawin/docaudit/internal/analysis"
	"github.com/wyawin/docaudit/internal/home"
)

// Overlay kinds accepted by the store and the download endpoint.
const (
	OverlaySuspicious = "suspicious"
	OverlayFontTypes  = "fonts"
)

// Record is the stored metadata for one analysis, without the heavy
// artifacts.
type Record struct {
	ID            string    `json:"id"`
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	CreatedAt     time.Time `json:"createdAt"`
	Suspicious    bool      `json:"suspicious"`
	SeverityScore float64   `json:"severityScore"`
	Confidence    float64   `json:"confidence"`
	TotalIssues   int       `json:"totalIssues"`
}

// storedReport is the on-disk report document.
type storedReport struct {
	Record Record          `json:"record"`
	Report analysis.Report `json:"report"`
}

// Store indexes completed analyses and persists their artifacts under the
// home directory: the original upload, the report JSON, and the two
// annotated overlays.
type Store struct {
	mu      sync.RWMutex
	homeDir *home.Dir
	records map[string]Record
}

// NewStore creates a store rooted at the home directory and loads the index
// of previously persisted reports.
func NewStore(homeDir *home.Dir) (*Store, error) {
	if err := homeDir.EnsureExists(); err != nil {
		return nil, err
	}

	s := &Store{
		homeDir: homeDir,
		records: make(map[string]Record),
	}
	if err := s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadIndex() error {
	entries, err := os.ReadDir(s.homeDir.ReportsDir())
	if err != nil {
		return fmt.Errorf("failed to read reports directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.homeDir.ReportsDir(), entry.Name()))
		if err != nil {
			continue
		}
		var doc storedReport
		if err := json.Unmarshal(data, &doc); err != nil || doc.Record.ID == "" {
			continue
		}
		s.records[doc.Record.ID] = doc.Record
	}
	return nil
}

// Save persists one analysis result and its original upload.
func (s *Store) Save(res *Result, original []byte) error {
	record := Record{
		ID:            res.ID,
		FileName:      res.FileName,
		FileSize:      res.FileSize,
		CreatedAt:     res.CreatedAt,
		Suspicious:    res.Report.Suspicious,
		SeverityScore: res.Report.SeverityScore,
		Confidence:    res.Report.Confidence,
		TotalIssues:   res.Report.Summary.TotalIssues,
	}

	doc, err := json.MarshalIndent(storedReport{Record: record, Report: res.Report}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(s.homeDir.ReportPath(res.ID), doc, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := os.WriteFile(s.homeDir.OriginalPath(res.ID), original, 0o644); err != nil {
		return fmt.Errorf("failed to write original: %w", err)
	}
	if err := os.WriteFile(s.homeDir.OverlayPath(res.ID, OverlaySuspicious), res.SuspiciousOverlay, 0o644); err != nil {
		return fmt.Errorf("failed to write suspicious overlay: %w", err)
	}
	if err := os.WriteFile(s.homeDir.OverlayPath(res.ID, OverlayFontTypes), res.FontTypeOverlay, 0o644); err != nil {
		return fmt.Errorf("failed to write font overlay: %w", err)
	}

	s.mu.Lock()
	s.records[record.ID] = record
	s.mu.Unlock()
	return nil
}

// List returns all records, newest first.
func (s *Store) List() []Record {
	s.mu.RLock()
	records := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records
}

// Get returns the record for one analysis.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok
}

// Report loads the persisted report for one analysis.
func (s *Store) Report(id string) (analysis.Report, error) {
	s.mu.RLock()
	_, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return analysis.Report{}, fmt.Errorf("analysis %s not found", id)
	}

	data, err := os.ReadFile(s.homeDir.ReportPath(id))
	if err != nil {
		return analysis.Report{}, fmt.Errorf("failed to read report: %w", err)
	}
	var doc storedReport
	if err := json.Unmarshal(data, &doc); err != nil {
		return analysis.Report{}, fmt.Errorf("failed to parse report: %w", err)
	}
	return doc.Report, nil
}

// Overlay loads one persisted overlay document.
func (s *Store) Overlay(id, kind string) ([]byte, error) {
	if kind != OverlaySuspicious && kind != OverlayFontTypes {
		return nil, fmt.Errorf("unknown overlay kind %q", kind)
	}

	s.mu.RLock()
	_, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("analysis %s not found", id)
	}

	data, err := os.ReadFile(s.homeDir.OverlayPath(id, kind))
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay: %w", err)
	}
	return data, nil
}
