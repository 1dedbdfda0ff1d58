package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
	"github.com/lillianfidler/churchill-falls-assistant/internal/metrics"
)

// Ensure DocumentStore implements the interface.
var _ driving.DocumentService = (*DocumentStore)(nil)

// DocumentStore holds the loaded catalog in memory.
// It is read-only after LoadDocuments returns and is shared across
// requests without locking.
type DocumentStore struct {
	docs    map[string]domain.Document
	order   []string
	catalog domain.Catalog
	report  domain.LoadReport
}

// LoadDocuments reads every catalog name once from source.
// A missing or unreadable file is recorded in the report and skipped.
// Returns domain.ErrNoResidentDocuments, together with the report, when
// no resident document could be loaded.
func LoadDocuments(
	ctx context.Context, source driven.DocumentSource, catalog domain.Catalog,
) (*DocumentStore, domain.LoadReport, error) {
	logger.Section("Document Load")
	logger.Debug("Loading %d documents from %s", len(catalog.Names()), source.Location())

	s := &DocumentStore{
		docs:    make(map[string]domain.Document),
		catalog: catalog,
	}

	for _, name := range catalog.Names() {
		if err := ctx.Err(); err != nil {
			return nil, s.report, err
		}

		data, err := source.ReadDocument(ctx, name)
		if err != nil {
			status := domain.LoadStatusFailed
			if errors.Is(err, fs.ErrNotExist) {
				status = domain.LoadStatusMissing
			}
			logger.Warn("Could not load %s: %v", name, err)
			s.report.Files = append(s.report.Files, domain.FileStatus{
				Name:   name,
				Status: status,
				Reason: err.Error(),
			})
			continue
		}

		doc := domain.NewDocument(name, string(data))
		s.docs[name] = doc
		s.order = append(s.order, name)
		s.report.LoadedCount++
		s.report.TotalBytes += doc.SizeBytes
		s.report.Files = append(s.report.Files, domain.FileStatus{
			Name:      name,
			Status:    domain.LoadStatusLoaded,
			SizeBytes: doc.SizeBytes,
		})
		logger.Info("Loaded %s (%.1f KB)", name, float64(doc.SizeBytes)/1024)
	}

	for _, name := range catalog.Resident {
		if doc, ok := s.docs[name]; ok {
			s.report.ResidentCount++
			s.report.ResidentBytes += doc.SizeBytes
		}
	}

	logger.Info("Loaded %d/%d documents (%.1f KB), %d resident (%.1f KB per request)",
		s.report.LoadedCount, len(catalog.Names()), float64(s.report.TotalBytes)/1024,
		s.report.ResidentCount, float64(s.report.ResidentBytes)/1024)

	counts := map[domain.LoadStatus]int{}
	for _, f := range s.report.Files {
		counts[f.Status]++
	}
	for _, status := range []domain.LoadStatus{domain.LoadStatusLoaded, domain.LoadStatusMissing, domain.LoadStatusFailed} {
		metrics.DocumentsLoaded.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
	metrics.DocumentBytes.Set(float64(s.report.TotalBytes))

	if s.report.ResidentCount == 0 {
		return nil, s.report, fmt.Errorf("%w: none of %d resident files found in %s",
			domain.ErrNoResidentDocuments, len(catalog.Resident), source.Location())
	}

	return s, s.report, nil
}

// Get retrieves a loaded document by name.
func (s *DocumentStore) Get(_ context.Context, name string) (*domain.Document, error) {
	doc, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", name, domain.ErrNotFound)
	}
	return &doc, nil
}

// List returns every loaded document in load order.
func (s *DocumentStore) List(_ context.Context) []domain.DocumentInfo {
	infos := make([]domain.DocumentInfo, 0, len(s.order))
	for _, name := range s.order {
		infos = append(infos, s.docs[name].Info())
	}
	return infos
}

// ListPartition returns the loaded members of a partition in catalog order.
func (s *DocumentStore) ListPartition(_ context.Context, p domain.Partition) []domain.DocumentInfo {
	docs := s.Partition(p)
	infos := make([]domain.DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, doc.Info())
	}
	return infos
}

// Report returns the report of the startup load.
func (s *DocumentStore) Report() domain.LoadReport {
	return s.report
}

// Partition returns the loaded documents of a partition in catalog order.
func (s *DocumentStore) Partition(p domain.Partition) []domain.Document {
	members := s.catalog.Members(p)
	docs := make([]domain.Document, 0, len(members))
	for _, name := range members {
		if doc, ok := s.docs[name]; ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// InPartition reports whether a loaded document belongs to the partition.
func (s *DocumentStore) InPartition(name string, p domain.Partition) bool {
	if _, ok := s.docs[name]; !ok {
		return false
	}
	for _, member := range s.catalog.Members(p) {
		if member == name {
			return true
		}
	}
	return false
}

// ResidentContext renders the resident partition as a context block for
// the system preamble.
func (s *DocumentStore) ResidentContext() string {
	var b strings.Builder
	for _, doc := range s.Partition(domain.PartitionResident) {
		b.WriteString("\n\n=== ")
		b.WriteString(doc.Name)
		b.WriteString(" ===\n")
		b.WriteString(doc.Content)
	}
	return b.String()
}
