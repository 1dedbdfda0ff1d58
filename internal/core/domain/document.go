package domain

// Document is a unit of retrievable knowledge.
// Content is read once at startup and never mutated afterwards.
type Document struct {
	// Name is the unique identifier, stable across restarts (the file name).
	Name string

	// Content is the full text of the document.
	Content string

	// SizeBytes is the byte length of Content.
	SizeBytes int
}

// NewDocument builds a Document and derives its size.
func NewDocument(name, content string) Document {
	return Document{
		Name:      name,
		Content:   content,
		SizeBytes: len(content),
	}
}

// DocumentInfo is the listing view of a document.
type DocumentInfo struct {
	Name      string `json:"filename"`
	SizeBytes int    `json:"size"`
}

// Info returns the listing view of the document.
func (d Document) Info() DocumentInfo {
	return DocumentInfo{Name: d.Name, SizeBytes: d.SizeBytes}
}

// Partition names a statically configured subset of the catalog.
type Partition string

// Known partitions.
const (
	// PartitionResident documents are injected into every LLM call.
	PartitionResident Partition = "resident"

	// PartitionSearchable documents are only reachable through the tools.
	PartitionSearchable Partition = "searchable"
)

// IsValid returns true if the partition is recognised.
func (p Partition) IsValid() bool {
	return p == PartitionResident || p == PartitionSearchable
}

// String returns the string representation.
func (p Partition) String() string {
	return string(p)
}

// Catalog lists the configured file names per partition.
// A name may appear in both partitions.
type Catalog struct {
	Resident   []string
	Searchable []string
}

// Names returns every distinct name in the catalog, resident names first,
// preserving configuration order.
func (c Catalog) Names() []string {
	seen := make(map[string]struct{}, len(c.Resident)+len(c.Searchable))
	names := make([]string, 0, len(c.Resident)+len(c.Searchable))
	for _, list := range [][]string{c.Resident, c.Searchable} {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Members returns the configured names of a partition.
func (c Catalog) Members(p Partition) []string {
	switch p {
	case PartitionResident:
		return c.Resident
	case PartitionSearchable:
		return c.Searchable
	default:
		return nil
	}
}

// LoadStatus describes the outcome of reading one catalog file.
type LoadStatus string

// Load statuses.
const (
	LoadStatusLoaded  LoadStatus = "loaded"
	LoadStatusMissing LoadStatus = "missing"
	LoadStatusFailed  LoadStatus = "failed"
)

// FileStatus is the per-file entry of a LoadReport.
type FileStatus struct {
	Name      string
	Status    LoadStatus
	SizeBytes int
	Reason    string
}

// LoadReport summarises a document store load.
type LoadReport struct {
	LoadedCount int
	TotalBytes  int
	Files       []FileStatus

	// ResidentCount and ResidentBytes measure the per-request context cost.
	ResidentCount int
	ResidentBytes int
}

// Failed returns the files that could not be loaded.
func (r LoadReport) Failed() []FileStatus {
	var failed []FileStatus
	for _, f := range r.Files {
		if f.Status != LoadStatusLoaded {
			failed = append(failed, f)
		}
	}
	return failed
}
