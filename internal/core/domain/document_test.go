package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDocument_DerivesSize tests that the size is the byte length of the content
func TestNewDocument_DerivesSize(t *testing.T) {
	doc := NewDocument("MOU.txt", "Québec")

	assert.Equal(t, "MOU.txt", doc.Name)
	assert.Equal(t, "Québec", doc.Content)
	assert.Equal(t, 7, doc.SizeBytes)
}

// TestDocument_Info tests the listing view
func TestDocument_Info(t *testing.T) {
	info := NewDocument("a.txt", "the quick brown fox").Info()

	assert.Equal(t, DocumentInfo{Name: "a.txt", SizeBytes: 19}, info)
}

// TestPartition_IsValid tests partition validation
func TestPartition_IsValid(t *testing.T) {
	assert.True(t, PartitionResident.IsValid())
	assert.True(t, PartitionSearchable.IsValid())
	assert.False(t, Partition("").IsValid())
	assert.False(t, Partition("archive").IsValid())
	assert.Equal(t, "resident", PartitionResident.String())
}

// TestCatalog_Names tests deduplication and ordering of catalog names
func TestCatalog_Names(t *testing.T) {
	c := Catalog{
		Resident:   []string{"b.txt", "a.txt"},
		Searchable: []string{"a.txt", "c.txt", "b.txt", "d.txt"},
	}

	assert.Equal(t, []string{"b.txt", "a.txt", "c.txt", "d.txt"}, c.Names())
}

// TestCatalog_NamesEmpty tests an empty catalog
func TestCatalog_NamesEmpty(t *testing.T) {
	assert.Empty(t, Catalog{}.Names())
}

// TestCatalog_Members tests partition membership lookup
func TestCatalog_Members(t *testing.T) {
	c := Catalog{Resident: []string{"a.txt"}, Searchable: []string{"b.txt"}}

	assert.Equal(t, []string{"a.txt"}, c.Members(PartitionResident))
	assert.Equal(t, []string{"b.txt"}, c.Members(PartitionSearchable))
	assert.Nil(t, c.Members(Partition("other")))
}

// TestLoadReport_Failed tests failed file extraction
func TestLoadReport_Failed(t *testing.T) {
	r := LoadReport{
		Files: []FileStatus{
			{Name: "a.txt", Status: LoadStatusLoaded, SizeBytes: 10},
			{Name: "b.txt", Status: LoadStatusMissing, Reason: "file does not exist"},
			{Name: "c.txt", Status: LoadStatusFailed, Reason: "permission denied"},
		},
	}

	failed := r.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "b.txt", failed[0].Name)
	assert.Equal(t, "c.txt", failed[1].Name)
}
