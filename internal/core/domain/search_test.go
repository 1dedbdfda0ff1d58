package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSearchResult_JSON tests the wire field names surfaced to the model
func TestSearchResult_JSON(t *testing.T) {
	r := SearchResult{DocumentName: "b.txt", Score: 1, Snippets: []string{"fox eats turtle"}, SizeBytes: 32}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"filename":"b.txt","score":1,"snippets":["fox eats turtle"],"size":32}`, string(data))
}
