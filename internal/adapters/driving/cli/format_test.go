package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{125952, "123.0 KB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.n), "formatSize(%d)", tt.n)
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "one", indent("one\n", "  "))
	assert.Equal(t, "one\n  two\n  three", indent("one\ntwo\nthree", "  "))
}
