package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultPath(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
	}{
		{"form.01", "", "form_result.01"},
		{"/data/in/form.01", "", "/data/in/form_result.01"},
		{"form.01", "_merged", "form_merged.01"},
		{"form", "", "form_result"},
		{"archive.tar.01", "", "archive.tar_result.01"},
		{".hidden", "", ".hidden_result"},
		{"..double.01", "", "..double_result.01"},
		{"dir.v2/form", "", "dir.v2/form_result"},
		{"form.", "", "form_result."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultPath(tt.path, tt.suffix))
		})
	}
}
