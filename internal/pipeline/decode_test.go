package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestResolveEncoding(t *testing.T) {
	tests := []struct {
		label   string
		wantNil bool
		wantErr bool
	}{
		{label: ""},
		{label: "windows-1251"},
		{label: "CP1251"},
		{label: "utf-8"},
		{label: "koi8-r"},
		{label: "auto", wantNil: true},
		{label: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			enc, err := ResolveEncoding(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, enc)
			} else {
				assert.NotNil(t, enc)
			}
		})
	}
}

func TestDecodeMarkup(t *testing.T) {
	cp1251, err := charmap.Windows1251.NewEncoder().String("<P>графа 3</P>")
	require.NoError(t, err)

	t.Run("windows-1251", func(t *testing.T) {
		got, err := decodeMarkup([]byte(cp1251), charmap.Windows1251)
		require.NoError(t, err)
		assert.Equal(t, "<P>графа 3</P>", got)
	})

	t.Run("auto falls back to windows-1251", func(t *testing.T) {
		got, err := decodeMarkup([]byte(cp1251), nil)
		require.NoError(t, err)
		assert.Equal(t, "<P>графа 3</P>", got)
	})

	t.Run("auto detects utf-8", func(t *testing.T) {
		got, err := decodeMarkup([]byte("<P>графа 3</P>"), nil)
		require.NoError(t, err)
		assert.Equal(t, "<P>графа 3</P>", got)
	})

	t.Run("auto honors meta charset", func(t *testing.T) {
		koi, err := charmap.KOI8R.NewEncoder().String("графа")
		require.NoError(t, err)
		doc := `<html><head><meta charset="koi8-r"></head><body>` + koi + `</body></html>`

		got, err := decodeMarkup([]byte(doc), nil)
		require.NoError(t, err)
		assert.Contains(t, got, "графа")
	})

	t.Run("auto honors BOM", func(t *testing.T) {
		data, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("графа")
		require.NoError(t, err)

		got, err := decodeMarkup([]byte(data), nil)
		require.NoError(t, err)
		assert.Contains(t, got, "графа")
	})
}
