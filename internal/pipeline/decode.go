package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// Markup encoding labels with special handling.
const (
	// DefaultEncoding is what report generators write.
	DefaultEncoding = "windows-1251"
	// EncodingAuto sniffs a BOM or <meta charset> and falls back to
	// DefaultEncoding.
	EncodingAuto = "auto"
)

// ResolveEncoding maps a WHATWG encoding label to an encoding. It returns a
// nil encoding for EncodingAuto.
func ResolveEncoding(label string) (encoding.Encoding, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", DefaultEncoding:
		return charmap.Windows1251, nil
	case EncodingAuto:
		return nil, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported markup encoding %q: %w", label, err)
	}
	return enc, nil
}

// decodeMarkup converts raw report bytes to text. A nil enc means sniff.
func decodeMarkup(data []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		enc = sniffEncoding(data)
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// sniffEncoding trusts a BOM, a declared charset or valid non-ASCII UTF-8.
// Anything else is assumed to be windows-1251.
func sniffEncoding(data []byte) encoding.Encoding {
	enc, name, certain := charset.DetermineEncoding(data, "text/html")
	if !certain && name == "windows-1252" {
		return charmap.Windows1251
	}
	return enc
}
