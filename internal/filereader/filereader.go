package filereader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReportReader reads report files from disk and normalises their encoding.
type ReportReader struct{}

// ReadReport reads the whole file and returns its content as UTF-8.
func (ReportReader) ReadReport(filePath string) ([]byte, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	data, err := DecodeReport(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	return data, nil
}

// DecodeReport strips a byte order mark and converts UTF-16 content to UTF-8.
// Content without a BOM is returned unchanged; a non-UTF-8 charset declared
// in the XML prolog is handled later by CharsetReader.
func DecodeReport(raw []byte) ([]byte, error) {
	if !hasBOM(raw) {
		return raw, nil
	}
	decoder := unicode.BOMOverride(encoding.Nop.NewDecoder())
	data, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func hasBOM(raw []byte) bool {
	return bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(raw, []byte{0xFF, 0xFE})
}

// CharsetReader is an xml.Decoder CharsetReader. UTF-8 and UTF-16 labels pass
// the input through, since DecodeReport has already produced UTF-8; any other
// label is decoded with the matching x/text encoding.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" || strings.HasPrefix(normalized, "utf-8") || strings.HasPrefix(normalized, "utf8") ||
		strings.HasPrefix(normalized, "utf-16") || strings.HasPrefix(normalized, "unicode") {
		return input, nil
	}
	enc, err := htmlindex.Get(normalized)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
