// Package charset turns raw .gw file bytes into UTF-8 text. Sources
// in the wild mix UTF-8 with legacy Latin-1 and Windows code pages,
// so decoding tries progressively weaker strategies and never fails.
package charset

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// detectSampleSize bounds how much of the input the statistical
// detector looks at.
const detectSampleSize = 8192

// minConfidence is the detector confidence required to trust its
// guess, on its 0-100 scale.
const minConfidence = 70

// Decode converts data to UTF-8 text, returning the text and the name
// of the encoding that produced it. Valid UTF-8 passes through
// untouched; otherwise the statistical detector gets a chance, then
// Latin-1, which maps every byte and cannot fail.
func Decode(data []byte) (string, string) {
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}

	if text, name, ok := decodeDetected(data); ok {
		return text, name
	}

	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		return string(decoded), "iso-8859-1"
	}

	// Unreachable in practice; replace invalid sequences rather than
	// report an error nothing can act on.
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), "utf-8-lossy"
}

func decodeDetected(data []byte) (string, string, bool) {
	sample := data
	if len(sample) > detectSampleSize {
		sample = sample[:detectSampleSize]
	}

	enc, name, ok := detectSample(sample)
	if !ok {
		return "", "", false
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(decoded) {
		return "", "", false
	}
	return string(decoded), name, true
}

func detectSample(sample []byte) (encoding.Encoding, string, bool) {
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil || result.Confidence < minConfidence {
		return nil, "", false
	}

	name := strings.ToLower(result.Charset)
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, "", false
	}
	return enc, name, true
}

// NewReader wraps r so the text read from it is UTF-8, resolving the
// source encoding from an initial sample with the same ladder Decode
// uses. The name of the resolved encoding is returned with the reader.
func NewReader(r io.Reader) (io.Reader, string) {
	br := bufio.NewReaderSize(r, detectSampleSize)
	sample, _ := br.Peek(detectSampleSize)

	if validSample(sample) {
		return br, "utf-8"
	}
	if enc, name, ok := detectSample(sample); ok {
		return transform.NewReader(br, enc.NewDecoder()), name
	}
	return transform.NewReader(br, charmap.ISO8859_1.NewDecoder()), "iso-8859-1"
}

// validSample reports whether sample is valid UTF-8, tolerating one
// rune cut off at the sample boundary when the buffer filled up.
func validSample(sample []byte) bool {
	if len(sample) == detectSampleSize {
		for i := 0; i < utf8.UTFMax-1 && len(sample) > 0; i++ {
			r, size := utf8.DecodeLastRune(sample)
			if r != utf8.RuneError || size != 1 {
				break
			}
			sample = sample[:len(sample)-1]
		}
	}
	return utf8.Valid(sample)
}

// DetectEncoding reports the encoding Decode would use for data
// without performing the full decode.
func DetectEncoding(data []byte) string {
	_, name := Decode(data)
	return name
}
