package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize is how many bytes are inspected for BOMs and charset heuristics.
const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader detects the encoding of the input and returns a reader
// that decodes the content to UTF-8. Uploaded CSV and .eml files from
// Dutch spreadsheet tools and mail clients are frequently Windows-1252.
//
// Detection order:
//  1. Check for BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Validate if the content is valid UTF-8 and return as-is
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	skip, decoder := detect(buf)
	if skip > 0 {
		_, _ = br.Discard(skip)
	}

	if decoder == nil {
		return br, nil
	}

	return transform.NewReader(br, decoder), nil
}

// ToUTF8 converts a decoded byte payload (a quoted-printable body, an
// encoded-word) to a UTF-8 string using the same detection as NewUTF8Reader.
func ToUTF8(b []byte) string {
	skip, decoder := detect(b)
	b = b[skip:]

	if decoder == nil {
		return string(b)
	}

	out, _, err := transform.Bytes(decoder, b)
	if err != nil {
		return string(b)
	}

	return string(out)
}

// detect returns the number of leading BOM bytes to drop and the decoder to
// apply, nil meaning the content is already UTF-8.
func detect(buf []byte) (int, transform.Transformer) {
	if bytes.HasPrefix(buf, bomUTF8) {
		return len(bomUTF8), nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return 0, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return 0, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	}

	if validPrefix(buf) {
		return 0, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return 0, nil
		case "ISO-8859-1", "windows-1252":
			return 0, charmap.Windows1252.NewDecoder()
		case "ISO-8859-9":
			return 0, charmap.ISO8859_9.NewDecoder()
		case "ISO-8859-15":
			return 0, charmap.ISO8859_15.NewDecoder()
		}
	}

	return 0, charmap.Windows1252.NewDecoder()
}

// validPrefix reports whether buf is valid UTF-8, tolerating a multi-byte
// sequence cut off at the peek boundary.
func validPrefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	if len(buf) < peekSize {
		return false
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(buf); cut++ {
		if utf8.Valid(buf[:len(buf)-cut]) {
			return true
		}
	}

	return false
}
