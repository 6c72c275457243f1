package email

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"

	enc "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/encoding"
)

var (
	encodedWord = regexp.MustCompile(`=\?([^?]+)\?([BbQq])\?([^?]*)\?=`)
	hexEscape   = regexp.MustCompile(`=([0-9A-Fa-f]{2})`)
	softBreak   = regexp.MustCompile(`=\r?\n`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// DecodeHeader resolves MIME encoded-words (=?charset?Q?...?= and
// =?charset?B?...?=) in a header value. The declared charset is ignored;
// bytes that are not UTF-8 are normalised like any other input.
// An encoded-word whose base64 payload is malformed is left as-is.
func DecodeHeader(value string) string {
	return encodedWord.ReplaceAllStringFunc(value, func(word string) string {
		m := encodedWord.FindStringSubmatch(word)
		payload := m[3]

		switch strings.ToUpper(m[2]) {
		case "B":
			b, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				return word
			}

			return enc.ToUTF8(b)
		default:
			b := unescapeHex(payload)
			return strings.ReplaceAll(enc.ToUTF8(b), "_", " ")
		}
	})
}

// DecodeBody undoes a Content-Transfer-Encoding. Unknown encodings pass
// through, and a payload that fails to decode is returned unchanged.
func DecodeBody(text, transferEncoding string) string {
	b, ok := decodeBytes(text, transferEncoding)
	if !ok {
		return text
	}

	return enc.ToUTF8(b)
}

// decodeBytes returns the raw decoded payload and whether a transfer
// encoding was applied.
func decodeBytes(text, transferEncoding string) ([]byte, bool) {
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "quoted-printable":
		return unescapeHex(softBreak.ReplaceAllString(text, "")), true
	case "base64":
		b, err := base64.StdEncoding.DecodeString(whitespace.ReplaceAllString(text, ""))
		if err != nil {
			return nil, false
		}

		return b, true
	}

	return nil, false
}

// unescapeHex replaces every =XX escape with the byte it encodes.
func unescapeHex(s string) []byte {
	out := make([]byte, 0, len(s))
	last := 0

	for _, loc := range hexEscape.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, s[last:loc[0]]...)

		b, _ := hex.DecodeString(s[loc[2]:loc[3]])
		out = append(out, b...)
		last = loc[1]
	}

	return append(out, s[last:]...)
}
