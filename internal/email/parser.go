package email

import (
	"fmt"
	"io"
	"net/mail"
	"regexp"
	"strings"
	"time"

	enc "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/encoding"
)

var (
	blankLine     = regexp.MustCompile(`\r?\n\r?\n`)
	headerLine    = regexp.MustCompile(`\r?\n`)
	boundaryParam = regexp.MustCompile(`(?i)boundary="?([^";\s]+)"?`)
	filenameParam = regexp.MustCompile(`(?i)(?:file)?name\*?="?([^";]+)"?`)
)

// Parser reads .eml files. Only one level of multipart is unwrapped.
type Parser struct {
	now func() time.Time
}

type Option func(*Parser)

// WithClock sets the time used when a message has no usable Date header.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{now: time.Now}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse reads the whole message from r and decodes it. Encoding problems
// degrade to undecoded text; only read errors are returned.
func (p *Parser) Parse(r io.Reader) (*Message, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read email: %w", err)
	}

	headerBlock, body := splitHeaderBody(enc.ToUTF8(raw))
	headers := parseHeaders(headerBlock)

	msg := &Message{
		From:    DecodeHeader(headers["from"]),
		To:      parseAddressList(headers["to"]),
		Subject: NoSubject,
		Date:    p.parseDate(headers["date"]),
	}

	if s, ok := headers["subject"]; ok {
		msg.Subject = DecodeHeader(s)
	}

	var text string

	if strings.Contains(strings.ToLower(headers["content-type"]), "multipart") {
		var attachments []Attachment
		text, attachments = parseMultipart(headers["content-type"], body)
		msg.Attachments = attachments
	} else {
		text = DecodeBody(body, headers["content-transfer-encoding"])
	}

	msg.Body = strings.TrimSpace(text)

	return msg, nil
}

func (p *Parser) parseDate(value string) time.Time {
	if value == "" {
		return p.now()
	}

	t, err := mail.ParseDate(value)
	if err != nil {
		return p.now()
	}

	return t
}

// splitHeaderBody splits at the first blank line. Without one the whole
// text is treated as headers.
func splitHeaderBody(text string) (string, string) {
	loc := blankLine.FindStringIndex(text)
	if loc == nil {
		return text, ""
	}

	return text[:loc[0]], text[loc[1]:]
}

// parseHeaders folds continuation lines into the previous value and
// lower-cases names. A repeated header keeps its last value.
func parseHeaders(block string) map[string]string {
	headers := make(map[string]string)

	var current string

	for _, line := range headerLine.Split(block, -1) {
		if line == "" {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if current != "" {
				headers[current] += " " + strings.TrimSpace(line)
			}

			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		current = strings.ToLower(strings.TrimSpace(name))
		headers[current] = strings.TrimSpace(value)
	}

	return headers
}

func parseAddressList(value string) []string {
	var addrs []string

	for _, part := range strings.Split(value, ",") {
		addr := strings.TrimSpace(DecodeHeader(strings.TrimSpace(part)))
		if addr == "" {
			continue
		}

		addrs = append(addrs, addr)
	}

	return addrs
}

// parseMultipart selects the first text/plain or text/html part that is not
// marked as an attachment and lists attachments. Without a boundary or a
// text part the body is returned unparsed.
func parseMultipart(contentType, body string) (string, []Attachment) {
	m := boundaryParam.FindStringSubmatch(contentType)
	if m == nil {
		return body, nil
	}

	var (
		text        string
		found       bool
		attachments []Attachment
	)

	for _, part := range strings.Split(body, "--"+m[1]) {
		if strings.TrimSpace(part) == "" || strings.HasPrefix(part, "--") {
			continue
		}

		headerBlock, partBody := splitHeaderBody(strings.TrimLeft(part, "\r\n"))
		headers := parseHeaders(headerBlock)
		partType := strings.ToLower(headers["content-type"])
		cte := headers["content-transfer-encoding"]

		isText := strings.Contains(partType, "text/plain") || strings.Contains(partType, "text/html")

		if isText && !found && !isAttachment(headers) {
			text = DecodeBody(partBody, cte)
			found = true

			continue
		}

		if a, ok := attachment(headers, partBody); ok {
			attachments = append(attachments, a)
		}
	}

	if !found {
		return body, attachments
	}

	return text, attachments
}

func attachment(headers map[string]string, body string) (Attachment, bool) {
	disposition := headers["content-disposition"]

	filename := ""
	if m := filenameParam.FindStringSubmatch(disposition); m != nil {
		filename = m[1]
	} else if m := filenameParam.FindStringSubmatch(headers["content-type"]); m != nil {
		filename = m[1]
	}

	if !isAttachment(headers) && filename == "" {
		return Attachment{}, false
	}

	contentType, _, _ := strings.Cut(headers["content-type"], ";")

	return Attachment{
		Filename:    DecodeHeader(filename),
		ContentType: strings.ToLower(strings.TrimSpace(contentType)),
		Size:        decodedSize(strings.TrimSpace(body), headers["content-transfer-encoding"]),
	}, true
}

func isAttachment(headers map[string]string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(headers["content-disposition"])), "attachment")
}

func decodedSize(body, transferEncoding string) int {
	if b, ok := decodeBytes(body, transferEncoding); ok {
		return len(b)
	}

	return len(body)
}
