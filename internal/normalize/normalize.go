// Package normalize converts raw MIME-like messages into the plain text the
// matching engine works on.
package normalize

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/perkflow/perkflow/internal/model"
)

var (
	styleBlockRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlockRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Message builds a NormalizedMessage from a raw message. The body is the
// message's plain-text content when present, otherwise its HTML content with
// markup stripped. Decode failures degrade to empty text; they never fail the
// message.
func Message(raw *model.RawMessage) *model.NormalizedMessage {
	text, html := ExtractContent(raw)
	body := text
	if body == "" {
		body = StripHTML(html)
	}

	return &model.NormalizedMessage{
		ID:          raw.ID,
		FromAddress: raw.HeaderValue("From"),
		Subject:     raw.HeaderValue("Subject"),
		BodyText:    body,
		ReceivedAt:  raw.Internal,
	}
}

// ExtractContent walks the message's part tree and returns its accumulated
// text/plain and text/html content, concatenated in traversal order.
func ExtractContent(raw *model.RawMessage) (textBody, htmlBody string) {
	var text, html strings.Builder

	// A flat body with no parts is typed by the Content-Type header rather
	// than a part mime type.
	if raw.Body.Data != "" && len(raw.Body.Parts) == 0 {
		contentType := strings.ToLower(raw.HeaderValue("Content-Type"))
		decoded := decodePayload(raw.Body.Data)
		switch {
		case strings.Contains(contentType, "text/plain"):
			text.WriteString(decoded)
		case strings.Contains(contentType, "text/html"):
			html.WriteString(decoded)
		}
	}

	for _, part := range raw.Body.Parts {
		walkPart(part, &text, &html)
	}

	return text.String(), html.String()
}

func walkPart(part model.Part, text, html *strings.Builder) {
	if part.Data != "" {
		switch strings.ToLower(part.MimeType) {
		case "text/plain":
			text.WriteString(decodePayload(part.Data))
		case "text/html":
			html.WriteString(decodePayload(part.Data))
		}
	}
	for _, child := range part.Parts {
		walkPart(child, text, html)
	}
}

// decodePayload decodes a base64url payload, tolerating the standard
// alphabet and missing padding. Malformed input decodes to "".
func decodePayload(data string) string {
	if decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "=")); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.StdEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}

// StripHTML reduces an HTML body to readable text: style and script blocks go
// entirely, remaining tags are removed, the common named entities are
// decoded, and whitespace runs collapse to single spaces.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	out := styleBlockRe.ReplaceAllString(html, "")
	out = scriptBlockRe.ReplaceAllString(out, "")
	out = tagRe.ReplaceAllString(out, " ")
	out = entityReplacer.Replace(out)
	out = whitespaceRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
