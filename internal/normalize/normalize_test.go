package normalize

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/perkflow/perkflow/internal/model"
)

func b64(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestMessage_PrefersPlainText(t *testing.T) {
	received := time.Date(2025, 1, 10, 8, 30, 0, 0, time.UTC)
	raw := &model.RawMessage{
		ID: "msg-1",
		Headers: []model.Header{
			{Name: "From", Value: "Delta SkyMiles <rewards@delta.com>"},
			{Name: "Subject", Value: "Your SkyMiles Activity"},
		},
		Body: model.Part{
			MimeType: "multipart/alternative",
			Parts: []model.Part{
				{MimeType: "text/plain", Data: b64("You earned 1,234 SkyMiles")},
				{MimeType: "text/html", Data: b64("<p>You earned <b>1,234</b> SkyMiles</p>")},
			},
		},
		Internal: received,
	}

	msg := Message(raw)

	assert.Equal(t, "msg-1", msg.ID)
	assert.Equal(t, "Delta SkyMiles <rewards@delta.com>", msg.FromAddress)
	assert.Equal(t, "delta.com", msg.SenderDomain())
	assert.Equal(t, "Your SkyMiles Activity", msg.Subject)
	assert.Equal(t, "You earned 1,234 SkyMiles", msg.BodyText)
	assert.Equal(t, received, msg.ReceivedAt)
}

func TestMessage_FallsBackToStrippedHTML(t *testing.T) {
	raw := &model.RawMessage{
		ID: "msg-2",
		Headers: []model.Header{
			{Name: "From", Value: "no-reply@united.com"},
		},
		Body: model.Part{
			MimeType: "text/html",
			Parts: []model.Part{
				{MimeType: "text/html", Data: b64(
					"<html><style>p { color: red }</style><body><p>You earned&nbsp;2,500 miles</p>" +
						"<script>track()</script></body></html>")},
			},
		},
	}

	msg := Message(raw)

	assert.Equal(t, "You earned 2,500 miles", msg.BodyText)
}

func TestExtractContent_NestedParts(t *testing.T) {
	raw := &model.RawMessage{
		Body: model.Part{
			MimeType: "multipart/mixed",
			Parts: []model.Part{
				{
					MimeType: "multipart/alternative",
					Parts: []model.Part{
						{MimeType: "text/plain", Data: b64("first ")},
						{MimeType: "text/html", Data: b64("<p>markup</p>")},
					},
				},
				{MimeType: "text/plain", Data: b64("second")},
				{MimeType: "application/pdf", Data: b64("binary attachment")},
			},
		},
	}

	text, html := ExtractContent(raw)

	assert.Equal(t, "first second", text)
	assert.Equal(t, "<p>markup</p>", html)
}

func TestExtractContent_FlatBodyUsesContentTypeHeader(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantText    string
		wantHTML    string
	}{
		{"plain", "text/plain; charset=UTF-8", "hello", ""},
		{"html", "text/html; charset=UTF-8", "", "hello"},
		{"untyped", "application/octet-stream", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &model.RawMessage{
				Headers: []model.Header{{Name: "Content-Type", Value: tt.contentType}},
				Body:    model.Part{Data: b64("hello")},
			}
			text, html := ExtractContent(raw)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantHTML, html)
		})
	}
}

func TestDecodePayload_Tolerant(t *testing.T) {
	// Standard-alphabet base64 with padding, as some senders produce.
	std := base64.StdEncoding.EncodeToString([]byte("padded payload"))
	raw := &model.RawMessage{
		Body: model.Part{
			Parts: []model.Part{{MimeType: "text/plain", Data: std}},
		},
	}
	text, _ := ExtractContent(raw)
	assert.Equal(t, "padded payload", text)
}

func TestDecodePayload_MalformedIsEmpty(t *testing.T) {
	raw := &model.RawMessage{
		Body: model.Part{
			Parts: []model.Part{
				{MimeType: "text/plain", Data: "!!! not base64 !!!"},
				{MimeType: "text/plain", Data: b64("still here")},
			},
		},
	}
	text, _ := ExtractContent(raw)
	assert.Equal(t, "still here", text)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{
			"tags and whitespace",
			"<div>\n  <p>Balance:   12,921</p>\n</div>",
			"Balance: 12,921",
		},
		{
			"style and script removed",
			"<style>body{}</style><p>kept</p><script>gone()</script>",
			"kept",
		},
		{
			"entities decoded",
			"Points&nbsp;&amp;&nbsp;Miles: &quot;500&quot; &#39;earned&#39; &lt;today&gt;",
			`Points & Miles: "500" 'earned' <today>`,
		},
		{
			"multiline style block",
			"<STYLE type=\"text/css\">\np { color: red }\n</STYLE>real content",
			"real content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestSenderDomain(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"rewards@delta.com", "delta.com"},
		{"Delta SkyMiles <Rewards@Delta.COM>", "delta.com"},
		{"offers@news.marriott.com", "news.marriott.com"},
		{"not-an-address", ""},
		{"", ""},
	}

	for _, tt := range tests {
		msg := model.NormalizedMessage{FromAddress: tt.from}
		assert.Equal(t, tt.want, msg.SenderDomain(), "from %q", tt.from)
	}
}
