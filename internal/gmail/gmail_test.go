package gmail

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/perkflow/perkflow/internal/catalog"
	"github.com/perkflow/perkflow/internal/model"
)

func TestSearchQuery(t *testing.T) {
	cat := catalog.MustNew([]catalog.ProviderRule{
		{
			ID:              "delta",
			DisplayName:     "Delta SkyMiles",
			Category:        model.CategoryMiles,
			SenderDomains:   []string{"delta.com"},
			BalancePatterns: []string{`(\d+)`},
			Enabled:         true,
		},
		{
			ID:              "marriott",
			DisplayName:     "Marriott Bonvoy",
			Category:        model.CategoryHotelPoints,
			SenderDomains:   []string{"marriott.com", "marriott-email.com"},
			BalancePatterns: []string{`(\d+)`},
			Enabled:         true,
		},
		{
			ID:              "legacyair",
			DisplayName:     "LegacyAir Club",
			Category:        model.CategoryMiles,
			SenderDomains:   []string{"legacyair.com"},
			BalancePatterns: []string{`(\d+)`},
			Enabled:         false,
		},
	})

	c := &Client{catalog: cat}
	query := c.SearchQuery()

	assert.Contains(t, query, "from:(delta.com OR marriott.com OR marriott-email.com)")
	assert.NotContains(t, query, "legacyair.com")
	assert.Contains(t, query, "subject:miles OR subject:points")
	assert.Contains(t, query, "subject:balance")
}

func TestConvertMessage(t *testing.T) {
	m := &gmailapi.Message{
		Id:           "abc123",
		InternalDate: 1736935200000, // 2025-01-15T10:00:00Z
		Payload: &gmailapi.MessagePart{
			MimeType: "multipart/alternative",
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: "rewards@delta.com"},
				{Name: "Subject", Value: "Your SkyMiles Activity"},
			},
			Parts: []*gmailapi.MessagePart{
				{
					MimeType: "text/plain",
					Body:     &gmailapi.MessagePartBody{Data: "aGVsbG8"},
				},
				{
					MimeType: "multipart/related",
					Parts: []*gmailapi.MessagePart{
						{
							MimeType: "text/html",
							Body:     &gmailapi.MessagePartBody{Data: "PHA-aGk8L3A-"},
						},
					},
				},
			},
		},
	}

	raw := convertMessage(m)

	assert.Equal(t, "abc123", raw.ID)
	assert.Equal(t, 2025, raw.Internal.Year())
	assert.Equal(t, "rewards@delta.com", raw.HeaderValue("From"))
	assert.Equal(t, "Your SkyMiles Activity", raw.HeaderValue("subject"))

	require.Len(t, raw.Body.Parts, 2)
	assert.Equal(t, "text/plain", raw.Body.Parts[0].MimeType)
	assert.Equal(t, "aGVsbG8", raw.Body.Parts[0].Data)
	require.Len(t, raw.Body.Parts[1].Parts, 1)
	assert.Equal(t, "text/html", raw.Body.Parts[1].Parts[0].MimeType)
}

func TestConvertMessage_NilPayload(t *testing.T) {
	raw := convertMessage(&gmailapi.Message{Id: "empty"})
	assert.Equal(t, "empty", raw.ID)
	assert.Empty(t, raw.Headers)
	assert.Empty(t, raw.Body.Parts)
}

func TestFileSource_Fetch(t *testing.T) {
	batch := `{
		"messages": [
			{
				"id": "m1",
				"headers": [
					{"name": "From", "value": "rewards@delta.com"},
					{"name": "Subject", "value": "Your SkyMiles Activity"}
				],
				"body": {
					"mimeType": "multipart/alternative",
					"parts": [
						{"mimeType": "text/plain", "data": "aGVsbG8"}
					]
				},
				"internalDate": "2025-01-15T10:00:00Z"
			},
			{
				"id": "m2",
				"headers": [{"name": "From", "value": "stay@marriott.com"}],
				"body": {"mimeType": "text/plain", "data": "aGk"},
				"internalDate": "2025-01-16T10:00:00Z"
			}
		]
	}`

	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(batch), 0o600))

	src := &FileSource{Path: path}
	messages, err := src.Fetch(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "rewards@delta.com", messages[0].HeaderValue("From"))
	require.Len(t, messages[0].Body.Parts, 1)
	assert.Equal(t, "aGVsbG8", messages[0].Body.Parts[0].Data)
	assert.Equal(t, 15, messages[0].Internal.Day())

	// maxResults caps the batch.
	capped, err := src.Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, capped, 1)
}

func TestFileSource_Errors(t *testing.T) {
	missing := &FileSource{Path: filepath.Join(t.TempDir(), "absent.json")}
	_, err := missing.Fetch(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read message batch")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	bad := &FileSource{Path: path}
	_, err = bad.Fetch(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse message batch")
}
