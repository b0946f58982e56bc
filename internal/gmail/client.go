// Package gmail implements the mailbox boundary: OAuth against the Gmail
// readonly scope and fetching candidate reward messages. Everything past
// Fetch is the engine's problem; everything before it (search syntax,
// pagination, rate limits) stays here.
package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/perkflow/perkflow/internal/catalog"
	"github.com/perkflow/perkflow/internal/common"
	"github.com/perkflow/perkflow/internal/model"
	"github.com/perkflow/perkflow/internal/service"
)

// subjectKeywords narrow the mailbox search to mail likely to mention a
// balance or earning. The engine re-checks everything; this only trims the
// fetch volume.
var subjectKeywords = []string{"miles", "points", "earned", "activity", "statement", "balance", "rewards"}

// Client fetches reward-candidate messages from a Gmail mailbox. It
// implements service.MessageSource.
type Client struct {
	svc          *gmail.Service
	catalog      *catalog.Catalog
	showProgress bool
}

// NewClient builds a Gmail client from an OAuth token. The catalogue is used
// to build the search query from enabled provider domains.
func NewClient(ctx context.Context, config OAuth2Config, token *oauth2.Token, cat *catalog.Catalog, showProgress bool) (*Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailReadonlyScope},
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrGmailConnection, err)
	}

	return &Client{
		svc:          svc,
		catalog:      cat,
		showProgress: showProgress,
	}, nil
}

// SearchQuery returns the Gmail search expression covering every enabled
// provider's sender domains.
func (c *Client) SearchQuery() string {
	domains := c.catalog.EnabledDomains()
	subjects := make([]string, len(subjectKeywords))
	for i, kw := range subjectKeywords {
		subjects[i] = "subject:" + kw
	}
	return fmt.Sprintf("from:(%s) (%s)",
		strings.Join(domains, " OR "),
		strings.Join(subjects, " OR "))
}

// Fetch lists matching message ids and retrieves each full message,
// converting Gmail's payload tree into the engine's raw message form.
// Individual fetch failures are logged and skipped; only the listing itself
// is fatal.
func (c *Client) Fetch(ctx context.Context, maxResults int) ([]*model.RawMessage, error) {
	if maxResults <= 0 {
		maxResults = 100
	}

	query := c.SearchQuery()
	slog.Info("Searching mailbox", "query", query, "max_results", maxResults)

	var list *gmail.ListMessagesResponse
	err := common.WithRetry(ctx, func() error {
		var listErr error
		list, listErr = c.svc.Users.Messages.List("me").
			Q(query).
			MaxResults(int64(maxResults)).
			Context(ctx).
			Do()
		if listErr != nil {
			return fmt.Errorf("%w: %v", common.ErrGmailConnection, listErr)
		}
		return nil
	}, service.RetryOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	slog.Info("Found candidate messages", "count", len(list.Messages))

	var bar *progressbar.ProgressBar
	if c.showProgress && len(list.Messages) > 0 {
		bar = progressbar.Default(int64(len(list.Messages)), "Fetching messages")
	}

	messages := make([]*model.RawMessage, 0, len(list.Messages))
	for _, m := range list.Messages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		full, getErr := c.svc.Users.Messages.Get("me", m.Id).
			Format("full").
			Context(ctx).
			Do()
		if getErr != nil {
			slog.Warn("Failed to fetch message, skipping", "message_id", m.Id, "error", getErr)
			continue
		}
		messages = append(messages, convertMessage(full))

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return messages, nil
}

// convertMessage maps a Gmail API message into the engine's raw form.
func convertMessage(m *gmail.Message) *model.RawMessage {
	raw := &model.RawMessage{
		ID:       m.Id,
		Internal: time.UnixMilli(m.InternalDate).UTC(),
	}
	if m.Payload == nil {
		return raw
	}

	for _, h := range m.Payload.Headers {
		raw.Headers = append(raw.Headers, model.Header{Name: h.Name, Value: h.Value})
	}
	raw.Body = convertPart(m.Payload)
	return raw
}

func convertPart(p *gmail.MessagePart) model.Part {
	part := model.Part{MimeType: p.MimeType}
	if p.Body != nil {
		part.Data = p.Body.Data
	}
	for _, child := range p.Parts {
		part.Parts = append(part.Parts, convertPart(child))
	}
	return part
}
