package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/perkflow/perkflow/internal/model"
)

// FileSource reads a pre-fetched message batch from a JSON file instead of
// talking to Gmail. Useful for offline runs and for replaying a captured
// mailbox against catalogue changes.
type FileSource struct {
	Path string
}

type fileBatch struct {
	Messages []fileMessage `json:"messages"`
}

type fileMessage struct {
	ID           string       `json:"id"`
	Headers      []fileHeader `json:"headers"`
	Body         filePart     `json:"body"`
	InternalDate time.Time    `json:"internalDate"`
}

type fileHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type filePart struct {
	MimeType string     `json:"mimeType"`
	Data     string     `json:"data,omitempty"` // base64url, same as the wire format
	Parts    []filePart `json:"parts,omitempty"`
}

// Fetch implements service.MessageSource. maxResults caps the batch the same
// way it caps a live fetch.
func (f *FileSource) Fetch(_ context.Context, maxResults int) ([]*model.RawMessage, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read message batch: %w", err)
	}

	var batch fileBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse message batch: %w", err)
	}

	if maxResults > 0 && len(batch.Messages) > maxResults {
		batch.Messages = batch.Messages[:maxResults]
	}

	messages := make([]*model.RawMessage, 0, len(batch.Messages))
	for _, fm := range batch.Messages {
		raw := &model.RawMessage{
			ID:       fm.ID,
			Internal: fm.InternalDate,
			Body:     convertFilePart(fm.Body),
		}
		for _, h := range fm.Headers {
			raw.Headers = append(raw.Headers, model.Header{Name: h.Name, Value: h.Value})
		}
		messages = append(messages, raw)
	}

	return messages, nil
}

func convertFilePart(p filePart) model.Part {
	part := model.Part{MimeType: p.MimeType, Data: p.Data}
	for _, child := range p.Parts {
		part.Parts = append(part.Parts, convertFilePart(child))
	}
	return part
}
