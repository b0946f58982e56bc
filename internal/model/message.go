// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
)

// Header is a single name/value header pair on a raw message.
type Header struct {
	Name  string
	Value string
}

// Part is one node of a message's MIME tree. A leaf carries a MIME type and a
// base64url payload; an interior node carries child parts. Gmail delivers both
// shapes, sometimes mixed.
type Part struct {
	MimeType string
	Data     string // base64url payload, may be empty
	Parts    []Part
}

// RawMessage is a fetched mailbox message before any normalization.
type RawMessage struct {
	ID       string
	Headers  []Header
	Body     Part
	Internal time.Time // provider-reported receive time
}

// HeaderValue returns the value of the first header with the given name,
// compared case-insensitively. Missing headers return the empty string.
func (m *RawMessage) HeaderValue(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// NormalizedMessage is the matcher's input: plain text plus the metadata the
// scoring model needs. Built once per raw message and never mutated.
type NormalizedMessage struct {
	ID          string
	FromAddress string
	Subject     string
	BodyText    string
	ReceivedAt  time.Time
}

// SenderDomain returns the lower-cased domain portion of FromAddress.
// Display-name forms like `Delta <rewards@delta.com>` are handled; a missing
// or malformed address yields the empty string.
func (m *NormalizedMessage) SenderDomain() string {
	addr := m.FromAddress
	if i := strings.LastIndex(addr, "<"); i >= 0 {
		addr = addr[i+1:]
		if j := strings.Index(addr, ">"); j >= 0 {
			addr = addr[:j]
		}
	}
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(addr[at+1:]))
}
