// Package connector abstracts the inbound document sources the ingestion
// pipeline polls for new candidate items.
package connector

import (
	"context"
	"time"
)

// Attachment describes one downloadable file on a source item.
type Attachment struct {
	ID       string
	Filename string
	MimeType string
}

// Item is one inbound unit of work: an email, calendar entry, or sheet
// row carrying candidate documents.
type Item struct {
	ID          string
	Sender      string
	Subject     string
	ReceivedAt  time.Time
	Attachments []Attachment
}

// Source enumerates new items and downloads their attachments.
type Source interface {
	// Name identifies the source for logging and scheduling.
	Name() string
	// ListNewItems returns up to maxResults items matching filter.
	ListNewItems(ctx context.Context, maxResults int, filter string) ([]Item, error)
	// DownloadAttachment materializes one attachment at destPath.
	DownloadAttachment(ctx context.Context, itemID, attachmentID, destPath string) error
}
