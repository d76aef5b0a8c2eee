package connector

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/talentsift/talentsift/internal/models"
)

const (
	gmailUser = "me"

	// Every Gmail call gets its own deadline so a stalled request
	// cannot hold an ingestion worker for the whole cycle.
	gmailCallTimeout = 30 * time.Second
)

// GmailSource polls a Gmail inbox for attachment-carrying messages.
type GmailSource struct {
	service *gmail.Service
	timeout time.Duration
}

// NewGmailSource builds a Gmail source from OAuth credentials and a
// previously exchanged token file. Token exchange itself is out of scope
// here; a missing token is a configuration error.
func NewGmailSource(ctx context.Context, credentialsPath, tokenPath string) (*GmailSource, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, &models.ConfigurationError{Reason: fmt.Sprintf("unable to read gmail credentials: %v", err)}
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, &models.ConfigurationError{Reason: fmt.Sprintf("unable to parse gmail credentials: %v", err)}
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, &models.ConfigurationError{Reason: fmt.Sprintf("unable to read gmail token (run the oauth exchange first): %v", err)}
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(config.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to create gmail client: %w", err)
	}

	return &GmailSource{service: srv, timeout: gmailCallTimeout}, nil
}

func (g *GmailSource) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.timeout)
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	return tok, json.NewDecoder(f).Decode(tok)
}

func (g *GmailSource) Name() string { return "gmail" }

// ListNewItems fetches recent messages with attachments, optionally
// narrowed by a Gmail search filter.
func (g *GmailSource) ListNewItems(ctx context.Context, maxResults int, filter string) ([]Item, error) {
	query := "has:attachment newer_than:7d"
	if filter != "" {
		query = fmt.Sprintf("%s %s", query, filter)
	}

	listCtx, cancel := g.callContext(ctx)
	list, err := g.service.Users.Messages.List(gmailUser).
		Q(query).
		MaxResults(int64(maxResults)).
		Context(listCtx).
		Do()
	cancel()
	if err != nil {
		return nil, &models.ExternalServiceError{Service: "gmail", Err: fmt.Errorf("list messages: %w", err)}
	}

	items := make([]Item, 0, len(list.Messages))
	for _, ref := range list.Messages {
		getCtx, cancel := g.callContext(ctx)
		msg, err := g.service.Users.Messages.Get(gmailUser, ref.Id).Context(getCtx).Do()
		cancel()
		if err != nil {
			return nil, &models.ExternalServiceError{Service: "gmail", Err: fmt.Errorf("get message %s: %w", ref.Id, err)}
		}
		items = append(items, itemFromMessage(msg))
	}

	return items, nil
}

func itemFromMessage(msg *gmail.Message) Item {
	item := Item{
		ID:         msg.Id,
		ReceivedAt: time.UnixMilli(msg.InternalDate).UTC(),
	}

	if msg.Payload == nil {
		return item
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			item.Sender = header.Value
		case "Subject":
			item.Subject = header.Value
		}
	}

	for _, part := range msg.Payload.Parts {
		if part.Filename == "" || part.Body == nil || part.Body.AttachmentId == "" {
			continue
		}
		item.Attachments = append(item.Attachments, Attachment{
			ID:       part.Body.AttachmentId,
			Filename: part.Filename,
			MimeType: part.MimeType,
		})
	}

	return item
}

// DownloadAttachment fetches and decodes one attachment body to destPath.
func (g *GmailSource) DownloadAttachment(ctx context.Context, itemID, attachmentID, destPath string) error {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	attachment, err := g.service.Users.Messages.Attachments.Get(gmailUser, itemID, attachmentID).
		Context(ctx).
		Do()
	if err != nil {
		return &models.ExternalServiceError{Service: "gmail", Err: fmt.Errorf("get attachment: %w", err)}
	}

	data, err := base64.URLEncoding.DecodeString(attachment.Data)
	if err != nil {
		return &models.ExternalServiceError{Service: "gmail", Err: fmt.Errorf("decode attachment: %w", err)}
	}

	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write attachment %s: %w", destPath, err)
	}

	return nil
}

// SenderEmail pulls the address out of a "Name <email@example.com>" header.
func SenderEmail(from string) string {
	if start := strings.Index(from, "<"); start >= 0 {
		if end := strings.Index(from[start:], ">"); end > 0 {
			return strings.TrimSpace(from[start+1 : start+end])
		}
	}
	return strings.TrimSpace(from)
}
