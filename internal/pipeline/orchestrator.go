// Package pipeline orchestrates ingestion: polling sources, extracting
// and enriching attachments, and persisting finalized profiles exactly
// once per candidate.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talentsift/talentsift/internal/connector"
	"github.com/talentsift/talentsift/internal/enrich"
	"github.com/talentsift/talentsift/internal/formatting"
	"github.com/talentsift/talentsift/internal/ingestion"
	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/internal/store"
)

// OutcomeStatus is the terminal state of one processed attachment.
type OutcomeStatus string

const (
	OutcomeStored  OutcomeStatus = "stored"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome records what happened to one attachment during a cycle.
type Outcome struct {
	Status   OutcomeStatus
	Identity string
	ItemID   string
	Filename string
	Profile  models.CandidateProfile
	Err      error
}

// Options tune one orchestrator.
type Options struct {
	MaxItems     int
	MaxWorkers   int
	SourceFilter string
}

func (o Options) withDefaults() Options {
	if o.MaxItems <= 0 {
		o.MaxItems = 10
	}
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = 4
	}
	return o
}

// Orchestrator runs the extract-enrich-format-store pipeline over the
// attachments of a source's new items.
type Orchestrator struct {
	source    connector.Source
	cache     *ingestion.AttachmentCache
	extractor *ingestion.Extractor
	enricher  *enrich.Enricher
	formatter *formatting.Formatter
	store     *store.Store
	opts      Options
	log       *zap.Logger

	// onReady, when set, is called with each newly stored profile.
	onReady func(models.CandidateProfile)
}

func NewOrchestrator(
	source connector.Source,
	cache *ingestion.AttachmentCache,
	extractor *ingestion.Extractor,
	enricher *enrich.Enricher,
	formatter *formatting.Formatter,
	st *store.Store,
	opts Options,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		source:    source,
		cache:     cache,
		extractor: extractor,
		enricher:  enricher,
		formatter: formatter,
		store:     st,
		opts:      opts.withDefaults(),
		log:       log,
	}
}

// OnReady registers a callback invoked for every profile stored during a
// cycle. Call before RunCycle; the callback runs on worker goroutines.
func (o *Orchestrator) OnReady(fn func(models.CandidateProfile)) {
	o.onReady = fn
}

// RunCycle polls the source once and processes every supported
// attachment concurrently. Per-attachment failures are captured in
// their outcomes; only listing the source fails the cycle.
func (o *Orchestrator) RunCycle(ctx context.Context) ([]Outcome, error) {
	items, err := o.source.ListNewItems(ctx, o.opts.MaxItems, o.opts.SourceFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list items from %s: %w", o.source.Name(), err)
	}

	o.log.Info("ingestion cycle started",
		zap.String("source", o.source.Name()),
		zap.Int("items", len(items)))

	var (
		mu       sync.Mutex
		outcomes []Outcome
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.MaxWorkers)

	for _, item := range items {
		for _, att := range item.Attachments {
			if !ingestion.SupportedExtension(att.Filename) {
				continue
			}
			item, att := item, att
			g.Go(func() error {
				outcome := o.processAttachment(gctx, item, att)
				mu.Lock()
				outcomes = append(outcomes, outcome)
				mu.Unlock()
				// Task errors live in the outcome so one bad
				// attachment never aborts the rest of the cycle.
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	o.logCycleSummary(outcomes)
	return outcomes, nil
}

func (o *Orchestrator) processAttachment(ctx context.Context, item connector.Item, att connector.Attachment) Outcome {
	log := o.log.With(
		zap.String("item_id", item.ID),
		zap.String("filename", att.Filename))

	path, cached := o.cache.Resolve(att.Filename)
	if !cached {
		if err := o.source.DownloadAttachment(ctx, item.ID, att.ID, path); err != nil {
			log.Error("attachment download failed", zap.Error(err))
			return Outcome{Status: OutcomeFailed, ItemID: item.ID, Filename: att.Filename, Err: err}
		}
	}

	log.Debug("extracting")
	profile, err := o.extractor.ExtractFile(path)
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		return Outcome{Status: OutcomeFailed, ItemID: item.ID, Filename: att.Filename, Err: err}
	}

	identity := models.CandidateIdentity(profile.Email, time.Now())
	profile.Identity = identity
	profile.Metadata.SourceItemID = item.ID
	profile.Metadata.Sender = connector.SenderEmail(item.Sender)
	profile.Metadata.ReceivedAt = item.ReceivedAt

	// Dedup before the expensive stages: a known identity is skipped
	// without enrichment.
	if o.store.Exists(identity) {
		log.Info("candidate already stored, skipping", zap.String("identity", identity))
		return Outcome{Status: OutcomeSkipped, Identity: identity, ItemID: item.ID, Filename: att.Filename}
	}

	log.Debug("enriching")
	profile = o.enricher.Enrich(ctx, profile)

	log.Debug("formatting")
	profile = o.formatter.Finalize(profile)

	if err := o.store.Create(profile); err != nil {
		if errors.Is(err, models.ErrDuplicateCandidate) {
			// A concurrent worker stored the same identity first.
			log.Info("candidate stored concurrently, skipping", zap.String("identity", identity))
			return Outcome{Status: OutcomeSkipped, Identity: identity, ItemID: item.ID, Filename: att.Filename}
		}
		log.Error("persistence failed", zap.Error(err))
		return Outcome{Status: OutcomeFailed, Identity: identity, ItemID: item.ID, Filename: att.Filename, Err: err}
	}

	log.Info("candidate stored", zap.String("identity", identity))
	if o.onReady != nil {
		o.onReady(profile)
	}

	return Outcome{Status: OutcomeStored, Identity: identity, ItemID: item.ID, Filename: att.Filename, Profile: profile}
}

func (o *Orchestrator) logCycleSummary(outcomes []Outcome) {
	var stored, skipped, failed int
	for _, out := range outcomes {
		switch out.Status {
		case OutcomeStored:
			stored++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	o.log.Info("ingestion cycle complete",
		zap.String("source", o.source.Name()),
		zap.Int("stored", stored),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed))
}
