package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/config"
	"github.com/talentsift/talentsift/internal/connector"
	"github.com/talentsift/talentsift/internal/enrich"
	"github.com/talentsift/talentsift/internal/formatting"
	"github.com/talentsift/talentsift/internal/ingestion"
	"github.com/talentsift/talentsift/internal/llm"
	"github.com/talentsift/talentsift/internal/pipeline"
	"github.com/talentsift/talentsift/internal/scoring"
	"github.com/talentsift/talentsift/internal/store"
)

// application bundles the wired components shared by the serve, ingest,
// and score commands.
type application struct {
	cfg    config.Config
	log    *zap.Logger
	store  *store.Store
	engine *scoring.Engine
	model  *llm.VertexAIClient
	orch   *pipeline.Orchestrator
}

// buildApplication wires everything the commands need. The model client
// and the Gmail source are optional: without a model, scoring and
// enrichment degrade to their deterministic fallbacks; without Gmail
// credentials, ingestion is unavailable but scoring still works.
func buildApplication(ctx context.Context, cfg config.Config, log *zap.Logger) (*application, error) {
	st, err := store.New(cfg.Storage.CandidatesDir)
	if err != nil {
		return nil, err
	}

	var model *llm.VertexAIClient
	if cfg.Model.Project != "" {
		model, err = llm.NewVertexAIClient(ctx, cfg.Model.Project, cfg.Model.Location, cfg.Model.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize model client: %w", err)
		}
	} else {
		log.Warn("model project not configured, semantic scoring will use the heuristic fallback")
	}

	var gen scoring.Generator
	if model != nil {
		gen = model
	}
	semantic := scoring.NewSemanticScorer(gen, log, 0)

	fusion, err := scoring.NewFusion(cfg.Scoring.ModelWeight, cfg.Scoring.KeywordWeight)
	if err != nil {
		return nil, err
	}
	engine, err := scoring.NewEngine(semantic, scoring.DefaultDimensionWeights(), fusion, cfg.Scoring.PassThreshold, log)
	if err != nil {
		return nil, err
	}

	app := &application{cfg: cfg, log: log, store: st, engine: engine, model: model}

	source, err := connector.NewGmailSource(ctx, cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath)
	if err != nil {
		log.Warn("gmail source unavailable, ingestion disabled", zap.Error(err))
		return app, nil
	}

	cache, err := ingestion.NewAttachmentCache(cfg.Storage.AttachmentsDir)
	if err != nil {
		return nil, err
	}

	strategies := []enrich.Strategy{}
	if cfg.Enrich.ExternalURL != "" {
		strategies = append(strategies, enrich.NewExternalStrategy(cfg.Enrich.ExternalURL))
	}
	if model != nil {
		strategies = append(strategies, enrich.NewModelStrategy(model))
	}
	strategies = append(strategies, enrich.NewRuleStrategy())

	app.orch = pipeline.NewOrchestrator(
		source,
		cache,
		ingestion.NewExtractor(log),
		enrich.NewEnricher(log, strategies...),
		formatting.NewFormatter(log),
		st,
		pipeline.Options{
			MaxItems:     cfg.Ingestion.MaxItems,
			MaxWorkers:   cfg.Ingestion.MaxWorkers,
			SourceFilter: cfg.Gmail.Filter,
		},
		log,
	)

	return app, nil
}

func (a *application) Close() {
	if a.model != nil {
		if err := a.model.Close(); err != nil {
			a.log.Warn("failed to close model client", zap.Error(err))
		}
	}
}
