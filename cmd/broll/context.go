package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/config"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/discovery"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/logging"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/ideas"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/segment"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/transcript"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/youtube"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/store"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/transcriptcache"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// session bundles the store, service clients, and pipeline for one document
// run. The store is in-memory and lives only as long as the session.
type session struct {
	cfg         *config.Config
	logger      *slog.Logger
	store       *store.Store
	transcripts *transcriptcache.Cache
	ideas       *ideas.Client
	pipeline    *discovery.Pipeline
}

func (c *commandContext) newSession() (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	st, err := store.Open()
	if err != nil {
		return nil, err
	}

	ideasClient := ideas.NewClient(cfg.Anthropic.APIKey,
		ideas.WithBaseURL(cfg.Anthropic.BaseURL),
		ideas.WithModel(cfg.Anthropic.Model))
	segmentClient := segment.NewClient(cfg.Gemini.APIKey,
		segment.WithBaseURL(cfg.Gemini.BaseURL),
		segment.WithModel(cfg.Gemini.Model))
	searchClient := youtube.NewClient(cfg.YouTube.APIKey,
		youtube.WithBaseURL(cfg.YouTube.BaseURL),
		youtube.WithRateLimit(cfg.YouTube.SearchesPerSecond))
	transcripts := transcriptcache.New(transcript.NewClient(cfg.Transcript.ProviderURL), logger)

	pipeline := discovery.New(discovery.Deps{
		Store:       st,
		Ideas:       ideasClient,
		Suggester:   ideasClient,
		Search:      searchClient,
		Localizer:   segmentClient,
		Transcripts: transcripts,
		Logger:      logger,
		SearchLimit: cfg.Discovery.SearchLimit,
	})

	return &session{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		transcripts: transcripts,
		ideas:       ideasClient,
		pipeline:    pipeline,
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
