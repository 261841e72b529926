package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/config"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/detect"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/enrich"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/identity"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/osquery"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for both binaries.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Resolvers
	Identities identity.IdentityResolver
	Geo        identity.GeoResolver

	// Services
	Osquery  *osquery.Client
	Detector *detect.Engine
	Enricher *enrich.Service

	closers []io.Closer
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Initialize identity and geo resolvers
	if err := deps.initResolvers(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize resolvers: %w", err)
	}

	// Initialize pipeline services
	deps.initServices(cfg)

	logger.Info("all dependencies initialized",
		zap.String("identity_lookup", cfg.Resolvers.IdentityLookup),
		zap.String("geo_source", cfg.Resolvers.Geo.Source()))
	return deps, nil
}

// initResolvers selects the identity and geo backends from configuration.
// The static resolver backs both concerns unless the environment opts into
// the HTTP directory or a local geo database.
func (d *Dependencies) initResolvers(cfg *config.Config) error {
	static := identity.NewStaticResolver()

	switch cfg.Resolvers.IdentityLookup {
	case config.IdentityLookupHTTP:
		d.Identities = identity.NewOktaResolver(cfg.Resolvers.Okta, d.Logger)
		d.Logger.Info("identity lookups via directory api",
			zap.String("base_url", cfg.Resolvers.Okta.BaseURL))
	default:
		d.Identities = static
		d.Logger.Info("identity lookups via static directory")
	}

	switch cfg.Resolvers.Geo.Source() {
	case config.GeoSourceHTTP:
		d.Geo = identity.NewIPGeoClient(cfg.Resolvers.Geo, d.Logger)
		d.Logger.Info("geo lookups via http api",
			zap.String("base_url", cfg.Resolvers.Geo.BaseURL))
	case config.GeoSourceMMDB:
		mmdb, err := identity.NewMMDBResolver(cfg.Resolvers.Geo.DBPath, d.Logger)
		if err != nil {
			return fmt.Errorf("failed to open geo database: %w", err)
		}
		d.Geo = mmdb
		d.closers = append(d.closers, mmdb)
		d.Logger.Info("geo lookups via local database",
			zap.String("db_path", cfg.Resolvers.Geo.DBPath))
	default:
		d.Geo = static
		d.Logger.Info("geo lookups via static table")
	}

	return nil
}

// initServices initializes the fetch, detection, and enrichment services
func (d *Dependencies) initServices(cfg *config.Config) {
	d.Osquery = osquery.NewClient(cfg.Osquery, d.Logger)
	d.Detector = detect.NewEngine()
	d.Enricher = enrich.NewService(d.Identities, d.Geo, cfg.Environment, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	for _, closer := range d.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close resolver: %w", err))
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
