// Package enrich attaches identity, geolocation, and risk context to
// security alerts.
package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/identity"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/risk"
)

// Service orchestrates alert enrichment
type Service struct {
	identities identity.IdentityResolver
	geo        identity.GeoResolver
	envTag     string
	logger     *zap.Logger
}

// NewService creates a new enrichment service
func NewService(identities identity.IdentityResolver, geo identity.GeoResolver, envTag string, logger *zap.Logger) *Service {
	return &Service{
		identities: identities,
		geo:        geo,
		envTag:     envTag,
		logger:     logger,
	}
}

// Enrich resolves context for one alert and attaches a risk score. It never
// fails: resolver errors degrade to error-marker records, which score zero.
// The input alert is not mutated; only the reserved enrichment keys are set
// on the copy.
func (s *Service) Enrich(ctx context.Context, alert models.Alert) models.EnrichedAlert {
	enriched, _ := s.EnrichDetail(ctx, alert)
	return enriched
}

// EnrichDetail is Enrich plus the itemized assessment for rendering.
func (s *Service) EnrichDetail(ctx context.Context, alert models.Alert) (models.EnrichedAlert, risk.Assessment) {
	s.logger.Debug("step 1: resolving identity", zap.String("user_id", alert.UserID()))
	identityRec := s.resolveIdentity(ctx, alert.UserID())

	var geoRec *models.GeoRecord
	if ip := alert.SrcIP(); ip != "" {
		s.logger.Debug("step 2: resolving geo", zap.String("src_ip", ip))
		geoRec = s.resolveGeo(ctx, ip)
	} else {
		s.logger.Debug("step 2: no source ip, skipping geo lookup")
	}

	s.logger.Debug("step 3: scoring")
	assessment := risk.Assess(identityRec, geoRec)

	s.logger.Debug("step 4: merging enrichment",
		zap.String("alert_id", alert.AlertID()),
		zap.Int("risk_score", assessment.Score))

	enriched := alert.Clone()
	enriched[models.KeyUserEmail] = identityRec.Email
	enriched[models.KeyUserDepartment] = identityRec.Department
	enriched[models.KeyUserStatus] = string(identityRec.Status)
	enriched[models.KeyMFAEnabled] = identityRec.MFAEnabled
	enriched[models.KeyLastLogin] = identityRec.LastLogin

	if geoRec != nil && !geoRec.Failed() {
		enriched[models.KeyGeoCountry] = geoRec.Country
		enriched[models.KeyGeoCity] = geoRec.City
	} else {
		enriched[models.KeyGeoCountry] = ""
		enriched[models.KeyGeoCity] = ""
	}

	enriched[models.KeyRiskScore] = assessment.Score
	enriched[models.KeyEnrichmentEnv] = s.envTag

	return enriched, assessment
}

func (s *Service) resolveIdentity(ctx context.Context, userID string) *models.IdentityRecord {
	rec, err := s.identities.ResolveIdentity(ctx, userID)
	if err != nil {
		s.logger.Warn("identity lookup failed, continuing without directory context",
			zap.String("user_id", userID),
			zap.Error(err))
		return models.IdentityError(userID, err.Error())
	}
	return rec
}

func (s *Service) resolveGeo(ctx context.Context, ip string) *models.GeoRecord {
	rec, err := s.geo.ResolveGeo(ctx, ip)
	if err != nil {
		s.logger.Warn("geo lookup failed, continuing without location context",
			zap.String("src_ip", ip),
			zap.Error(err))
		return models.GeoError(ip, err.Error())
	}
	return rec
}
