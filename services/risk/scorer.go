// Package risk turns resolved identity and geo context into a bounded,
// reproducible score. The policy is additive with a fixed evaluation order,
// so the same inputs always produce the same score and the same factor list.
package risk

import (
	"fmt"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
)

// Factor names attached to assessments.
const (
	FactorAccountStatus = "account_status"
	FactorMFADisabled   = "mfa_disabled"
	FactorUnusualGeo    = "unusual_geo"
)

const (
	pointsAccountStatus = 60
	pointsMFADisabled   = 20
	pointsUnusualGeo    = 20

	// MaxScore bounds every assessment.
	MaxScore = 100
)

// trustedCountries is the usual sign-in footprint. Membership is literal
// string comparison against what the resolvers emit.
var trustedCountries = map[string]bool{
	"US": true,
	"UK": true,
}

// Factor itemizes one rule's contribution to a score
type Factor struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// Assessment is a bounded score plus the factors behind it
type Assessment struct {
	Score   int      `json:"score"`
	Factors []Factor `json:"factors"`
}

// Assess applies the scoring policy. Error-marked records contribute
// nothing: unknown context never adds risk. The result is clamped to
// [0, MaxScore].
func Assess(identity *models.IdentityRecord, geo *models.GeoRecord) Assessment {
	factors := []Factor{}

	if identity != nil && !identity.Failed() {
		if identity.Status.Disabled() {
			factors = append(factors, Factor{
				Name:   FactorAccountStatus,
				Points: pointsAccountStatus,
				Reason: fmt.Sprintf("account status is %s", identity.Status),
			})
		}
		if identity.MFADisabled() {
			factors = append(factors, Factor{
				Name:   FactorMFADisabled,
				Points: pointsMFADisabled,
				Reason: "multi-factor authentication is disabled",
			})
		}
	}

	if geo != nil && !geo.Failed() && geo.Country != "" && !trustedCountries[geo.Country] {
		factors = append(factors, Factor{
			Name:   FactorUnusualGeo,
			Points: pointsUnusualGeo,
			Reason: fmt.Sprintf("sign-in from %s, outside the usual footprint", geo.Country),
		})
	}

	score := 0
	for _, f := range factors {
		score += f.Points
	}
	if score > MaxScore {
		score = MaxScore
	}

	return Assessment{Score: score, Factors: factors}
}

// Score returns just the clamped total
func Score(identity *models.IdentityRecord, geo *models.GeoRecord) int {
	return Assess(identity, geo).Score
}
