// Package identity resolves directory and geolocation context for alert
// enrichment. Resolvers return an error on failure; the enrichment service
// converts failures into error-marker records so scoring treats them as
// unknown instead of aborting the pipeline.
package identity

import (
	"context"
	"hash/fnv"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
)

// IdentityResolver looks up directory context for a user.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*models.IdentityRecord, error)
}

// GeoResolver looks up geolocation context for a source IP.
type GeoResolver interface {
	ResolveGeo(ctx context.Context, ip string) (*models.GeoRecord, error)
}

// Resolver combines both lookups. The static resolver implements it; HTTP
// and MMDB resolvers each cover one side and are composed in the app wiring.
type Resolver interface {
	IdentityResolver
	GeoResolver
}

// hashPick derives a stable index in [0,n) from a string. It backs the
// static resolver's derivations so unknown inputs always map to the same
// record.
func hashPick(s string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int(h.Sum32() % uint32(n))
}
