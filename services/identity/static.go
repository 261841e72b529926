package identity

import (
	"context"
	"time"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services"
)

// StaticResolver answers lookups without any network access. Known users
// and IPs come from the seed tables; anything else gets a record derived
// from a stable hash of the input, so repeated runs see identical data.
// It replaces the kind of lab stub that would pick random departments and
// statuses per call.
type StaticResolver struct {
	users map[string]models.IdentityRecord
	geo   map[string]models.GeoRecord
}

// NewStaticResolver creates a resolver seeded with the demo directory
func NewStaticResolver() *StaticResolver {
	users := make(map[string]models.IdentityRecord)
	for _, u := range SeedUsers() {
		users[u.UserID] = u
	}

	geo := make(map[string]models.GeoRecord)
	for _, g := range SeedGeo() {
		geo[g.IP] = g
	}

	return &StaticResolver{users: users, geo: geo}
}

// ResolveIdentity returns the seeded record for known users and a derived
// one otherwise. Empty user IDs fail the lookup.
func (r *StaticResolver) ResolveIdentity(ctx context.Context, userID string) (*models.IdentityRecord, error) {
	if userID == "" {
		return nil, services.NewDomainError(services.ErrorTypeResolver, "identity lookup requires a user id", nil)
	}

	if rec, ok := r.users[userID]; ok {
		out := rec
		return &out, nil
	}

	rec := models.IdentityRecord{
		UserID:     userID,
		Email:      userID + "@example.com",
		Department: departments[hashPick(userID, len(departments))],
		Status:     statuses[hashPick(userID+":status", len(statuses))],
		MFAEnabled: models.Bool(hashPick(userID+":mfa", 2) == 0),
		LastLogin: time.Now().UTC().
			AddDate(0, 0, -hashPick(userID+":login", 30)).
			Format(time.RFC3339),
	}
	return &rec, nil
}

// ResolveGeo returns the seeded location for known IPs and a derived one
// otherwise. Empty IPs fail the lookup.
func (r *StaticResolver) ResolveGeo(ctx context.Context, ip string) (*models.GeoRecord, error) {
	if ip == "" {
		return nil, services.NewDomainError(services.ErrorTypeResolver, "geo lookup requires an ip", nil)
	}

	if rec, ok := r.geo[ip]; ok {
		out := rec
		return &out, nil
	}

	idx := hashPick(ip, len(geoCities))
	return &models.GeoRecord{
		IP:      ip,
		City:    geoCities[idx],
		Country: geoCountries[idx],
	}, nil
}
