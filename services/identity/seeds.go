package identity

import (
	"time"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
)

// Directory dimensions used for derived records.
var (
	departments = []string{"Security", "Engineering", "Finance", "HR"}
	statuses    = []models.AccountStatus{
		models.StatusActive,
		models.StatusSuspended,
		models.StatusDeprovisioned,
	}
	geoCities    = []string{"London", "New York", "Paris", "Tokyo"}
	geoCountries = []string{"UK", "US", "FR", "JP"}
)

// SeedUsers returns the fixed demo directory. The static resolver answers
// from it and the mock API serves it, so both lookup paths agree on the
// well-known users.
func SeedUsers() []models.IdentityRecord {
	return []models.IdentityRecord{
		{
			UserID:     "alice",
			Email:      "alice@example.com",
			Department: "Security",
			Status:     models.StatusActive,
			MFAEnabled: models.Bool(true),
			LastLogin:  daysAgo(2),
		},
		{
			UserID:     "bob",
			Email:      "bob@example.com",
			Department: "Engineering",
			Status:     models.StatusSuspended,
			MFAEnabled: models.Bool(false),
			LastLogin:  daysAgo(21),
		},
		{
			UserID:     "carol",
			Email:      "carol@example.com",
			Department: "Finance",
			Status:     models.StatusActive,
			MFAEnabled: models.Bool(false),
			LastLogin:  daysAgo(5),
		},
		{
			UserID:     "dave",
			Email:      "dave@example.com",
			Department: "HR",
			Status:     models.StatusDeprovisioned,
			MFAEnabled: models.Bool(false),
			LastLogin:  daysAgo(28),
		},
	}
}

// SeedGeo returns fixed locations for well-known demo IPs.
func SeedGeo() []models.GeoRecord {
	return []models.GeoRecord{
		{IP: "8.8.8.8", City: "New York", Country: "US"},
		{IP: "81.2.69.142", City: "London", Country: "UK"},
		{IP: "2.2.2.2", City: "Paris", Country: "FR"},
		{IP: "210.138.184.59", City: "Tokyo", Country: "JP"},
	}
}

func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format(time.RFC3339)
}
