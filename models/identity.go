package models

// AccountStatus represents the lifecycle state of a directory account.
type AccountStatus string

const (
	StatusActive        AccountStatus = "ACTIVE"
	StatusSuspended     AccountStatus = "SUSPENDED"
	StatusDeprovisioned AccountStatus = "DEPROVISIONED"
)

// Disabled reports whether the account is in a state that should not be
// signing in at all.
func (s AccountStatus) Disabled() bool {
	return s == StatusSuspended || s == StatusDeprovisioned
}

// IdentityRecord represents the directory context for a user. A non-empty
// Err marks a failed lookup; such records are treated as unknown and must
// not contribute risk.
type IdentityRecord struct {
	UserID     string        `json:"user_id"`
	Email      string        `json:"email"`
	Department string        `json:"department"`
	Status     AccountStatus `json:"status"`

	// MFAEnabled is a tri-state: nil means unknown, which scoring treats
	// the same as enabled. Only an explicit false is penalized.
	MFAEnabled *bool  `json:"mfa_enabled,omitempty"`
	LastLogin  string `json:"last_login,omitempty"`
	Err        string `json:"error,omitempty"`
}

// Failed reports whether this record is an error marker.
func (r *IdentityRecord) Failed() bool {
	return r != nil && r.Err != ""
}

// MFADisabled reports whether MFA is known to be off.
func (r *IdentityRecord) MFADisabled() bool {
	return r != nil && r.MFAEnabled != nil && !*r.MFAEnabled
}

// IdentityError returns an error-marker record for the given user.
func IdentityError(userID, msg string) *IdentityRecord {
	return &IdentityRecord{UserID: userID, Err: msg}
}

// GeoRecord represents the geolocation context for a source IP. A non-empty
// Err marks a failed lookup.
type GeoRecord struct {
	IP      string `json:"ip"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Failed reports whether this record is an error marker.
func (g *GeoRecord) Failed() bool {
	return g != nil && g.Err != ""
}

// GeoError returns an error-marker record for the given IP.
func GeoError(ip, msg string) *GeoRecord {
	return &GeoRecord{IP: ip, Err: msg}
}

// Bool returns a pointer to b, for filling MFAEnabled literals.
func Bool(b bool) *bool {
	return &b
}
