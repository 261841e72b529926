package models

import "time"

// Enrichment keys added to an alert by the enrichment pipeline. Original
// alert keys are never overwritten; only these are set.
const (
	KeyUserEmail      = "user_email"
	KeyUserDepartment = "user_department"
	KeyUserStatus     = "user_status"
	KeyMFAEnabled     = "mfa_enabled"
	KeyLastLogin      = "last_login"
	KeyGeoCountry     = "geo_country"
	KeyGeoCity        = "geo_city"
	KeyRiskScore      = "risk_score"
	KeyEnrichmentEnv  = "enrichment_env"
)

// Alert represents an inbound security alert. Like Event it stays an open
// mapping; the pipeline only requires user_id and optionally src_ip.
type Alert map[string]any

// UserID returns the alert's user identifier, or "" when absent.
func (a Alert) UserID() string {
	s, _ := a["user_id"].(string)
	return s
}

// SrcIP returns the alert's source IP, or "" when absent.
func (a Alert) SrcIP() string {
	s, _ := a["src_ip"].(string)
	return s
}

// AlertID returns the alert's identifier, or "" when absent.
func (a Alert) AlertID() string {
	s, _ := a["alert_id"].(string)
	return s
}

// Clone returns a shallow copy so enrichment never mutates the caller's map.
func (a Alert) Clone() Alert {
	out := make(Alert, len(a)+9)
	for k, v := range a {
		out[k] = v
	}
	return out
}

// EnrichedAlert is an alert plus the enrichment keys above.
type EnrichedAlert = Alert

// NewDemoAlert returns the sample alert used by the enrichment CLI when no
// alert is piped in.
func NewDemoAlert() Alert {
	return Alert{
		"alert_id":  "aa-001",
		"user_id":   "alice",
		"src_ip":    "8.8.8.8",
		"hostname":  "ip-10-0-5-12",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}
