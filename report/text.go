package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/detect"
)

// WriteHuntText renders a hunt report for a terminal.
func WriteHuntText(w io.Writer, r *HuntReport) error {
	fmt.Fprintln(w, color.CyanString("== process event hunt =="))
	fmt.Fprintf(w, "run:     %s\n", r.ID)
	fmt.Fprintf(w, "source:  %s\n", r.Source)
	fmt.Fprintf(w, "events:  %d across %d page(s)\n", r.TotalEvents, r.Pages)

	for _, note := range r.Notes {
		fmt.Fprintln(w, color.YellowString("warning: %s", note))
	}

	fmt.Fprintln(w)
	if len(r.Findings) == 0 {
		fmt.Fprintln(w, color.GreenString("no suspicious events found"))
		return nil
	}

	fmt.Fprintln(w, color.RedString("findings: %d", len(r.Findings)))
	for _, f := range r.Findings {
		fmt.Fprintf(w, "  [%s] %s  PID %d: %s\n",
			severityString(f.Severity), f.Rule, f.Event.PID(), f.Event.Cmdline())
	}

	return nil
}

// WriteEnrichmentText renders an enrichment report for a terminal.
func WriteEnrichmentText(w io.Writer, r *EnrichmentReport) error {
	alert := r.Alert

	fmt.Fprintln(w, color.CyanString("== alert enrichment =="))
	fmt.Fprintf(w, "alert:   %s\n", alert.AlertID())
	fmt.Fprintf(w, "user:    %s  %s  %s  mfa=%s\n",
		alert.UserID(),
		stringAt(alert, models.KeyUserDepartment),
		stringAt(alert, models.KeyUserStatus),
		mfaLabel(alert[models.KeyMFAEnabled]))
	fmt.Fprintf(w, "email:   %s\n", stringAt(alert, models.KeyUserEmail))
	fmt.Fprintf(w, "geo:     %s\n", geoLabel(alert))

	fmt.Fprintf(w, "risk:    %s\n", scoreString(r.Assessment.Score))
	for _, factor := range r.Assessment.Factors {
		fmt.Fprintf(w, "  +%d %s (%s)\n", factor.Points, factor.Name, factor.Reason)
	}

	return nil
}

func severityString(s detect.Severity) string {
	switch s {
	case detect.SeverityHigh:
		return color.RedString(string(s))
	case detect.SeverityMedium:
		return color.YellowString(string(s))
	default:
		return string(s)
	}
}

func scoreString(score int) string {
	label := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 60:
		return color.RedString(label)
	case score >= 20:
		return color.YellowString(label)
	default:
		return color.GreenString(label)
	}
}

func stringAt(alert models.Alert, key string) string {
	if s, ok := alert[key].(string); ok && s != "" {
		return s
	}
	return "-"
}

func geoLabel(alert models.Alert) string {
	city := stringAt(alert, models.KeyGeoCity)
	country := stringAt(alert, models.KeyGeoCountry)
	if city == "-" && country == "-" {
		return "-"
	}
	return fmt.Sprintf("%s, %s  (%s)", city, country, alert.SrcIP())
}

// mfaLabel handles both the in-process pointer and the bool that comes back
// from a JSON round trip.
func mfaLabel(v interface{}) string {
	switch mfa := v.(type) {
	case *bool:
		if mfa == nil {
			return "unknown"
		}
		if *mfa {
			return "on"
		}
		return "off"
	case bool:
		if mfa {
			return "on"
		}
		return "off"
	default:
		return "unknown"
	}
}
