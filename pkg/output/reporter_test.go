package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/chunker"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/observability"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/runner"
)

func TestReportPlan(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Report(&runner.Result{
		DryRun: true,
		Chunks: []runner.ChunkSummary{
			{Index: 0, Files: []string{"a.go", "big.go"}, Truncated: []string{"big.go"}, Size: 1500},
			{Index: 1, Files: []string{"c.go"}, Size: 20},
		},
		Stats: chunker.Stats{FilesSkipped: 1},
	}, "")

	out := buf.String()
	assert.Contains(t, out, "Dry run: 3 files in 2 chunks")
	assert.Contains(t, out, "chunk 0 (2 files, 1.5 kB)")
	assert.Contains(t, out, "  big.go (truncated)")
	assert.Contains(t, out, "  c.go\n")
	assert.Contains(t, out, "1 files skipped")
}

func TestReportWritten(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Report(&runner.Result{
		Chunks:   make([]runner.ChunkSummary, 2),
		Duration: 1500 * time.Millisecond,
		Metrics:  observability.Snapshot{PromptTokens: 12345, OutputTokens: 67, CacheHits: 1, CacheMisses: 1},
	}, "/repo/README.llm")

	out := buf.String()
	assert.Contains(t, out, "Wrote /repo/README.llm (2 chunks, 12,345 prompt / 67 output tokens, 1.5s)")
	assert.Contains(t, out, "1 of 2 responses served from cache")
}

func TestReportNoOp(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Report(&runner.Result{NoOp: true}, "")
	assert.Equal(t, "No matching files found; nothing was written.\n", buf.String())
}
