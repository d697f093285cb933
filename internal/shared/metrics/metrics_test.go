package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100, 1000})
	for _, v := range []float64{5, 50, 50, 500, 5000} {
		h.Observe(v)
	}

	snap := h.Snapshot()
	if snap.count != 5 {
		t.Fatalf("expected count 5, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 2 || snap.counts[2] != 1 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "test_ms", "help", snap)
	out := buf.String()
	for _, line := range []string{
		`test_ms_bucket{le="10"} 1`,
		`test_ms_bucket{le="100"} 3`,
		`test_ms_bucket{le="1000"} 4`,
		`test_ms_bucket{le="+Inf"} 5`,
		"test_ms_count 5",
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("missing %q in output:\n%s", line, out)
		}
	}
}

func TestRenderIncludesExportMetrics(t *testing.T) {
	IncExportStarted()
	IncExportSucceeded()
	ObserveAggregateDurationMs(42)

	out := Render()
	for _, name := range []string{
		"export_started_total",
		"export_succeeded_total",
		"export_failed_total",
		"aggregate_duration_ms_bucket",
		"export_duration_ms_sum",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("missing metric %s", name)
		}
	}
}
