package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounterInc(t *testing.T) {
	before := testutil.ToFloat64(ScriptsEncoded)
	ScriptsEncoded.Inc()
	if got := testutil.ToFloat64(ScriptsEncoded); got != before+1 {
		t.Fatalf("ScriptsEncoded = %v, want %v", got, before+1)
	}
}

func TestStandardMetricsRegistered(t *testing.T) {
	n, err := testutil.GatherAndCount(DefaultRegistry)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 7 {
		t.Fatalf("registered metrics = %d, want 7", n)
	}
}

func TestWriteText(t *testing.T) {
	ArtifactLoads.Inc()
	ScriptSize.Observe(28)

	var buf bytes.Buffer
	if err := WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, name := range []string{
		"callscript_artifact_loads_total",
		"callscript_script_size_bytes_bucket",
		"# TYPE callscript_script_encoded_total counter",
	} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing %q:\n%s", name, out)
		}
	}
}
