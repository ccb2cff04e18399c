package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// cell matches a table cell holding exactly v.
func cell(v string) string {
	return `\|\s*` + v + `\s*\|`
}

func TestBench(t *testing.T) {
	out, err := execute(t, "bench", "--workers", "2", "--iterations", "20", "--primitives", "slim,monitor")
	require.NoError(t, err)
	assert.Contains(t, out, "slim")
	assert.Contains(t, out, "monitor")
	assert.Regexp(t, cell("40"), out)
	assert.NotContains(t, out, "weighted")
}

func TestBenchUnknownPrimitive(t *testing.T) {
	_, err := execute(t, "bench", "--iterations", "5", "--primitives", "ticket")
	assert.Error(t, err)
}

func TestBenchNonPositive(t *testing.T) {
	_, err := execute(t, "bench", "--workers", "0")
	assert.ErrorIs(t, err, errNonPositive)
}

func TestBenchFromEnv(t *testing.T) {
	t.Setenv("SYNXKIT_ITERATIONS", "3")
	t.Setenv("SYNXKIT_WORKERS", "2")
	out, err := execute(t, "bench", "--primitives", "mutex")
	require.NoError(t, err)
	assert.Regexp(t, cell("6"), out)
}

func TestBenchFromConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "synxkit.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("workers: 3\niterations: 7\nprimitives: [barrier]\n"), 0o600))

	out, err := execute(t, "--config", fn, "bench")
	require.NoError(t, err)
	assert.Contains(t, out, "barrier")
	assert.Regexp(t, cell("21"), out)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "bench")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "bench"})
	assert.Error(t, cmd.Execute())
}

func TestDine(t *testing.T) {
	out, err := execute(t, "dine",
		"--meals", "3",
		"--think-min", "0", "--think-max", "1ms",
		"--eat-min", "0", "--eat-max", "1ms",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "4,0")
	assert.Regexp(t, `\|\s*0\s*\|\s*0,1\s*\|\s*3\s*\|`, out)
}

func TestDineReportsMetrics(t *testing.T) {
	out, err := execute(t, "dine",
		"--meals", "3",
		"--think-min", "0", "--think-max", "1ms",
		"--eat-min", "0", "--eat-max", "1ms",
	)
	require.NoError(t, err)
	assert.Regexp(t, `\|\s*dining_meals_total\{actor=4\}\s*\|\s*3\s*\|`, out)
	assert.Regexp(t, `\|\s*dining_waiting_actors\s*\|\s*0\s*\|`, out)
	assert.Regexp(t, `\|\s*dining_request_wait_seconds_count\s*\|\s*15\s*\|`, out)
	assert.Contains(t, out, "dining_request_wait_seconds_mean")
}

func TestDineDuration(t *testing.T) {
	out, err := execute(t, "dine",
		"--actors", "3",
		"--duration", "50ms",
		"--think-min", "1ms", "--think-max", "2ms",
		"--eat-min", "1ms", "--eat-max", "2ms",
		"--unit-locks=false",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "2,0")
}

func TestDineTooFewActors(t *testing.T) {
	_, err := execute(t, "dine", "--actors", "1")
	assert.ErrorIs(t, err, errNonPositive)
}
