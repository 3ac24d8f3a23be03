package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/particles/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// Nil manager is a no-op.
	assert.NoError(t, om.WriteStats(WindowStats{}))
	assert.NoError(t, om.WritePerf(PerfStats{}, 0))
	assert.NoError(t, om.WriteConfig(nil))
	assert.NoError(t, om.Close())
	assert.Empty(t, om.Dir())
	assert.Empty(t, om.RunID())
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	_, err = uuid.Parse(om.RunID())
	require.NoError(t, err)

	require.NoError(t, om.WriteStats(WindowStats{WindowEndFrame: 60, Frames: 60, Particles: 8}))
	require.NoError(t, om.WriteStats(WindowStats{WindowEndFrame: 120, Frames: 60, Particles: 8}))
	require.NoError(t, om.WritePerf(PerfStats{}, 60))

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "header plus two rows")
	assert.True(t, strings.HasPrefix(lines[0], "run_id,window_end,sim_time,frames"))
	assert.True(t, strings.HasPrefix(lines[1], om.RunID()+",60,"))
	assert.True(t, strings.HasPrefix(lines[2], om.RunID()+",120,"))

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(perf), "simulate_pct")

	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}
