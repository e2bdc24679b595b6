package posplot

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"posplot/internal/core"
)

func testConfig(workers int) Config {
	cfg := Config{
		Blocks:  64,
		Workers: workers,
	}
	for i := range cfg.ID {
		cfg.ID[i] = byte(3 * i)
	}
	return cfg
}

func TestForwardPropagateProducesAllTables(t *testing.T) {
	stats, err := ForwardPropagate(testConfig(2))
	require.NoError(t, err)
	require.Len(t, stats, core.NumTables)
	require.Equal(t, uint64(64*core.EntriesPerBlock), stats[0].Entries)
	require.NotZero(t, stats[0].Checksum)
	for i, ts := range stats {
		require.Equal(t, i+1, ts.Table)
		if ts.Table > 1 {
			require.Equal(t, ts.Entries, ts.Matches)
		}
	}
}

func TestForwardPropagateDeterministicAcrossWorkerCounts(t *testing.T) {
	a, err := ForwardPropagate(testConfig(1))
	require.NoError(t, err)
	b, err := ForwardPropagate(testConfig(4))
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		require.Equal(t, a[i].Entries, b[i].Entries, "table %d entry count", a[i].Table)
		require.Equal(t, a[i].Checksum, b[i].Checksum, "table %d checksum", a[i].Table)
	}
}

func TestForwardPropagateIDSensitivity(t *testing.T) {
	a, err := ForwardPropagate(testConfig(2))
	require.NoError(t, err)

	other := testConfig(2)
	other.ID[0] ^= 0xFF
	b, err := ForwardPropagate(other)
	require.NoError(t, err)
	require.NotEqual(t, a[0].Checksum, b[0].Checksum)
}

func TestForwardPropagateDiskBacked(t *testing.T) {
	mem, err := ForwardPropagate(testConfig(2))
	require.NoError(t, err)

	cfg := testConfig(2)
	cfg.TempDir = t.TempDir()
	disk, err := ForwardPropagate(cfg)
	require.NoError(t, err)

	require.Len(t, disk, len(mem))
	for i := range mem {
		require.Equal(t, mem[i].Entries, disk[i].Entries, "table %d", mem[i].Table)
		require.Equal(t, mem[i].Checksum, disk[i].Checksum, "table %d", mem[i].Table)
	}
}

func TestForwardPropagateMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := testConfig(2)
	cfg.Metrics = NewMetrics(reg)
	stats, err := ForwardPropagate(cfg)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := make(map[string]float64)
	for _, mf := range families {
		total := 0.0
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		byName[mf.GetName()] = total
	}
	require.Equal(t, float64(stats[0].Entries), byName["posplot_entries_produced_total"]-sumMatches(stats))
	require.Equal(t, sumMatches(stats), byName["posplot_matches_found_total"])
}

func sumMatches(stats []TableStats) float64 {
	total := 0.0
	for _, ts := range stats {
		total += float64(ts.Matches)
	}
	return total
}

func TestNilMetricsIsValid(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.addEntries(1, 10)
		m.addMatches(2, 10)
	})
}
