package stats_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archtrace/mipscore/hardware"
	"github.com/archtrace/mipscore/stats"
)

func TestFromStatsComputesHitRates(t *testing.T) {
	s := stats.FromStats(100, hardware.SimulationStats{ICHits: 9, ICMisses: 1, DCHits: 1, DCMisses: 1}, 3)
	assert.EqualValues(t, 100, s.Cycle)
	assert.InDelta(t, 0.9, s.ICHitRate, 1e-9)
	assert.InDelta(t, 0.5, s.DCHitRate, 1e-9)
	assert.EqualValues(t, 3, s.Stalls)
}

func TestFromStatsZeroAccessesIsZeroRate(t *testing.T) {
	s := stats.FromStats(0, hardware.SimulationStats{}, 0)
	assert.Zero(t, s.ICHitRate)
	assert.Zero(t, s.DCHitRate)
}

func TestDashboardRecordBeyondCapacity(t *testing.T) {
	d := stats.New(2)
	d.Record(stats.Sample{Cycle: 1})
	d.Record(stats.Sample{Cycle: 2})
	d.Record(stats.Sample{Cycle: 3})
	// recording past capacity must not fail; the retained samples are not
	// exported, so which ones were evicted is not observed here. Stop on a
	// dashboard that was never started is a no-op.
	require.NoError(t, d.Stop())
}

func TestDashboardServesChart(t *testing.T) {
	d := stats.New(10)
	d.Record(stats.Sample{Cycle: 1, ICHitRate: 0.5, DCHitRate: 0.25, Stalls: 1})

	require.NoError(t, d.Start("127.0.0.1:0"))
	defer d.Stop()
	require.NotEmpty(t, d.Addr())

	// give the serving goroutine a moment to start accepting connections.
	time.Sleep(10 * time.Millisecond)

	resp, err := http.Get("http://" + d.Addr() + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
