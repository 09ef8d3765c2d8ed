// Package stats serves the optional live dashboard cmd/pipesim exposes via
// --stats-addr: a go-echarts line chart of per-cycle instruction/data cache
// hit-rate and pipeline-stall counters, mounted alongside the teacher's own
// statsview runtime view.
//
// The teacher wires github.com/go-echarts/statsview+go-echarts/v2 into a
// live GUI frame-timing chart; here the same pairing charts cache/pipeline
// counters instead, the direct analogue for a headless batch simulator.
package stats

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/statsview/viewer"

	"github.com/archtrace/mipscore/hardware"
	"github.com/archtrace/mipscore/logger"
)

// Sample is one snapshot of the counters charted by Dashboard, taken once
// per cycle or once every few cycles at the driver's discretion.
type Sample struct {
	Cycle     uint64
	ICHitRate float64
	DCHitRate float64
	Stalls    uint64
}

// FromStats derives a Sample from the simulator's running cache counters
// and a stall count the caller tracks separately; PipelineController itself
// doesn't accumulate a stall total, so cmd/pipesim derives one by noticing
// when consecutive PipelineState snapshots report the same nonzero
// instruction word in the ID stage.
func FromStats(cycle uint64, st hardware.SimulationStats, stalls uint64) Sample {
	return Sample{
		Cycle:     cycle,
		ICHitRate: hitRate(st.ICHits, st.ICMisses),
		DCHitRate: hitRate(st.DCHits, st.DCMisses),
		Stalls:    stalls,
	}
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Dashboard accumulates Samples in a bounded ring and renders them on
// request as a live-updating go-echarts line chart.
type Dashboard struct {
	mu      sync.Mutex
	samples []Sample
	maxKept int

	srv *http.Server
	ln  net.Listener
}

// New creates a Dashboard keeping the most recent maxKept samples; maxKept
// <= 0 falls back to 600 (ten minutes of one-per-second sampling).
func New(maxKept int) *Dashboard {
	if maxKept <= 0 {
		maxKept = 600
	}
	return &Dashboard{maxKept: maxKept}
}

// Record appends a Sample, evicting the oldest once maxKept is exceeded.
func (d *Dashboard) Record(s Sample) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.samples = append(d.samples, s)
	if len(d.samples) > d.maxKept {
		d.samples = d.samples[len(d.samples)-d.maxKept:]
	}
}

func (d *Dashboard) chart() *charts.Line {
	d.mu.Lock()
	samples := append([]Sample(nil), d.samples...)
	d.mu.Unlock()

	xs := make([]string, len(samples))
	ic := make([]opts.LineData, len(samples))
	dc := make([]opts.LineData, len(samples))
	stalls := make([]opts.LineData, len(samples))
	for i, s := range samples {
		xs[i] = fmt.Sprintf("%d", s.Cycle)
		ic[i] = opts.LineData{Value: s.ICHitRate}
		dc[i] = opts.LineData{Value: s.DCHitRate}
		stalls[i] = opts.LineData{Value: s.Stalls}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "pipeline counters"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "cycle"}),
	)
	line.SetXAxis(xs).
		AddSeries("ic_hit_rate", ic).
		AddSeries("dc_hit_rate", dc).
		AddSeries("stalls", stalls)
	return line
}

// Start binds addr and serves the pipeline chart at "/", with the teacher's
// own statsview runtime view (goroutines, heap, GC pauses) mounted at its
// usual path on the same listener. It returns once the listener is bound;
// Stop shuts the server down.
func (d *Dashboard) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if err := d.chart().Render(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	mux.HandleFunc(viewer.DefaultPath, viewer.ViewHandleFunc())
	mux.HandleFunc(viewer.DefaultPath+"/statsview-metrics", viewer.FetchHandleFunc())

	d.srv = &http.Server{Handler: mux}
	d.ln = ln
	logger.Logf("stats", "dashboard listening on %s (runtime view at %s)", ln.Addr(), viewer.DefaultPath)

	go func() {
		_ = d.srv.Serve(ln)
	}()
	return nil
}

// Addr returns the dashboard's bound listener address, or "" if Start
// hasn't been called (or failed). Useful when addr was given as ":0" and
// the caller needs the actual ephemeral port.
func (d *Dashboard) Addr() string {
	if d.ln == nil {
		return ""
	}
	return d.ln.Addr().String()
}

// Stop closes the dashboard's listener. A Dashboard that was never Start-ed
// is a no-op.
func (d *Dashboard) Stop() error {
	if d.srv == nil {
		return nil
	}
	return d.srv.Close()
}
