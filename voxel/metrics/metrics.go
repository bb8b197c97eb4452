// Package metrics exports frame, tick, chunk and save instruments to
// Prometheus. A nil *Metrics is valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "voxelbox"

type Metrics struct {
	reg *prometheus.Registry

	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	ticks         prometheus.Counter
	blocksDrawn   prometheus.Gauge
	blocksCulled  prometheus.Gauge
	particles     prometheus.Gauge
	fps           prometheus.Gauge
	chunks        prometheus.Counter
	saves         *prometheus.CounterVec
	saveDuration  prometheus.Histogram
}

// New creates the instruments on a private registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Wall time spent rendering one frame.",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.133},
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sim_ticks_total",
			Help:      "Fixed-rate simulation ticks executed.",
		}),
		blocksDrawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "blocks_drawn",
			Help:      "Blocks painted in the last frame.",
		}),
		blocksCulled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "blocks_culled",
			Help:      "Candidate blocks skipped in the last frame.",
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles_drawn",
			Help:      "Particles painted in the last frame.",
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fps",
			Help:      "Frames per second over the last second.",
		}),
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_generated_total",
			Help:      "Terrain chunks generated.",
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "World saves by trigger and result.",
		}, []string{"trigger", "result"}),
		saveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_seconds",
			Help:      "Wall time spent saving the world.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	m.reg.MustRegister(
		m.frames, m.frameDuration, m.ticks, m.blocksDrawn, m.blocksCulled,
		m.particles, m.fps, m.chunks, m.saves, m.saveDuration,
	)
	return m
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Frame records one rendered frame.
func (m *Metrics) Frame(d time.Duration, drawn, culled, particles int) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameDuration.Observe(d.Seconds())
	m.blocksDrawn.Set(float64(drawn))
	m.blocksCulled.Set(float64(culled))
	m.particles.Set(float64(particles))
}

func (m *Metrics) Ticks(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ticks.Add(float64(n))
}

func (m *Metrics) FPS(v int) {
	if m == nil {
		return
	}
	m.fps.Set(float64(v))
}

func (m *Metrics) ChunkGenerated() {
	if m == nil {
		return
	}
	m.chunks.Inc()
}

// Save records a save attempt. trigger is "auto", "manual" or "shutdown".
func (m *Metrics) Save(trigger string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.saves.WithLabelValues(trigger, result).Inc()
	m.saveDuration.Observe(d.Seconds())
}

// Server serves /metrics until Shutdown.
type Server struct {
	srv *http.Server
	log *zap.Logger
}

// Serve starts the HTTP endpoint on addr in the background.
func (m *Metrics) Serve(addr string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	s := &Server{
		srv: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		log: log,
	}
	go func() {
		log.Info("metrics listening", zap.String("addr", addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", zap.Error(err))
		}
	}()
	return s
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
