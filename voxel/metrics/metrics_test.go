package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := New()
	m.Frame(5*time.Millisecond, 120, 30, 40)
	m.Frame(6*time.Millisecond, 100, 35, 40)
	m.Ticks(3)
	m.Ticks(0)
	m.FPS(58)
	m.ChunkGenerated()
	m.Save("auto", time.Millisecond, nil)
	m.Save("manual", time.Millisecond, errors.New("disk full"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.frames))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.blocksDrawn))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 58.0, testutil.ToFloat64(m.fps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chunks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("auto", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("manual", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Frame(time.Millisecond, 1, 1, 1)
	m.Ticks(1)
	m.FPS(1)
	m.ChunkGenerated()
	m.Save("auto", 0, nil)
}

func TestHandlerExposesInstruments(t *testing.T) {
	m := New()
	m.Ticks(1)
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "voxelbox_sim_ticks_total 1"))
}
