package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewRegistersOnIsolatedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Requests.WithLabelValues("GET", "/aeronaves", "200").Inc()
	m.Requests.WithLabelValues("GET", "/aeronaves", "200").Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/aeronaves", "200")))

	// a second registry must not collide with the first
	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}
