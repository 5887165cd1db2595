package loadtest_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"aerocode/internal/client"
	"aerocode/internal/loadtest"
	"aerocode/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAgainstServer(t *testing.T) {
	env := testutil.Setup(t)
	srv := httptest.NewServer(env.Router)
	t.Cleanup(srv.Close)

	api := client.NewAPI(srv.URL, srv.Client())
	for _, users := range []int{1, 5, 10} {
		res := loadtest.Run(context.Background(), api, users)
		assert.Equal(t, users, res.Users)
		assert.Equal(t, users, res.OK)
		assert.Empty(t, res.Failed)
		assert.Greater(t, int64(res.Max), int64(0))
		assert.LessOrEqual(t, int64(res.Avg), int64(res.Max))
	}
}

type flakyPinger struct {
	calls atomic.Int32
}

func (p *flakyPinger) Ping(context.Context) error {
	if p.calls.Add(1)%2 == 0 {
		return errors.New("connection refused")
	}
	time.Sleep(time.Millisecond)
	return nil
}

func TestRunSkipsFailuresInTimings(t *testing.T) {
	p := &flakyPinger{}

	res := loadtest.Run(context.Background(), p, 4)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, 2, res.OK)
	assert.GreaterOrEqual(t, int64(res.Avg), int64(time.Millisecond))
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("down") }

func TestRunAllFailed(t *testing.T) {
	res := loadtest.Run(context.Background(), downPinger{}, 3)
	assert.Zero(t, res.OK)
	assert.Len(t, res.Failed, 3)
	assert.Zero(t, res.Avg)
}
