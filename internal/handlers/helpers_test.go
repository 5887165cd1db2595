package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"aerocode/internal/testutil"

	"github.com/stretchr/testify/require"
)

// jsonID renders an id decoded from JSON (float64 or string) for use in a path.
func jsonID(v interface{}) string {
	switch id := v.(type) {
	case float64:
		return fmt.Sprintf("%d", int64(id))
	case string:
		return id
	}
	return fmt.Sprint(v)
}

func mustCreate(t *testing.T, env *testutil.TestEnv, path string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.ParseResponse(w)
}
