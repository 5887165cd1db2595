package handlers_test

import (
	"net/http"
	"testing"

	"aerocode/internal/database"
	"aerocode/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func login(t *testing.T, env *testutil.TestEnv, user, pass string) []*http.Cookie {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/login", map[string]string{"usuario": user, "senha": pass})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w.Result().Cookies()
}

func TestLoginAndMe(t *testing.T) {
	env := testutil.Setup(t)
	mustCreate(t, env, "/funcionarios", ana())

	w := testutil.DoRequest(env.Router, "POST", "/login", map[string]string{"usuario": "ana", "senha": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.DoRequest(env.Router, "GET", "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := login(t, env, "ana", "segredo1")
	require.NotEmpty(t, cookies)

	w = testutil.DoRequest(env.Router, "GET", "/me", nil, cookies...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "F-100", testutil.ParseResponse(w)["id"])
}

func TestAuditTrail(t *testing.T) {
	env := testutil.Setup(t)
	require.NoError(t, database.SeedAdmin(env.DB, testutil.TestConfig().Admin, zap.NewNop()))

	w := testutil.DoRequest(env.Router, "GET", "/auditoria", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mustCreate(t, env, "/funcionarios", map[string]interface{}{
		"id": "OP-1", "nome": "Caio", "usuario": "caio", "senha": "abc123", "nivel": "Operador",
	})
	operator := login(t, env, "caio", "abc123")
	w = testutil.DoRequest(env.Router, "GET", "/auditoria", nil, operator...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := login(t, env, "admin", "Admin123!")
	stage := mustCreate(t, env, "/etapas", montagem())
	w = testutil.DoRequest(env.Router, "PUT", "/etapas/"+jsonID(stage["id"])+"/status",
		map[string]string{"status": "Em Andamento"}, admin...)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoRequest(env.Router, "GET", "/auditoria?entidade=etapa", nil, admin...)
	require.Equal(t, http.StatusOK, w.Code)
	logs := testutil.ParseList(w)
	require.Len(t, logs, 2)
	assert.Equal(t, "status_change", logs[0]["acao"])
	assert.Equal(t, "ADM-001", logs[0]["funcionarioId"])
	assert.Equal(t, "create", logs[1]["acao"])
}

func TestSeedAdminRunsOnce(t *testing.T) {
	env := testutil.Setup(t)
	cfg := testutil.TestConfig().Admin

	require.NoError(t, database.SeedAdmin(env.DB, cfg, zap.NewNop()))
	require.NoError(t, database.SeedAdmin(env.DB, cfg, zap.NewNop()))

	w := testutil.DoRequest(env.Router, "GET", "/funcionarios", nil)
	assert.Len(t, testutil.ParseList(w), 1)
}
