package handlers_test

import (
	"net/http"
	"testing"

	"aerocode/internal/models"
	"aerocode/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func montagem() map[string]interface{} {
	return map[string]interface{}{"nome": "Montagem", "data": "2024-01-01", "status": "Pendente"}
}

func TestCreateStage(t *testing.T) {
	env := testutil.Setup(t)

	created := mustCreate(t, env, "/etapas", montagem())
	assert.Equal(t, "Pendente", created["status"])
	assert.Equal(t, "Pendente", created["statusLabel"])

	t.Run("empty status starts pending", func(t *testing.T) {
		body := montagem()
		delete(body, "status")
		created := mustCreate(t, env, "/etapas", body)
		assert.Equal(t, "Pendente", created["status"])
	})

	t.Run("accented label is encoded", func(t *testing.T) {
		body := montagem()
		body["status"] = "Em Andamento"
		created := mustCreate(t, env, "/etapas", body)
		assert.Equal(t, "Em_Andamento", created["status"])
		assert.Equal(t, "Em Andamento", created["statusLabel"])
	})

	t.Run("bad date", func(t *testing.T) {
		body := montagem()
		body["data"] = "01/01/2024"
		w := testutil.DoRequest(env.Router, "POST", "/etapas", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation", testutil.ErrorCode(w))
	})
}

func TestUpdateStageStatusTranslatesLabels(t *testing.T) {
	env := testutil.Setup(t)
	id := jsonID(mustCreate(t, env, "/etapas", montagem())["id"])

	w := testutil.DoRequest(env.Router, "PUT", "/etapas/"+id+"/status", map[string]string{"status": "Em Andamento"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Stage
	require.NoError(t, env.DB.First(&stored, id).Error)
	assert.Equal(t, models.StageInProgress, stored.Status)

	w = testutil.DoRequest(env.Router, "GET", "/etapas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := testutil.ParseList(w)
	require.Len(t, list, 1)
	assert.Equal(t, "Em_Andamento", list[0]["status"])
	assert.Equal(t, "Em Andamento", models.StageStatus(list[0]["status"].(string)).Label())
	assert.Equal(t, "Em Andamento", list[0]["statusLabel"])

	for _, label := range []string{"Concluída", "Concluida"} {
		w = testutil.DoRequest(env.Router, "PUT", "/etapas/"+id+"/status", map[string]string{"status": label})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Concluida", testutil.ParseResponse(w)["status"])
		assert.Equal(t, "Concluída", testutil.ParseResponse(w)["statusLabel"])
	}
}

func TestUpdateStageStatusKeepsUnknownLabel(t *testing.T) {
	env := testutil.Setup(t)
	id := jsonID(mustCreate(t, env, "/etapas", montagem())["id"])

	w := testutil.DoRequest(env.Router, "PUT", "/etapas/"+id+"/status", map[string]string{"status": "Pausada"})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Stage
	require.NoError(t, env.DB.First(&stored, id).Error)
	assert.Equal(t, models.StageStatus("Pausada"), stored.Status)
	assert.Equal(t, "Pausada", stored.StatusLabel)
}

func TestUpdateStageStatusRequiresLabel(t *testing.T) {
	env := testutil.Setup(t)
	id := jsonID(mustCreate(t, env, "/etapas", montagem())["id"])

	for name, body := range map[string]interface{}{
		"missing":    map[string]interface{}{},
		"empty":      map[string]string{"status": ""},
		"whitespace": map[string]string{"status": "   "},
		"null":       map[string]interface{}{"status": nil},
	} {
		t.Run(name, func(t *testing.T) {
			w := testutil.DoRequest(env.Router, "PUT", "/etapas/"+id+"/status", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "validation", testutil.ErrorCode(w))

			var stored models.Stage
			require.NoError(t, env.DB.First(&stored, id).Error)
			assert.Equal(t, models.StagePending, stored.Status)
		})
	}
}

func TestUpdateStageStatusUnknownStage(t *testing.T) {
	env := testutil.Setup(t)

	w := testutil.DoRequest(env.Router, "PUT", "/etapas/42/status", map[string]string{"status": "Pendente"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "not_found", testutil.ErrorCode(w))

	w = testutil.DoRequest(env.Router, "PUT", "/etapas/abc/status", map[string]string{"status": "Pendente"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStage(t *testing.T) {
	env := testutil.Setup(t)
	id := jsonID(mustCreate(t, env, "/etapas", montagem())["id"])

	w := testutil.DoRequest(env.Router, "PUT", "/etapas/"+id, map[string]interface{}{
		"nome": "Pintura", "data": "2024-02-10", "status": "Concluída",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := testutil.ParseResponse(w)
	assert.Equal(t, "Pintura", body["nome"])
	assert.Equal(t, "2024-02-10", body["data"])
	assert.Equal(t, "Concluida", body["status"])

	// full updates reject labels outside the known set
	w = testutil.DoRequest(env.Router, "PUT", "/etapas/"+id, map[string]interface{}{
		"nome": "Pintura", "data": "2024-02-10", "status": "Pausada",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
