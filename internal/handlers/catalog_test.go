package handlers_test

import (
	"net/http"
	"testing"

	"aerocode/internal/models"
	"aerocode/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParts(t *testing.T) {
	env := testutil.Setup(t)

	created := mustCreate(t, env, "/pecas", map[string]interface{}{
		"nome": "Trem de pouso", "tipo": "Importada", "fornecedor": "Safran",
	})
	id := jsonID(created["id"])

	w := testutil.DoRequest(env.Router, "GET", "/pecas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, testutil.ParseList(w), 1)

	w = testutil.DoRequest(env.Router, "PUT", "/pecas/"+id, map[string]interface{}{
		"nome": "Trem de pouso", "tipo": "Nacional", "fornecedor": "Embraer",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nacional", testutil.ParseResponse(w)["tipo"])

	w = testutil.DoRequest(env.Router, "POST", "/pecas", map[string]interface{}{
		"nome": "Asa", "tipo": "Usada", "fornecedor": "X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(env.Router, "GET", "/pecas/77", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTests(t *testing.T) {
	env := testutil.Setup(t)

	created := mustCreate(t, env, "/testes", map[string]interface{}{"tipo": "Hidraulico", "resultado": "Aprovado"})
	assert.Equal(t, "Hidraulico", created["tipo"])

	w := testutil.DoRequest(env.Router, "PUT", "/testes/"+jsonID(created["id"]), map[string]interface{}{
		"tipo": "Hidraulico", "resultado": "Reprovado",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reprovado", testutil.ParseResponse(w)["resultado"])

	w = testutil.DoRequest(env.Router, "POST", "/testes", map[string]interface{}{"tipo": "Eletrico", "resultado": "Talvez"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(env.Router, "GET", "/testes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.ParseList(w), 1)
}

func ana() map[string]interface{} {
	return map[string]interface{}{
		"id":       " F-100 ",
		"nome":     "Ana Souza",
		"telefone": "12 99999-0000",
		"endereco": "Rua A, 10",
		"usuario":  "ana",
		"senha":    "segredo1",
		"nivel":    "2 - Engenheiro",
	}
}

func TestCreateEmployeeHashesPassword(t *testing.T) {
	env := testutil.Setup(t)

	created := mustCreate(t, env, "/funcionarios", ana())
	assert.Equal(t, "F-100", created["id"])
	assert.Equal(t, "Engenheiro", created["nivel"])
	assert.NotContains(t, created, "senha")
	assert.NotContains(t, created, "PasswordHash")

	var emp models.Employee
	require.NoError(t, env.DB.First(&emp, "id = ?", "F-100").Error)
	assert.NotEqual(t, "segredo1", emp.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte("segredo1")))
}

func TestCreateEmployeeUniqueness(t *testing.T) {
	env := testutil.Setup(t)
	mustCreate(t, env, "/funcionarios", ana())

	t.Run("same id", func(t *testing.T) {
		body := ana()
		body["usuario"] = "outra"
		w := testutil.DoRequest(env.Router, "POST", "/funcionarios", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "conflict", testutil.ErrorCode(w))
	})

	t.Run("same username", func(t *testing.T) {
		body := ana()
		body["id"] = "F-200"
		w := testutil.DoRequest(env.Router, "POST", "/funcionarios", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "conflict", testutil.ErrorCode(w))
	})

	t.Run("missing password", func(t *testing.T) {
		body := ana()
		body["id"] = "F-300"
		body["usuario"] = "bia"
		body["senha"] = ""
		w := testutil.DoRequest(env.Router, "POST", "/funcionarios", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation", testutil.ErrorCode(w))
	})
}

func TestUpdateEmployeeKeepsPasswordWhenEmpty(t *testing.T) {
	env := testutil.Setup(t)
	mustCreate(t, env, "/funcionarios", ana())

	body := ana()
	body["nome"] = "Ana S. Lima"
	body["senha"] = ""
	body["nivel"] = "Operador"
	w := testutil.DoRequest(env.Router, "PUT", "/funcionarios/F-100", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ana S. Lima", testutil.ParseResponse(w)["nome"])
	assert.Equal(t, "Operador", testutil.ParseResponse(w)["nivel"])

	var emp models.Employee
	require.NoError(t, env.DB.First(&emp, "id = ?", "F-100").Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte("segredo1")))
}

func TestStatusEndpoint(t *testing.T) {
	env := testutil.Setup(t)

	w := testutil.DoRequest(env.Router, "GET", "/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := testutil.ParseResponse(w)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["mensagem"])
}
