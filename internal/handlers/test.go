package handlers

import (
	"net/http"
	"strings"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-gonic/gin"
)

type testRequest struct {
	Type   string `json:"tipo"`
	Result string `json:"resultado"`
}

func (r *testRequest) normalize() *apierr.Error {
	r.Type = strings.TrimSpace(r.Type)
	r.Result = strings.TrimSpace(r.Result)

	if r.Type == "" || r.Result == "" {
		return apierr.Validation("Preencha todos os campos: tipo e resultado")
	}
	if !models.TestType(r.Type).Valid() {
		return apierr.Validation("Tipo de teste inválido: use Eletrico, Hidraulico ou Aerodinamico")
	}
	if !models.TestResult(r.Result).Valid() {
		return apierr.Validation("Resultado inválido: use Aprovado ou Reprovado")
	}
	return nil
}

func ListTests(c *gin.Context) {
	var list []models.Test
	if err := database.DB.Order("id asc").Find(&list).Error; err != nil {
		fail(c, apierr.Internal("Erro ao buscar testes"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetTest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var test models.Test
	if err := database.DB.First(&test, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Teste não encontrado"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

func CreateTest(c *gin.Context) {
	var req testRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.normalize(); err != nil {
		fail(c, err)
		return
	}

	test := models.Test{
		Type:   models.TestType(req.Type),
		Result: models.TestResult(req.Result),
	}
	if err := database.DB.Create(&test).Error; err != nil {
		fail(c, apierr.Validation("Erro ao criar teste"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "teste", idString(test.ID), "create",
		"Teste criado: "+test.Type.Label()+" - "+string(test.Result))
	c.JSON(http.StatusCreated, test)
}

func UpdateTest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var test models.Test
	if err := database.DB.First(&test, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Teste não encontrado"))
			return
		}
		fail(c, err)
		return
	}

	var req testRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.normalize(); err != nil {
		fail(c, err)
		return
	}

	test.Type = models.TestType(req.Type)
	test.Result = models.TestResult(req.Result)

	if err := database.DB.Save(&test).Error; err != nil {
		fail(c, apierr.Validation("Erro ao atualizar teste"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "teste", idString(test.ID), "update",
		"Teste atualizado: "+test.Type.Label()+" - "+string(test.Result))
	c.JSON(http.StatusOK, test)
}
