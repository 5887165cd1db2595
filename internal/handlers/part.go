package handlers

import (
	"net/http"
	"strings"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-gonic/gin"
)

type partRequest struct {
	Name     string `json:"nome"`
	Type     string `json:"tipo"`
	Supplier string `json:"fornecedor"`
}

func (r *partRequest) normalize() *apierr.Error {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	r.Supplier = strings.TrimSpace(r.Supplier)

	if r.Name == "" || r.Type == "" || r.Supplier == "" {
		return apierr.Validation("Preencha todos os campos: nome, tipo e fornecedor")
	}
	if !models.PartType(r.Type).Valid() {
		return apierr.Validation("Tipo de peça inválido: use Nacional ou Importada")
	}
	return nil
}

func ListParts(c *gin.Context) {
	var list []models.Part
	if err := database.DB.Order("id asc").Find(&list).Error; err != nil {
		fail(c, apierr.Internal("Erro ao buscar peças"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetPart(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var part models.Part
	if err := database.DB.First(&part, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Peça não encontrada"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func CreatePart(c *gin.Context) {
	var req partRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.normalize(); err != nil {
		fail(c, err)
		return
	}

	part := models.Part{
		Name:     req.Name,
		Type:     models.PartType(req.Type),
		Supplier: req.Supplier,
	}
	if err := database.DB.Create(&part).Error; err != nil {
		fail(c, apierr.Validation("Erro ao criar peça"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "peca", idString(part.ID), "create", "Peça criada: "+part.Name)
	c.JSON(http.StatusCreated, part)
}

func UpdatePart(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var part models.Part
	if err := database.DB.First(&part, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Peça não encontrada"))
			return
		}
		fail(c, err)
		return
	}

	var req partRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.normalize(); err != nil {
		fail(c, err)
		return
	}

	part.Name = req.Name
	part.Type = models.PartType(req.Type)
	part.Supplier = req.Supplier

	if err := database.DB.Save(&part).Error; err != nil {
		fail(c, apierr.Validation("Erro ao atualizar peça"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "peca", idString(part.ID), "update", "Peça atualizada: "+part.Name)
	c.JSON(http.StatusOK, part)
}
