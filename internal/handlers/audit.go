package handlers

import (
	"net/http"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-gonic/gin"
)

const auditPageSize = 200

func ListAuditLogs(c *gin.Context) {
	q := database.DB.Order("created_at desc").Order("id desc").Limit(auditPageSize)

	if entity := c.Query("entidade"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if entityID := c.Query("entidadeId"); entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		fail(c, apierr.Internal("Erro ao buscar auditoria"))
		return
	}
	c.JSON(http.StatusOK, logs)
}

func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "mensagem": "Servidor ON!"})
}
