package handlers

import (
	"net/http"
	"strings"
	"time"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stageRequest struct {
	Name   string `json:"nome"`
	Date   string `json:"data"`
	Status string `json:"status"`
}

// normalize validates the payload and encodes the status label. An empty
// status starts the stage as Pending.
func (r *stageRequest) normalize() (models.StageStatus, *apierr.Error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Date = strings.TrimSpace(r.Date)
	r.Status = strings.TrimSpace(r.Status)

	if r.Name == "" || r.Date == "" {
		return "", apierr.Validation("Preencha todos os campos: nome e data")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return "", apierr.Validation("Data inválida, use o formato AAAA-MM-DD")
	}

	if r.Status == "" {
		return models.StagePending, nil
	}
	status := models.ParseStageStatus(r.Status)
	if !status.Valid() {
		return "", apierr.Validation("Status inválido: use Pendente, Em Andamento ou Concluída")
	}
	return status, nil
}

func ListStages(c *gin.Context) {
	var list []models.Stage
	if err := database.DB.Preload("Employees").Order("id asc").Find(&list).Error; err != nil {
		fail(c, apierr.Internal("Erro ao buscar etapas"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetStage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var stage models.Stage
	if err := database.DB.Preload("Employees").First(&stage, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Etapa não encontrada"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stage)
}

func CreateStage(c *gin.Context) {
	var req stageRequest
	if !bindJSON(c, &req) {
		return
	}
	status, verr := req.normalize()
	if verr != nil {
		fail(c, verr)
		return
	}

	stage := models.Stage{
		Name:   req.Name,
		Date:   req.Date,
		Status: status,
	}
	if err := database.DB.Create(&stage).Error; err != nil {
		fail(c, apierr.Validation("Erro ao criar etapa"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "etapa", idString(stage.ID), "create", "Etapa criada: "+stage.Name)
	c.JSON(http.StatusCreated, stage)
}

func UpdateStage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var stage models.Stage
	if err := database.DB.First(&stage, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Etapa não encontrada"))
			return
		}
		fail(c, err)
		return
	}

	var req stageRequest
	if !bindJSON(c, &req) {
		return
	}
	status, verr := req.normalize()
	if verr != nil {
		fail(c, verr)
		return
	}

	stage.Name = req.Name
	stage.Date = req.Date
	stage.Status = status

	if err := database.DB.Save(&stage).Error; err != nil {
		fail(c, apierr.Validation("Erro ao atualizar etapa"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "etapa", idString(stage.ID), "update", "Etapa atualizada: "+stage.Name)
	c.JSON(http.StatusOK, stage)
}

//
// STATUS CHANGE
//

type stageStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStageStatus takes a non-empty display label. Labels outside the
// known set are stored verbatim: whether that is an escape hatch or a bug is
// still open, so the behaviour is kept as is.
func UpdateStageStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req stageStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	label := strings.TrimSpace(req.Status)
	if label == "" {
		fail(c, apierr.Validation("Informe o status da etapa"))
		return
	}

	status := models.ParseStageStatus(label)
	zap.L().Debug("stage status translated",
		zap.Uint("stage_id", id),
		zap.String("label", label),
		zap.String("status", string(status)),
	)
	if !status.Valid() {
		zap.L().Warn("unrecognized stage status stored verbatim",
			zap.Uint("stage_id", id),
			zap.String("status", label),
		)
	}

	var stage models.Stage
	if err := database.DB.First(&stage, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Etapa não encontrada").WithStatus(http.StatusBadRequest))
			return
		}
		fail(c, apierr.Validation("Erro ao atualizar status"))
		return
	}

	previous := stage.Status
	if err := database.DB.Model(&stage).Update("status", status).Error; err != nil {
		fail(c, apierr.Validation("Erro ao atualizar status"))
		return
	}
	stage.Status = status
	stage.StatusLabel = status.Label()

	database.CreateAuditLog(currentEmployeeID(c), "etapa", idString(stage.ID), "status_change",
		"Status alterado de "+previous.Label()+" para "+status.Label())

	c.JSON(http.StatusOK, stage)
}
