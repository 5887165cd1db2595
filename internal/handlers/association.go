package handlers

import (
	"fmt"
	"net/http"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type partAssociationRequest struct {
	PartID     flexInt `json:"pecaId"`
	AircraftID flexInt `json:"aeronaveId"`
}

type stageAssociationRequest struct {
	StageID    flexInt `json:"etapaId"`
	AircraftID flexInt `json:"aeronaveId"`
}

type testAssociationRequest struct {
	TestID     flexInt `json:"testeId"`
	AircraftID flexInt `json:"aeronaveId"`
}

type employeeAssociationRequest struct {
	EmployeeID flexString `json:"funcionarioId"`
	StageID    flexInt    `json:"etapaId"`
}

// connectToAircraft appends item to one of the aircraft's many-to-many
// relations. Only the join row is written (the item itself is not upserted),
// and the insert ignores an existing pair, so repeating it is a no-op. A
// missing item surfaces as the foreign key violation.
func connectToAircraft(c *gin.Context, aircraftID uint, relation string, item interface{}, failMsg string) {
	var aircraft models.Aircraft
	if err := database.DB.First(&aircraft, aircraftID).Error; err != nil {
		fail(c, apierr.Validation(failMsg))
		return
	}

	err := database.DB.Model(&aircraft).
		Omit(relation + ".*").
		Association(relation).
		Append(item)
	if err != nil {
		zap.L().Warn("association failed",
			zap.String("relation", relation),
			zap.Uint("aircraft_id", aircraftID),
			zap.Error(err),
		)
		fail(c, apierr.Validation(failMsg))
		return
	}

	if err := preloadAircraft().First(&aircraft, aircraftID).Error; err != nil {
		fail(c, err)
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "aeronave", idString(aircraft.ID), "associate",
		fmt.Sprintf("%s associado(a) à aeronave %s", relation, aircraft.Code))

	c.JSON(http.StatusOK, aircraft)
}

func AssociatePart(c *gin.Context) {
	var req partAssociationRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.PartID <= 0 || req.AircraftID <= 0 {
		fail(c, apierr.Validation("Erro ao associar peça"))
		return
	}
	connectToAircraft(c, uint(req.AircraftID), "Parts", &models.Part{ID: uint(req.PartID)}, "Erro ao associar peça")
}

func AssociateStage(c *gin.Context) {
	var req stageAssociationRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.StageID <= 0 || req.AircraftID <= 0 {
		fail(c, apierr.Validation("Erro ao associar etapa"))
		return
	}
	connectToAircraft(c, uint(req.AircraftID), "Stages", &models.Stage{ID: uint(req.StageID)}, "Erro ao associar etapa")
}

func AssociateTest(c *gin.Context) {
	var req testAssociationRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.TestID <= 0 || req.AircraftID <= 0 {
		fail(c, apierr.Validation("Erro ao associar teste"))
		return
	}
	connectToAircraft(c, uint(req.AircraftID), "Tests", &models.Test{ID: uint(req.TestID)}, "Erro ao associar teste")
}

// AssociateEmployee links an employee to a stage. Unlike the aircraft
// associations both sides are checked first so the caller gets a 404 that
// names the missing one.
func AssociateEmployee(c *gin.Context) {
	var req employeeAssociationRequest
	if !bindJSON(c, &req) {
		return
	}

	var stage models.Stage
	if err := database.DB.First(&stage, int64(req.StageID)).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Etapa não encontrada."))
			return
		}
		fail(c, apierr.Validation("Erro interno ao associar"))
		return
	}

	employeeID := string(req.EmployeeID)
	var emp models.Employee
	if err := database.DB.First(&emp, "id = ?", employeeID).Error; err != nil {
		if isNotFound(err) {
			zap.L().Info("employee not found for association", zap.String("employee_id", employeeID))
			fail(c, apierr.NotFound("Funcionário não encontrado."))
			return
		}
		fail(c, apierr.Validation("Erro interno ao associar"))
		return
	}

	err := database.DB.Model(&stage).
		Omit("Employees.*").
		Association("Employees").
		Append(&emp)
	if err != nil {
		zap.L().Warn("employee association failed", zap.Uint("stage_id", stage.ID), zap.Error(err))
		fail(c, apierr.Validation("Erro interno ao associar"))
		return
	}

	var full models.Stage
	if err := database.DB.Preload("Employees").First(&full, stage.ID).Error; err != nil {
		fail(c, err)
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "etapa", idString(stage.ID), "associate",
		"Funcionário "+emp.ID+" associado à etapa "+stage.Name)

	c.JSON(http.StatusOK, full)
}
