package handlers

import (
	"net/http"
	"strings"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type aircraftRequest struct {
	Code     string  `json:"codigo"`
	Model    string  `json:"modelo"`
	Type     string  `json:"tipo"`
	Capacity flexInt `json:"capacidade"`
	Range    flexInt `json:"alcance"`
}

func (r *aircraftRequest) normalize() *apierr.Error {
	r.Code = strings.TrimSpace(r.Code)
	r.Model = strings.TrimSpace(r.Model)
	r.Type = strings.TrimSpace(r.Type)

	if r.Code == "" || r.Model == "" || r.Type == "" {
		return apierr.Validation("Preencha os campos obrigatórios: codigo, modelo e tipo")
	}
	if !models.AircraftType(r.Type).Valid() {
		return apierr.Validation("Tipo de aeronave inválido: use Comercial ou Militar")
	}
	if r.Capacity < 0 || r.Range < 0 {
		return apierr.Validation("Capacidade e alcance não podem ser negativos")
	}
	return nil
}

func preloadAircraft() *gorm.DB {
	return database.DB.Preload("Parts").Preload("Stages").Preload("Tests")
}

//
// LIST / DETAIL
//

func ListAircraft(c *gin.Context) {
	var list []models.Aircraft
	if err := preloadAircraft().Order("id asc").Find(&list).Error; err != nil {
		fail(c, apierr.Internal("Erro ao buscar aeronaves"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetAircraft(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var aircraft models.Aircraft
	if err := preloadAircraft().First(&aircraft, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Aeronave não encontrada"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, aircraft)
}

//
// CREATE / UPDATE
//

func CreateAircraft(c *gin.Context) {
	var req aircraftRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.normalize(); err != nil {
		fail(c, err)
		return
	}

	var count int64
	database.DB.Model(&models.Aircraft{}).Where("code = ?", req.Code).Count(&count)
	if count > 0 {
		fail(c, apierr.Conflict("Erro ao criar aeronave. Código já existe?"))
		return
	}

	aircraft := models.Aircraft{
		Code:     req.Code,
		Model:    req.Model,
		Type:     models.AircraftType(req.Type),
		Capacity: int(req.Capacity),
		Range:    int(req.Range),
	}
	if err := database.DB.Create(&aircraft).Error; err != nil {
		if isDuplicate(err) {
			fail(c, apierr.Conflict("Erro ao criar aeronave. Código já existe?"))
			return
		}
		fail(c, apierr.Validation("Erro ao criar aeronave"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "aeronave", idString(aircraft.ID),
		"create", "Aeronave criada: "+aircraft.Code)

	c.JSON(http.StatusCreated, aircraft)
}

func UpdateAircraft(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var aircraft models.Aircraft
	if err := database.DB.First(&aircraft, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Aeronave não encontrada"))
			return
		}
		fail(c, err)
		return
	}

	var req aircraftRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.normalize(); err != nil {
		fail(c, err)
		return
	}

	// code stays unique among the other aircraft
	if req.Code != aircraft.Code {
		var count int64
		database.DB.Model(&models.Aircraft{}).
			Where("code = ? AND id <> ?", req.Code, aircraft.ID).
			Count(&count)
		if count > 0 {
			fail(c, apierr.Conflict("Já existe uma aeronave com esse código"))
			return
		}
	}

	aircraft.Code = req.Code
	aircraft.Model = req.Model
	aircraft.Type = models.AircraftType(req.Type)
	aircraft.Capacity = int(req.Capacity)
	aircraft.Range = int(req.Range)

	if err := database.DB.Save(&aircraft).Error; err != nil {
		if isDuplicate(err) {
			fail(c, apierr.Conflict("Já existe uma aeronave com esse código"))
			return
		}
		fail(c, apierr.Validation("Erro ao atualizar aeronave"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "aeronave", idString(aircraft.ID),
		"update", "Aeronave atualizada: "+aircraft.Code)

	c.JSON(http.StatusOK, aircraft)
}
