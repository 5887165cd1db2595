package handlers

import (
	"net/http"
	"strings"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type employeeRequest struct {
	ID       flexString `json:"id"`
	Name     string     `json:"nome"`
	Phone    string     `json:"telefone"`
	Address  string     `json:"endereco"`
	Username string     `json:"usuario"`
	Password string     `json:"senha"`
	Level    string     `json:"nivel"`
}

// normalize trims the payload and checks required fields. The password is
// only required when requirePassword is set (creation).
func (r *employeeRequest) normalize(requirePassword bool) (models.AccessLevel, *apierr.Error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.Username = strings.TrimSpace(r.Username)

	if r.ID == "" || r.Name == "" || r.Username == "" || r.Level == "" {
		return "", apierr.Validation("Preencha os campos obrigatórios (ID, Nome, Usuário, Senha e Nível)")
	}
	if requirePassword && r.Password == "" {
		return "", apierr.Validation("Preencha os campos obrigatórios (ID, Nome, Usuário, Senha e Nível)")
	}

	level := models.ParseAccessLevel(r.Level)
	if !level.Valid() {
		return "", apierr.Validation("Nível de acesso inválido: use Admin, Engenheiro ou Operador")
	}
	return level, nil
}

func ListEmployees(c *gin.Context) {
	var list []models.Employee
	if err := database.DB.Order("name asc").Find(&list).Error; err != nil {
		fail(c, apierr.Internal("Erro ao buscar funcionários"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetEmployee(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var emp models.Employee
	if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Funcionário não encontrado."))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}
	level, verr := req.normalize(true)
	if verr != nil {
		fail(c, verr)
		return
	}

	var count int64
	database.DB.Model(&models.Employee{}).
		Where("id = ? OR username = ?", string(req.ID), req.Username).
		Count(&count)
	if count > 0 {
		fail(c, apierr.Conflict("Erro ao criar funcionário. ID ou Usuário já existem."))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, err)
		return
	}

	emp := models.Employee{
		ID:           string(req.ID),
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Username:     req.Username,
		PasswordHash: string(hash),
		Level:        level,
	}
	if err := database.DB.Create(&emp).Error; err != nil {
		if isDuplicate(err) {
			fail(c, apierr.Conflict("Erro ao criar funcionário. ID ou Usuário já existem."))
			return
		}
		fail(c, apierr.Validation("Erro ao criar funcionário"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "funcionario", emp.ID, "create", "Funcionário criado: "+emp.Name)
	c.JSON(http.StatusCreated, emp)
}

// UpdateEmployee replaces every field except the id. An empty password keeps
// the current one.
func UpdateEmployee(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var emp models.Employee
	if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Funcionário não encontrado."))
			return
		}
		fail(c, err)
		return
	}

	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ID = flexString(emp.ID)
	level, verr := req.normalize(false)
	if verr != nil {
		fail(c, verr)
		return
	}

	if req.Username != emp.Username {
		var count int64
		database.DB.Model(&models.Employee{}).
			Where("username = ? AND id <> ?", req.Username, emp.ID).
			Count(&count)
		if count > 0 {
			fail(c, apierr.Conflict("Usuário já existe"))
			return
		}
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, err)
			return
		}
		emp.PasswordHash = string(hash)
	}

	emp.Name = req.Name
	emp.Phone = req.Phone
	emp.Address = req.Address
	emp.Username = req.Username
	emp.Level = level

	if err := database.DB.Save(&emp).Error; err != nil {
		if isDuplicate(err) {
			fail(c, apierr.Conflict("Usuário já existe"))
			return
		}
		fail(c, apierr.Validation("Erro ao atualizar funcionário"))
		return
	}

	database.CreateAuditLog(currentEmployeeID(c), "funcionario", emp.ID, "update", "Funcionário atualizado: "+emp.Name)
	c.JSON(http.StatusOK, emp)
}
