package handlers

import (
	"net/http"
	"strings"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"senha"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	invalid := apierr.Validation("Usuário ou senha inválidos").WithStatus(http.StatusUnauthorized)

	var emp models.Employee
	if err := database.DB.Where("username = ?", req.Username).First(&emp).Error; err != nil {
		fail(c, invalid)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, invalid)
		return
	}

	sess := sessions.Default(c)
	sess.Set("employee_id", emp.ID)
	sess.Set("level", string(emp.Level))
	if err := sess.Save(); err != nil {
		fail(c, err)
		return
	}

	database.CreateAuditLog(emp.ID, "funcionario", emp.ID, "login", "Login de "+emp.Username)
	c.JSON(http.StatusOK, emp)
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Status(http.StatusNoContent)
}

// Me returns the employee injected by middleware.InjectEmployee.
func Me(c *gin.Context) {
	v, ok := c.Get("CurrentEmployee")
	if !ok {
		fail(c, apierr.Validation("Nenhum funcionário autenticado").WithStatus(http.StatusUnauthorized))
		return
	}
	c.JSON(http.StatusOK, v)
}
