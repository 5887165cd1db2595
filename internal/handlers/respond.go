package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"aerocode/internal/apierr"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fail writes err as the JSON error envelope. Anything that is not an
// *apierr.Error is logged and reported as internal.
func fail(c *gin.Context, err error) {
	var e *apierr.Error
	if !errors.As(err, &e) {
		zap.L().Error("unexpected handler error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		e = apierr.Internal("Erro interno do servidor")
	}
	c.AbortWithStatusJSON(e.Status(), apierr.Body{Error: e})
}

// bindJSON decodes the request body, reporting malformed input as a
// validation error.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, apierr.Validation("Dados inválidos: "+err.Error()))
		return false
	}
	return true
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, apierr.Validation("ID inválido"))
		return 0, false
	}
	return uint(id), true
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate recognises unique-constraint violations from both the
// translated gorm error and the raw driver messages.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// currentEmployeeID is the logged-in employee, empty for anonymous calls.
func currentEmployeeID(c *gin.Context) string {
	id, _ := sessions.Default(c).Get("employee_id").(string)
	return id
}

// flexInt accepts a JSON number or a numeric string, the way form inputs
// arrive from the screens. Empty strings and null decode to zero; fractions
// and values outside the int range are rejected.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("valor inteiro inválido: %s", data)
	}
	*f = flexInt(n)
	return nil
}

// flexString accepts a JSON string or number and trims it.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	*f = flexString(strings.TrimSpace(string(data)))
	return nil
}
