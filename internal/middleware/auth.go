package middleware

import (
	"net/http"

	"aerocode/internal/apierr"
	"aerocode/internal/database"
	"aerocode/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectEmployee loads the logged-in employee (if any) into the context
// under "CurrentEmployee".
func InjectEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if id, ok := sess.Get("employee_id").(string); ok && id != "" {
			var emp models.Employee
			if err := database.DB.First(&emp, "id = ?", id).Error; err == nil {
				c.Set("CurrentEmployee", emp)
			}
		}

		c.Next()
	}
}

// RequireLevel restricts a route to employees with one of the given levels.
func RequireLevel(levels ...models.AccessLevel) gin.HandlerFunc {
	levelSet := map[models.AccessLevel]struct{}{}
	for _, l := range levels {
		levelSet[l] = struct{}{}
	}

	return func(c *gin.Context) {
		sess := sessions.Default(c)
		levelStr, ok := sess.Get("level").(string)
		if !ok {
			e := apierr.Validation("Faça login para continuar").WithStatus(http.StatusUnauthorized)
			c.AbortWithStatusJSON(e.Status(), apierr.Body{Error: e})
			return
		}

		if _, ok := levelSet[models.AccessLevel(levelStr)]; !ok {
			e := apierr.Validation("Acesso negado").WithStatus(http.StatusForbidden)
			c.AbortWithStatusJSON(e.Status(), apierr.Body{Error: e})
			return
		}
		c.Next()
	}
}
