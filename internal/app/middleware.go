package app

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/peerrank/internal/ctxutil"
)

const ctxKeyUserID = "user_id"

// identity — личность из заголовка X-User-ID, который проставляет
// фронт-прокси после проверки сессии. Телу запроса не верим никогда.
func (a *API) identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "нет аутентифицированной личности"})
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "некорректный X-User-ID"})
			return
		}
		c.Set(ctxKeyUserID, id)
		c.Request = c.Request.WithContext(ctxutil.WithRaterID(c.Request.Context(), id))
		c.Next()
	}
}

func (a *API) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.cfg.IsAdmin(userID(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "только для администратора", "kind": "permission_denied"})
			return
		}
		c.Next()
	}
}

func userID(c *gin.Context) int64 {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
