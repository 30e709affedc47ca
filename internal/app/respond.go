package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/peerrank/internal/apperr"
	"github.com/Spok95/peerrank/internal/ctxutil"
	"github.com/Spok95/peerrank/internal/metrics"
	"github.com/Spok95/peerrank/internal/observability"
)

// writeErr — стабильный kind наружу; неожиданные ошибки уходят в sentry.
func (a *API) writeErr(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case apperr.Validation:
		status = http.StatusBadRequest
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.PermissionDenied:
		status = http.StatusForbidden
	case apperr.Conflict:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		fields := []zap.Field{zap.String("path", c.FullPath()), zap.Error(err)}
		if id, ok := ctxutil.RaterID(c.Request.Context()); ok {
			fields = append(fields, zap.Int64("user_id", id))
		}
		a.log.Error("internal error", fields...)
		c.JSON(status, gin.H{"error": "внутренняя ошибка", "kind": string(apperr.Internal)})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": string(kind)})
}
