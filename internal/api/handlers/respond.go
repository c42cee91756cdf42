package handlers

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/api/middleware"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/errors"
)

// respondError writes the JSON error body for err. Server-side failures are
// logged; client errors are not.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, message := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("route", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}

	body := gin.H{"error": message}
	var verr *errors.ErrValidation
	if stdErrors.As(err, &verr) && len(verr.Fields) > 0 {
		body["fields"] = verr.Fields
	}
	c.JSON(status, body)
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": err.Error(),
		})
		return false
	}
	return true
}

func currentSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return sess, true
}

// queryInt64 reads an optional integer query parameter
func queryInt64(c *gin.Context, key string) (int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return n, true
}
