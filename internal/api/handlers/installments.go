package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/service"
)

// HandleListPlans handles GET /v1/installments/plans?price=
func HandleListPlans(svc InstallmentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		price, ok := queryInt64(c, "price")
		if !ok {
			return
		}
		if price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}

		plans, err := svc.Plans(c.Request.Context(), price)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": plans})
	}
}

// HandleQuote handles POST /v1/installments/quote
func HandleQuote(svc InstallmentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.QuoteRequest
		if !bindJSON(c, &req) {
			return
		}

		quote, err := svc.Quote(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

// HandleApply handles POST /v1/installments/applications. A negative
// precheck answers 409 with the backend's reason.
func HandleApply(svc InstallmentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.ApplicationRequest
		if !bindJSON(c, &req) {
			return
		}

		application, err := svc.Apply(c.Request.Context(), sess, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, application)
	}
}
