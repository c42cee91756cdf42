package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/domain"
)

// PaymentStatusResponse is one normalized status check
type PaymentStatusResponse struct {
	OrderCode         string              `json:"orderCode"`
	Status            domain.PaymentState `json:"status"`
	Amount            *int64              `json:"amount,omitempty"`
	ProviderPaymentID *string             `json:"providerPaymentId,omitempty"`
}

// HandlePaymentStatus handles GET /v1/payments/:code/status
func HandlePaymentStatus(svc PaymentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		code := c.Param("code")
		status, err := svc.Status(c.Request.Context(), sess, code)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, PaymentStatusResponse{
			OrderCode:         code,
			Status:            status.Status,
			Amount:            status.Amount,
			ProviderPaymentID: status.ProviderPaymentID,
		})
	}
}

// HandleAwaitPayment handles GET /v1/payments/:code/await. It runs one
// bounded polling run tied to the request context and answers with the final
// snapshot, including ERROR and exhausted PENDING outcomes.
func HandleAwaitPayment(svc PaymentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		snap := svc.Await(c.Request.Context(), sess, c.Param("code"), nil)
		if c.Request.Context().Err() != nil {
			logger.Debug("Client left before payment settled", zap.String("order_code", snap.OrderCode))
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
