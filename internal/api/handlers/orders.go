package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/service"
)

// IdempotencyHeader lets clients retry checkout without creating a second order
const IdempotencyHeader = "Idempotency-Key"

// HandleCheckoutSummary handles GET /v1/checkout
func HandleCheckoutSummary(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		summary, err := svc.PrepareCheckout(c.Request.Context(), sess)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// HandleCheckout handles POST /v1/checkout
func HandleCheckout(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.CheckoutRequest
		if !bindJSON(c, &req) {
			return
		}
		if req.IdempotencyKey == "" {
			req.IdempotencyKey = c.GetHeader(IdempotencyHeader)
		}

		result, err := svc.PlaceOrder(c.Request.Context(), sess, req)
		if err != nil {
			// The order exists even when the payment intent failed; the
			// client still needs its code.
			if result != nil && result.Order != nil {
				logger.Warn("Order placed without payment intent",
					zap.String("order_code", result.OrderCode),
					zap.Error(err),
				)
				c.JSON(http.StatusAccepted, gin.H{
					"order":     result.Order,
					"orderCode": result.OrderCode,
					"error":     "payment could not be started",
				})
				return
			}
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// HandleListOrders handles GET /v1/orders
func HandleListOrders(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		orders, err := svc.Orders(c.Request.Context(), sess)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": orders})
	}
}

// HandleGetOrder handles GET /v1/orders/:code
func HandleGetOrder(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		order, err := svc.Order(c.Request.Context(), sess, c.Param("code"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
