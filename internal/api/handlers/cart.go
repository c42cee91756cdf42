package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/service"
)

// HandleGetCart handles GET /v1/cart
func HandleGetCart(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		cart, err := svc.Get(c.Request.Context(), sess)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// HandleAddCartItem handles POST /v1/cart/items and answers with the
// re-fetched cart
func HandleAddCartItem(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.AddToCartRequest
		if !bindJSON(c, &req) {
			return
		}

		cart, err := svc.Add(c.Request.Context(), sess, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// HandleUpdateCartItem handles PATCH /v1/cart/items/:id
func HandleUpdateCartItem(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.UpdateCartItemRequest
		if !bindJSON(c, &req) {
			return
		}

		cart, err := svc.Update(c.Request.Context(), sess, c.Param("id"), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:id
func HandleRemoveCartItem(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		cart, err := svc.Remove(c.Request.Context(), sess, c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
