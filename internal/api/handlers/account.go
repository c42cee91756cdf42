package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/service"
)

// HandleLogin handles POST /v1/auth/login
func HandleLogin(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := svc.Login(c.Request.Context(), sess, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "sessionId": sess.ID})
	}
}

// HandleRegister handles POST /v1/auth/register
func HandleRegister(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.RegisterRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := svc.Register(c.Request.Context(), sess, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user, "sessionId": sess.ID})
	}
}

// HandleLogout handles POST /v1/auth/logout
func HandleLogout(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		if err := svc.Logout(c.Request.Context(), sess); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleGetProfile handles GET /v1/profile
func HandleGetProfile(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		user, err := svc.Profile(c.Request.Context(), sess)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// HandleUpdateProfile handles PUT /v1/profile
func HandleUpdateProfile(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.ProfileRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := svc.UpdateProfile(c.Request.Context(), sess, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// HandleChangePassword handles POST /v1/profile/password
func HandleChangePassword(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.ChangePasswordRequest
		if !bindJSON(c, &req) {
			return
		}

		if err := svc.ChangePassword(c.Request.Context(), sess, req); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleListAddresses handles GET /v1/addresses
func HandleListAddresses(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		addresses, err := svc.Addresses(c.Request.Context(), sess)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": addresses})
	}
}

// HandleCreateAddress handles POST /v1/addresses
func HandleCreateAddress(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.AddressRequest
		if !bindJSON(c, &req) {
			return
		}

		address, err := svc.AddAddress(c.Request.Context(), sess, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// HandleDeleteAddress handles DELETE /v1/addresses/:id
func HandleDeleteAddress(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		if err := svc.RemoveAddress(c.Request.Context(), sess, c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleSetDefaultAddress handles POST /v1/addresses/:id/default
func HandleSetDefaultAddress(svc AccountService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		if err := svc.SetDefaultAddress(c.Request.Context(), sess, c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
