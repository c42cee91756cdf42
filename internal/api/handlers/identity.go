package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/identity"
	"github.com/phonestore/storefront/internal/service"
)

// HandleVerifyIdentity handles POST /v1/identity/cccd. The multipart form
// carries the "front" and "back" images and optional "frontCrop"/"backCrop"
// JSON rectangles.
func HandleVerifyIdentity(svc IdentityService, maxBytes int64, logger *zap.Logger) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = identity.DefaultMaxBytes
	}
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		// two images plus form overhead
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*maxBytes+1<<20)

		front, err := readPhoto(c, "front", maxBytes)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		back, err := readPhoto(c, "back", maxBytes)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		data, err := svc.Verify(c.Request.Context(), sess, front, back)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

func readPhoto(c *gin.Context, side string, maxBytes int64) (service.IdentityPhoto, error) {
	var photo service.IdentityPhoto

	header, err := c.FormFile(side)
	if err != nil {
		return photo, fmt.Errorf("%s image is required", side)
	}
	if header.Size > maxBytes {
		return photo, fmt.Errorf("%s image exceeds %d bytes", side, maxBytes)
	}

	f, err := header.Open()
	if err != nil {
		return photo, fmt.Errorf("%s image could not be read", side)
	}
	defer f.Close()

	photo.Data, err = io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return photo, fmt.Errorf("%s image could not be read", side)
	}

	if raw := c.PostForm(side + "Crop"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &photo.Crop); err != nil {
			return photo, fmt.Errorf("%sCrop is not a valid rectangle", side)
		}
	}
	return photo, nil
}
