package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

// UploadIdentityDocuments sends both CCCD sides as multipart JPEG parts and
// returns the data the backend extracted from them.
func (c *Client) UploadIdentityDocuments(ctx context.Context, sess *session.Session, in IdentityUpload) (*domain.IdentityData, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{Message: "login required to verify identity"}
	}
	if len(in.Front) == 0 || len(in.Back) == 0 {
		return nil, &apperrors.ErrValidation{Message: "both sides of the card are required"}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	parts := []struct {
		field string
		data  []byte
	}{
		{string(domain.DocumentSideFront), in.Front},
		{string(domain.DocumentSideBack), in.Back},
	}
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.field+".jpg")
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	raw, err := c.execute(ctx, request{
		method:      http.MethodPost,
		path:        pathIdentityCCCD,
		session:     sess,
		rawBody:     &buf,
		contentType: w.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	var data domain.IdentityData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if data.IDNumber == "" {
		return nil, &apperrors.ErrRejected{Reason: "could not read the card, please retake the photos"}
	}
	return &data, nil
}
