package identity

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

const (
	// DefaultMaxBytes caps one uploaded photo
	DefaultMaxBytes = 5 << 20
	jpegQuality     = 90
)

// Step is the position in the CCCD verification flow
type Step int

const (
	StepFront Step = iota
	StepBack
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepFront:
		return "front"
	case StepBack:
		return "back"
	case StepReview:
		return "review"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Crop selects a rectangle of the photo, relative to its top-left corner.
// A zero Crop keeps the whole image.
type Crop struct {
	X      int `json:"x" form:"x"`
	Y      int `json:"y" form:"y"`
	Width  int `json:"width" form:"width"`
	Height int `json:"height" form:"height"`
}

// IsZero reports whether no crop was requested
func (c Crop) IsZero() bool {
	return c.Width == 0 && c.Height == 0
}

// Uploader sends the prepared card photos to the backend
type Uploader interface {
	UploadIdentityDocuments(ctx context.Context, sess *session.Session, in backend.IdentityUpload) (*domain.IdentityData, error)
}

// Wizard walks a user through photographing both sides of a citizen ID card
type Wizard struct {
	uploader Uploader
	maxBytes int64
	logger   *zap.Logger

	step   Step
	front  []byte
	back   []byte
	result *domain.IdentityData
}

// NewWizard creates a wizard positioned at the front side
func NewWizard(uploader Uploader, maxBytes int64, logger *zap.Logger) *Wizard {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wizard{uploader: uploader, maxBytes: maxBytes, logger: logger}
}

// Step returns the current step
func (w *Wizard) Step() Step { return w.step }

// Result returns the extracted data once submitted
func (w *Wizard) Result() *domain.IdentityData { return w.result }

// SetSide stores the cropped, JPEG re-encoded photo of one side and advances
// to the next missing side, or to review when both are present.
func (w *Wizard) SetSide(side domain.DocumentSide, photo []byte, crop Crop) error {
	if w.step == StepSubmitted {
		return &apperrors.ErrInvalidStateTransition{From: w.step.String(), To: string(side)}
	}
	encoded, err := Prepare(photo, crop, w.maxBytes)
	if err != nil {
		return err
	}

	switch side {
	case domain.DocumentSideFront:
		w.front = encoded
	case domain.DocumentSideBack:
		w.back = encoded
	default:
		return &apperrors.ErrValidation{Message: fmt.Sprintf("unknown card side %q", side)}
	}

	switch {
	case w.front == nil:
		w.step = StepFront
	case w.back == nil:
		w.step = StepBack
	default:
		w.step = StepReview
	}
	return nil
}

// GoBack returns to the previous step, keeping captured photos
func (w *Wizard) GoBack() error {
	switch w.step {
	case StepBack:
		w.step = StepFront
	case StepReview:
		w.step = StepBack
	default:
		return &apperrors.ErrInvalidStateTransition{From: w.step.String(), To: "previous"}
	}
	return nil
}

// Submit uploads both sides and moves to submitted on success
func (w *Wizard) Submit(ctx context.Context, sess *session.Session) (*domain.IdentityData, error) {
	if w.step == StepSubmitted {
		return w.result, nil
	}
	if w.front == nil || w.back == nil {
		return nil, &apperrors.ErrValidation{Message: "both sides of the card are required"}
	}

	data, err := w.uploader.UploadIdentityDocuments(ctx, sess, backend.IdentityUpload{Front: w.front, Back: w.back})
	if err != nil {
		w.logger.Warn("Identity verification failed", zap.Error(err))
		return nil, err
	}

	w.result = data
	w.step = StepSubmitted
	w.logger.Info("Identity documents submitted")
	return data, nil
}

// Prepare validates size and format, applies the crop and re-encodes the
// photo as JPEG.
func Prepare(photo []byte, crop Crop, maxBytes int64) ([]byte, error) {
	if len(photo) == 0 {
		return nil, &apperrors.ErrValidation{Message: "photo is empty"}
	}
	if maxBytes > 0 && int64(len(photo)) > maxBytes {
		return nil, &apperrors.ErrValidation{Message: fmt.Sprintf("photo exceeds %d bytes", maxBytes)}
	}

	img, format, err := image.Decode(bytes.NewReader(photo))
	if err != nil {
		return nil, &apperrors.ErrValidation{Message: "photo must be a JPEG or PNG image"}
	}
	if format != "jpeg" && format != "png" {
		return nil, &apperrors.ErrValidation{Message: "photo must be a JPEG or PNG image"}
	}

	if !crop.IsZero() {
		img, err = cropImage(img, crop)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}
	return buf.Bytes(), nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func cropImage(img image.Image, c Crop) (image.Image, error) {
	if c.Width <= 0 || c.Height <= 0 || c.X < 0 || c.Y < 0 {
		return nil, &apperrors.ErrValidation{Message: "crop rectangle is invalid"}
	}
	bounds := img.Bounds()
	rect := image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height).Add(bounds.Min).Intersect(bounds)
	if rect.Empty() {
		return nil, &apperrors.ErrValidation{Message: "crop rectangle is outside the photo"}
	}
	si, ok := img.(subImager)
	if !ok {
		return nil, &apperrors.ErrValidation{Message: "photo cannot be cropped"}
	}
	return si.SubImage(rect), nil
}
