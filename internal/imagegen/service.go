// Package imagegen brokers product image generation and editing to a generative model.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"go.uber.org/zap"
)

var (
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrNoImage     = errors.New("no image returned")
	ErrKeyExpired  = errors.New("api key session expired")
	ErrInvalidSize = errors.New("image size is not valid")
	ErrNoKey       = errors.New("no api key selected")
	ErrNoReference = errors.New("reference image is empty")
)

const (
	// the model reports a revoked or unknown key with this message
	keyNotFoundMessage = "Requested entity was not found"
	defaultMIMEType    = "image/jpeg"
)

type Service struct {
	model  port.ImageModel
	keys   port.KeySelector
	logger *zap.Logger
}

func NewService(model port.ImageModel, keys port.KeySelector, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{model: model, keys: keys, logger: logger}
}

// Generate probes the key selector before every call; a model answer without
// image data is an error.
func (s *Service) Generate(ctx context.Context, req domain.ImageRequest) (domain.Image, error) {
	req, err := normalize(req)
	if err != nil {
		return domain.Image{}, err
	}

	if s.keys != nil {
		if err := s.ensureKey(ctx); err != nil {
			return domain.Image{}, err
		}
	}

	img, err := s.model.GenerateImage(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), keyNotFoundMessage) {
			s.logger.Warn("image model rejected the api key, selecting again", zap.Error(err))
			if s.keys != nil {
				if selErr := s.keys.SelectKey(ctx); selErr != nil {
					s.logger.Error("api key selection failed", zap.Error(selErr))
				}
			}
			return domain.Image{}, ErrKeyExpired
		}
		return domain.Image{}, fmt.Errorf("model.GenerateImage: %w", err)
	}

	if len(img.Data) == 0 {
		return domain.Image{}, ErrNoImage
	}
	if img.MIMEType == "" {
		img.MIMEType = defaultMIMEType
	}

	s.logger.Info("image generated",
		zap.Bool("edit", req.Reference != nil),
		zap.String("size", string(req.Size)),
		zap.Int("bytes", len(img.Data)))

	return img, nil
}

func (s *Service) ensureKey(ctx context.Context) error {
	ok, err := s.keys.HasSelectedKey(ctx)
	if err != nil {
		return fmt.Errorf("keys.HasSelectedKey: %w", err)
	}
	if ok {
		return nil
	}

	if err := s.keys.SelectKey(ctx); err != nil {
		return fmt.Errorf("keys.SelectKey: %w", err)
	}
	return nil
}

func normalize(req domain.ImageRequest) (domain.ImageRequest, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return req, ErrEmptyPrompt
	}

	if req.AspectRatio == "" {
		req.AspectRatio = domain.DefaultAspectRatio
	}

	switch req.Size {
	case "":
		req.Size = domain.ImageSize1K
	case domain.ImageSize1K, domain.ImageSize2K, domain.ImageSize4K:
	default:
		return req, ErrInvalidSize
	}

	if req.Reference != nil {
		if len(req.Reference.Data) == 0 {
			return req, ErrNoReference
		}
		if req.Reference.MIMEType == "" {
			req.Reference.MIMEType = defaultMIMEType
		}
	}

	return req, nil
}

// UserMessage turns a Generate error into the text shown next to the image.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyPrompt):
		return "Describe the image you want first."
	case errors.Is(err, ErrNoImage):
		return "No image generated. Please try a different prompt."
	case errors.Is(err, ErrKeyExpired):
		return "API Key session expired. Please select your key again."
	case errors.Is(err, ErrNoKey):
		return "No API key is configured for image generation."
	case errors.Is(err, ErrInvalidSize):
		return "Choose an image size of 1K, 2K or 4K."
	case errors.Is(err, ErrNoReference):
		return "Could not process image data."
	default:
		return "Failed to generate image."
	}
}
