package port

import (
	"context"

	"github.com/nikolayk812/zini-storefront/internal/domain"
)

// ImageModel returns an Image with empty Data when the model answered without one.
type ImageModel interface {
	GenerateImage(ctx context.Context, req domain.ImageRequest) (domain.Image, error)
}

// KeySelector is the host capability that owns API key selection.
type KeySelector interface {
	HasSelectedKey(ctx context.Context) (bool, error)
	SelectKey(ctx context.Context) error
}
