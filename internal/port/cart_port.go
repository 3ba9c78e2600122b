package port

import (
	"context"

	"github.com/nikolayk812/zini-storefront/internal/domain"
)

// CartStorage holds one ordered cart snapshot per key.
type CartStorage interface {
	LoadCart(ctx context.Context, key string) ([]domain.CartItem, error)
	SaveCart(ctx context.Context, key string, items []domain.CartItem) error
}
