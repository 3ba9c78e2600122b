package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/zini-storefront/internal/domain"
)

var ErrAlreadySubscribed = errors.New("email is already subscribed")

type SubscriptionRepository interface {
	// AddSubscription returns ErrAlreadySubscribed when the email is on the list already.
	AddSubscription(ctx context.Context, email string) error
}

type InquiryRepository interface {
	AddInquiry(ctx context.Context, inquiry domain.Inquiry) error
}
