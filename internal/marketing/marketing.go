// Package marketing handles the newsletter signup and contact forms. Both only
// write to the hosted database and report back an inline message; they never retry.
package marketing

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"go.uber.org/zap"
)

type Status string

const (
	StatusSubscribed        Status = "subscribed"
	StatusAlreadySubscribed Status = "already_subscribed"
	StatusSent              Status = "sent"
	StatusInvalid           Status = "invalid"
	StatusFailed            Status = "failed"
)

const (
	MsgSubscribed        = "You're in. Check your inbox for the Zini Brewing Guide."
	MsgAlreadySubscribed = "You're already on the list. Happy brewing!"
	MsgInvalidEmail      = "Please enter a valid email address."
	MsgSubscribeFailed   = "Failed to subscribe. Please try again."
	MsgSent              = "Message sent. We'll get back to you soon."
	MsgInvalidInquiry    = "Please fill in your name, a valid email and a message."
	MsgSendFailed        = "Failed to send message. Please try again."
)

// Feedback is what the page shows inline after a submission.
type Feedback struct {
	Status  Status
	Message string
}

func (f Feedback) OK() bool {
	return f.Status == StatusSubscribed || f.Status == StatusAlreadySubscribed || f.Status == StatusSent
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type Newsletter struct {
	repo   port.SubscriptionRepository
	logger *zap.Logger
}

func NewNewsletter(repo port.SubscriptionRepository, logger *zap.Logger) *Newsletter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Newsletter{repo: repo, logger: logger}
}

// Subscribe treats an existing subscription as success.
func (n *Newsletter) Subscribe(ctx context.Context, email string) Feedback {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return Feedback{Status: StatusInvalid, Message: MsgInvalidEmail}
	}

	err := n.repo.AddSubscription(ctx, email)
	switch {
	case err == nil:
		n.logger.Info("newsletter subscription added")
		return Feedback{Status: StatusSubscribed, Message: MsgSubscribed}
	case errors.Is(err, port.ErrAlreadySubscribed):
		return Feedback{Status: StatusAlreadySubscribed, Message: MsgAlreadySubscribed}
	default:
		n.logger.Error("newsletter subscription failed", zap.Error(err))
		return Feedback{Status: StatusFailed, Message: MsgSubscribeFailed}
	}
}

type Contact struct {
	repo   port.InquiryRepository
	logger *zap.Logger
}

func NewContact(repo port.InquiryRepository, logger *zap.Logger) *Contact {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Contact{repo: repo, logger: logger}
}

func (c *Contact) Submit(ctx context.Context, inquiry domain.Inquiry) Feedback {
	inquiry.Name = strings.TrimSpace(inquiry.Name)
	inquiry.Email = strings.TrimSpace(inquiry.Email)
	inquiry.Subject = strings.TrimSpace(inquiry.Subject)
	inquiry.Message = strings.TrimSpace(inquiry.Message)
	if inquiry.Subject == "" {
		inquiry.Subject = domain.DefaultInquirySubject
	}

	if err := validate.Struct(inquiry); err != nil {
		return Feedback{Status: StatusInvalid, Message: MsgInvalidInquiry}
	}

	if err := c.repo.AddInquiry(ctx, inquiry); err != nil {
		c.logger.Error("contact inquiry failed", zap.String("subject", inquiry.Subject), zap.Error(err))
		return Feedback{Status: StatusFailed, Message: MsgSendFailed}
	}

	c.logger.Info("contact inquiry added", zap.String("subject", inquiry.Subject))
	return Feedback{Status: StatusSent, Message: MsgSent}
}
