package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/zini-storefront/internal/db"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/port"
)

const uniqueViolation = "23505"

type subscriptionRepository struct {
	q *db.Queries
}

func NewSubscription(pool *pgxpool.Pool) port.SubscriptionRepository {
	return &subscriptionRepository{q: db.New(pool)}
}

func (r *subscriptionRepository) AddSubscription(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is empty")
	}

	err := r.q.AddSubscription(ctx, email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return port.ErrAlreadySubscribed
		}
		return fmt.Errorf("q.AddSubscription: %w", err)
	}

	return nil
}

type inquiryRepository struct {
	q *db.Queries
}

func NewInquiry(pool *pgxpool.Pool) port.InquiryRepository {
	return &inquiryRepository{q: db.New(pool)}
}

func (r *inquiryRepository) AddInquiry(ctx context.Context, inquiry domain.Inquiry) error {
	if inquiry.Email == "" {
		return fmt.Errorf("email is empty")
	}

	subject := inquiry.Subject
	if subject == "" {
		subject = domain.DefaultInquirySubject
	}

	err := r.q.AddInquiry(ctx, db.AddInquiryParams{
		Name:    inquiry.Name,
		Email:   inquiry.Email,
		Subject: subject,
		Message: inquiry.Message,
	})
	if err != nil {
		return fmt.Errorf("q.AddInquiry: %w", err)
	}

	return nil
}
