package marketing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/marketing"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestNewsletter_Subscribe(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		repoErr    error
		wantStatus marketing.Status
		wantMsg    string
		wantCalls  int
	}{
		{
			name:       "new subscriber",
			email:      gofakeit.Email(),
			wantStatus: marketing.StatusSubscribed,
			wantMsg:    marketing.MsgSubscribed,
			wantCalls:  1,
		},
		{
			name:       "already subscribed is not an error",
			email:      gofakeit.Email(),
			repoErr:    port.ErrAlreadySubscribed,
			wantStatus: marketing.StatusAlreadySubscribed,
			wantMsg:    marketing.MsgAlreadySubscribed,
			wantCalls:  1,
		},
		{
			name:       "database failure",
			email:      gofakeit.Email(),
			repoErr:    errors.New("connection refused"),
			wantStatus: marketing.StatusFailed,
			wantMsg:    marketing.MsgSubscribeFailed,
			wantCalls:  1,
		},
		{
			name:       "malformed email never reaches the database",
			email:      "brewer-at-zini",
			wantStatus: marketing.StatusInvalid,
			wantMsg:    marketing.MsgInvalidEmail,
		},
		{
			name:       "blank email",
			email:      "   ",
			wantStatus: marketing.StatusInvalid,
			wantMsg:    marketing.MsgInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{err: tt.repoErr}
			newsletter := marketing.NewNewsletter(repo, zaptest.NewLogger(t))

			fb := newsletter.Subscribe(t.Context(), tt.email)

			assert.Equal(t, tt.wantStatus, fb.Status)
			assert.Equal(t, tt.wantMsg, fb.Message)
			assert.Equal(t, tt.wantCalls, repo.calls)
		})
	}
}

func TestContact_Submit(t *testing.T) {
	valid := domain.Inquiry{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Message: gofakeit.Sentence(10),
	}

	t.Run("sent with default subject", func(t *testing.T) {
		repo := &fakeRepo{}
		fb := marketing.NewContact(repo, zaptest.NewLogger(t)).Submit(t.Context(), valid)

		assert.True(t, fb.OK())
		assert.Equal(t, marketing.MsgSent, fb.Message)
		assert.Equal(t, domain.DefaultInquirySubject, repo.inquiry.Subject)
	})

	t.Run("database failure", func(t *testing.T) {
		repo := &fakeRepo{err: errors.New("timeout")}
		fb := marketing.NewContact(repo, zaptest.NewLogger(t)).Submit(t.Context(), valid)

		assert.False(t, fb.OK())
		assert.Equal(t, marketing.StatusFailed, fb.Status)
		assert.Equal(t, marketing.MsgSendFailed, fb.Message)
	})

	t.Run("missing message", func(t *testing.T) {
		repo := &fakeRepo{}
		inquiry := valid
		inquiry.Message = " "
		fb := marketing.NewContact(repo, nil).Submit(t.Context(), inquiry)

		assert.Equal(t, marketing.StatusInvalid, fb.Status)
		assert.Equal(t, 0, repo.calls)
	})
}

type fakeRepo struct {
	err     error
	calls   int
	inquiry domain.Inquiry
}

func (f *fakeRepo) AddSubscription(_ context.Context, _ string) error {
	f.calls++
	return f.err
}

func (f *fakeRepo) AddInquiry(_ context.Context, inquiry domain.Inquiry) error {
	f.calls++
	f.inquiry = inquiry
	return f.err
}
