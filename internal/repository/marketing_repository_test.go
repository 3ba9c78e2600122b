package repository_test

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"github.com/nikolayk812/zini-storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type marketingRepositorySuite struct {
	suite.Suite

	subscriptions port.SubscriptionRepository
	inquiries     port.InquiryRepository
	pool          *pgxpool.Pool
	container     testcontainers.Container
}

func TestMarketingRepositorySuite(t *testing.T) {
	suite.Run(t, new(marketingRepositorySuite))
}

func (suite *marketingRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.subscriptions = repository.NewSubscription(suite.pool)
	suite.inquiries = repository.NewInquiry(suite.pool)
}

func (suite *marketingRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *marketingRepositorySuite) TestAddSubscription() {
	defer suite.deleteAll()

	email := gofakeit.Email()

	tests := []struct {
		name      string
		email     string
		wantErrIs error
		wantError string
	}{
		{
			name:  "new email: ok",
			email: email,
		},
		{
			name:      "same email again: already subscribed",
			email:     email,
			wantErrIs: port.ErrAlreadySubscribed,
		},
		{
			name:      "same email different case: already subscribed",
			email:     " " + strings.ToUpper(email) + " ",
			wantErrIs: port.ErrAlreadySubscribed,
		},
		{
			name:      "empty email: error",
			email:     "",
			wantError: "email is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			err := suite.subscriptions.AddSubscription(t.Context(), tt.email)
			switch {
			case tt.wantErrIs != nil:
				require.ErrorIs(t, err, tt.wantErrIs)
			case tt.wantError != "":
				require.EqualError(t, err, tt.wantError)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func (suite *marketingRepositorySuite) TestAddInquiry() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	inquiry := domain.Inquiry{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Message: gofakeit.Sentence(12),
	}
	require.NoError(t, suite.inquiries.AddInquiry(ctx, inquiry))

	var subject, message string
	err := suite.pool.QueryRow(ctx,
		"SELECT subject, message FROM contact_inquiries WHERE email = $1", inquiry.Email).Scan(&subject, &message)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultInquirySubject, subject)
	assert.Equal(t, inquiry.Message, message)

	err = suite.inquiries.AddInquiry(ctx, domain.Inquiry{Name: "x"})
	require.EqualError(t, err, "email is empty")
}

func (suite *marketingRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE newsletter_subscriptions, contact_inquiries")
	suite.NoError(err)
}
