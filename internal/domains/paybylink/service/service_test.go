package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/eupago/dto"
	log "github.com/savioruz/eupago/pkg/logger/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*payByLinkService, *log.MockInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := log.NewMockInterface(ctrl)

	s, ok := New(Config{RedirectBaseURL: "https://sandbox.test/link/"}, mockLogger).(*payByLinkService)
	require.True(t, ok)

	s.now = func() time.Time { return fixedNow }

	return s, mockLogger
}

func validBody() dto.PayByLinkBody {
	return dto.PayByLinkBody{
		Payment: dto.PaymentBody{
			SuccessURL:     "https://shop.example.com/success",
			Amount:         dto.Amount{Currency: constant.CurrencyEUR, Value: 10.5},
			Lang:           constant.LanguagePT,
			ExpirationDate: "2030-01-02 00:00:00",
		},
	}
}

func assertRejection(t *testing.T, err error, status int, code string) {
	t.Helper()

	var rejection *Rejection
	require.True(t, errors.As(err, &rejection), "expected *Rejection, got %v", err)
	assert.Equal(t, status, rejection.Status)
	assert.Equal(t, code, rejection.Code)
}

func TestPayByLinkService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success: stores a pending link", func(t *testing.T) {
		s, mockLogger := newTestService(t)

		mockLogger.EXPECT().Info(gomock.Any(), gomock.Any())

		res, err := s.Create(ctx, validBody())

		require.NoError(t, err)
		assert.Equal(t, constant.TransactionStatusSuccess, res.TransactionStatus)
		assert.Equal(t, constant.LinkStatusPending, res.Status)
		assert.NotEmpty(t, res.TransactionID)
		assert.Equal(t, "https://sandbox.test/link/"+res.TransactionID, res.RedirectURL)

		link, err := s.Get(ctx, res.TransactionID)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2030, time.January, 2, 0, 0, 0, 0, time.UTC), link.ExpirationDate)
		assert.Equal(t, fixedNow, link.CreatedAt)
	})

	tests := []struct {
		name   string
		mutate func(*dto.PayByLinkBody)
		status int
		code   string
	}{
		{
			name:   "error: unsupported currency",
			mutate: func(b *dto.PayByLinkBody) { b.Payment.Amount.Currency = "USD" },
			status: http.StatusBadRequest,
			code:   CodeInvalidCurrency,
		},
		{
			name:   "error: non positive amount",
			mutate: func(b *dto.PayByLinkBody) { b.Payment.Amount.Value = 0 },
			status: http.StatusBadRequest,
			code:   CodeInvalidAmount,
		},
		{
			name:   "error: unsupported language",
			mutate: func(b *dto.PayByLinkBody) { b.Payment.Lang = "NL" },
			status: http.StatusBadRequest,
			code:   CodeInvalidLanguage,
		},
		{
			name:   "error: malformed expiration date",
			mutate: func(b *dto.PayByLinkBody) { b.Payment.ExpirationDate = "2030-01-02T00:00:00Z" },
			status: http.StatusBadRequest,
			code:   CodeInvalidExpirationDate,
		},
		{
			name:   "error: expiration date in the past",
			mutate: func(b *dto.PayByLinkBody) { b.Payment.ExpirationDate = "2029-12-31 23:59:59" },
			status: http.StatusBadRequest,
			code:   CodeInvalidExpirationDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mockLogger := newTestService(t)

			mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any())

			body := validBody()
			tt.mutate(&body)

			_, err := s.Create(ctx, body)

			assertRejection(t, err, tt.status, tt.code)
		})
	}

	t.Run("error: duplicated pending link", func(t *testing.T) {
		s, mockLogger := newTestService(t)

		mockLogger.EXPECT().Info(gomock.Any(), gomock.Any())
		mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any())

		_, err := s.Create(ctx, validBody())
		require.NoError(t, err)

		_, err = s.Create(ctx, validBody())

		assertRejection(t, err, http.StatusConflict, CodeDuplicatedPayment)
	})

	t.Run("success: same payment after expiry", func(t *testing.T) {
		s, mockLogger := newTestService(t)

		mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).Times(3)

		first, err := s.Create(ctx, validBody())
		require.NoError(t, err)

		s.now = func() time.Time { return fixedNow.Add(24 * time.Hour) }

		expired, err := s.ExpireOldLinks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, expired)

		s.now = func() time.Time { return fixedNow }

		second, err := s.Create(ctx, validBody())

		require.NoError(t, err)
		assert.NotEqual(t, first.TransactionID, second.TransactionID)
	})
}

func TestPayByLinkService_Get(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Get(context.Background(), "missing")

	assertRejection(t, err, http.StatusNotFound, CodeNotFound)
}

func TestPayByLinkService_ExpireOldLinks(t *testing.T) {
	ctx := context.Background()

	t.Run("success: nothing to expire", func(t *testing.T) {
		s, _ := newTestService(t)

		expired, err := s.ExpireOldLinks(ctx)

		require.NoError(t, err)
		assert.Zero(t, expired)
	})

	t.Run("success: expires only links past their date", func(t *testing.T) {
		s, mockLogger := newTestService(t)

		mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).Times(3)

		soon, err := s.Create(ctx, validBody())
		require.NoError(t, err)

		later := validBody()
		later.Payment.ExpirationDate = "2030-02-01 00:00:00"

		kept, err := s.Create(ctx, later)
		require.NoError(t, err)

		s.now = func() time.Time { return fixedNow.Add(48 * time.Hour) }

		expired, err := s.ExpireOldLinks(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, expired)

		link, err := s.Get(ctx, soon.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, constant.LinkStatusExpired, link.Status)

		link, err = s.Get(ctx, kept.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, constant.LinkStatusPending, link.Status)
	})
}

func TestPayByLinkService_Location(t *testing.T) {
	lisbon, err := time.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	t.Run("success: wire dates are read in the configured location", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockLogger := log.NewMockInterface(ctrl)

		mockLogger.EXPECT().Info(gomock.Any(), gomock.Any())

		s, ok := New(Config{Location: lisbon}, mockLogger).(*payByLinkService)
		require.True(t, ok)

		s.now = func() time.Time { return fixedNow }

		body := validBody()
		body.Payment.ExpirationDate = "2030-07-01 12:00:00"

		res, err := s.Create(context.Background(), body)
		require.NoError(t, err)

		link, err := s.Get(context.Background(), res.TransactionID)

		require.NoError(t, err)
		assert.Equal(t, lisbon, link.ExpirationDate.Location())
		assert.Equal(t, time.Date(2030, time.July, 1, 11, 0, 0, 0, time.UTC), link.ExpirationDate.UTC())
	})

	t.Run("success: nil location is UTC", func(t *testing.T) {
		s, ok := New(Config{}, nil).(*payByLinkService)
		require.True(t, ok)

		assert.Equal(t, time.UTC, s.location)
		assert.Equal(t, time.UTC, s.now().Location())
	})
}
