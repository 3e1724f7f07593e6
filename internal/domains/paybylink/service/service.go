package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/eupago/dto"
	"github.com/savioruz/eupago/pkg/helper"
	"github.com/savioruz/eupago/pkg/logger"
	"github.com/valyala/fasthttp"
)

const (
	identifier = "service - paybylink - %s"

	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInvalidAmount         = "INVALID_AMOUNT"
	CodeInvalidCurrency       = "INVALID_CURRENCY"
	CodeInvalidLanguage       = "INVALID_LANGUAGE"
	CodeInvalidExpirationDate = "INVALID_EXPIRATION_DATE"
	CodeDuplicatedPayment     = "DUPLICATED_PAYMENT"
	CodeNotFound              = "NOT_FOUND"
)

// Rejection is a gateway refusal rendered as an EuPago error body.
type Rejection struct {
	Status int
	Code   string
	Text   string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%d %s: %s", r.Status, r.Code, r.Text)
}

func reject(status int, code, text string) error {
	return &Rejection{Status: status, Code: code, Text: text}
}

// Link is a pay by link created in the sandbox.
type Link struct {
	TransactionID  string            `json:"transactionID"`
	Status         string            `json:"status"`
	RedirectURL    string            `json:"redirectUrl"`
	ExpirationDate time.Time         `json:"expirationDate"`
	Request        dto.PayByLinkBody `json:"request"`
	CreatedAt      time.Time         `json:"createdAt"`

	key string
}

type PayByLinkService interface {
	Create(ctx context.Context, req dto.PayByLinkBody) (dto.PayByLinkResponse, error)
	Get(ctx context.Context, id string) (Link, error)
	ExpireOldLinks(ctx context.Context) (int, error)
}

// Config holds the sandbox settings. Location is the zone zoneless wire dates
// are read in; nil means UTC.
type Config struct {
	RedirectBaseURL string
	Location        *time.Location
}

type payByLinkService struct {
	cfg      Config
	logger   logger.Interface
	location *time.Location
	now      func() time.Time

	mu    sync.RWMutex
	links map[string]*Link
}

func New(cfg Config, l logger.Interface) PayByLinkService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &payByLinkService{
		cfg:      cfg,
		logger:   l,
		location: loc,
		now: func() time.Time {
			return time.Now().In(loc)
		},
		links: map[string]*Link{},
	}
}

func (s *payByLinkService) Create(_ context.Context, req dto.PayByLinkBody) (res dto.PayByLinkResponse, err error) {
	expiration, err := s.check(req)
	if err != nil {
		s.logger.Warn(identifier, "Create - rejected: "+err.Error())

		return res, err
	}

	key := linkKey(req)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.links {
		if l.key == key && l.Status == constant.LinkStatusPending {
			s.logger.Warn(identifier, "Create - duplicated pending link "+l.TransactionID)

			return res, reject(fasthttp.StatusConflict, CodeDuplicatedPayment, "a pending link with the same payment already exists")
		}
	}

	id := uuid.NewString()
	link := &Link{
		TransactionID:  id,
		Status:         constant.LinkStatusPending,
		RedirectURL:    strings.TrimRight(s.cfg.RedirectBaseURL, "/") + "/" + id,
		ExpirationDate: expiration,
		Request:        req,
		CreatedAt:      s.now(),
		key:            key,
	}
	s.links[id] = link

	s.logger.Info(identifier, "Create - link "+id+" created")

	return dto.PayByLinkResponse{
		TransactionStatus: constant.TransactionStatusSuccess,
		TransactionID:     link.TransactionID,
		Status:            link.Status,
		RedirectURL:       link.RedirectURL,
	}, nil
}

func (s *payByLinkService) check(req dto.PayByLinkBody) (time.Time, error) {
	p := req.Payment

	if !p.Amount.Currency.Valid() {
		return time.Time{}, reject(fasthttp.StatusBadRequest, CodeInvalidCurrency, "unsupported currency "+strconv.Quote(string(p.Amount.Currency)))
	}

	if p.Amount.Value <= 0 {
		return time.Time{}, reject(fasthttp.StatusBadRequest, CodeInvalidAmount, "amount must be greater than zero")
	}

	if !p.Lang.Valid() {
		return time.Time{}, reject(fasthttp.StatusBadRequest, CodeInvalidLanguage, "unsupported language "+strconv.Quote(string(p.Lang)))
	}

	expiration, err := time.ParseInLocation(constant.TimestampFormat, p.ExpirationDate, s.location)
	if err != nil {
		return time.Time{}, reject(fasthttp.StatusBadRequest, CodeInvalidExpirationDate, "expirationDate must use the format yyyy-MM-dd HH:mm:ss")
	}

	if !expiration.After(s.now()) {
		return time.Time{}, reject(fasthttp.StatusBadRequest, CodeInvalidExpirationDate, "expirationDate must be in the future")
	}

	return expiration, nil
}

func (s *payByLinkService) Get(_ context.Context, id string) (Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[id]
	if !ok {
		return Link{}, reject(fasthttp.StatusNotFound, CodeNotFound, "link "+id+" not found")
	}

	return *link, nil
}

// ExpireOldLinks marks pending links past their expiration date as expired.
func (s *payByLinkService) ExpireOldLinks(_ context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0

	for _, l := range s.links {
		if l.Status == constant.LinkStatusPending && !l.ExpirationDate.After(now) {
			l.Status = constant.LinkStatusExpired
			expired++
		}
	}

	if expired > 0 {
		s.logger.Info(identifier, fmt.Sprintf("ExpireOldLinks - %d links expired", expired))
	}

	return expired, nil
}

func linkKey(req dto.PayByLinkBody) string {
	return helper.GenerateUniqueKey(map[string]string{
		"successUrl":     req.Payment.SuccessURL,
		"currency":       string(req.Payment.Amount.Currency),
		"value":          strconv.FormatFloat(req.Payment.Amount.Value, 'f', -1, 64),
		"expirationDate": req.Payment.ExpirationDate,
	})
}
