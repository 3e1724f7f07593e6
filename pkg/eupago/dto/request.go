package dto

import (
	"time"

	"github.com/savioruz/eupago/pkg/constant"
)

type Amount struct {
	Currency constant.Currency `json:"currency" validate:"required,currency" example:"EUR"`
	Value    float64           `json:"value" example:"10.5"`
}

type Payment struct {
	SuccessURL     string            `json:"successUrl,omitempty" validate:"omitempty,url" example:"https://shop.example.com/success"`
	FailURL        string            `json:"failUrl,omitempty" validate:"omitempty,url" example:"https://shop.example.com/fail"`
	BackURL        string            `json:"backUrl,omitempty" validate:"omitempty,url" example:"https://shop.example.com/back"`
	Amount         Amount            `json:"amount"`
	Lang           constant.Language `json:"lang" validate:"required,lang" example:"PT"`
	ExpirationDate time.Time         `json:"expirationDate" validate:"required"`
}

type Product struct {
	SKU         string   `json:"sku,omitempty"`
	Name        string   `json:"name" validate:"required"`
	Value       float64  `json:"value"`
	Quantity    int      `json:"quantity" validate:"gt=0"`
	Tax         *float64 `json:"tax,omitempty" validate:"omitempty,gte=0"`
	Description string   `json:"description,omitempty"`
}

type Customer struct {
	Notify *bool  `json:"notify,omitempty"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Name   string `json:"name" validate:"required"`
}

type PayByLinkRequest struct {
	Payment  Payment   `json:"payment"`
	Products []Product `json:"products,omitempty" validate:"omitempty,min=1,dive"`
	Customer *Customer `json:"customer,omitempty" validate:"omitempty"`
}

// ApplyDefaults sets customer.notify to false when absent. The customer block
// is copied so the caller's value is left untouched.
func (r *PayByLinkRequest) ApplyDefaults() {
	if r.Customer == nil || r.Customer.Notify != nil {
		return
	}

	customer := *r.Customer
	notify := false
	customer.Notify = &notify
	r.Customer = &customer
}

// PaymentBody is the wire form of Payment.
type PaymentBody struct {
	SuccessURL     string            `json:"successUrl,omitempty"`
	FailURL        string            `json:"failUrl,omitempty"`
	BackURL        string            `json:"backUrl,omitempty"`
	Amount         Amount            `json:"amount"`
	Lang           constant.Language `json:"lang"`
	ExpirationDate string            `json:"expirationDate"`
}

// PayByLinkBody is the JSON body posted to the create endpoint.
type PayByLinkBody struct {
	Payment  PaymentBody `json:"payment"`
	Products []Product   `json:"products,omitempty"`
	Customer *Customer   `json:"customer,omitempty"`
}

// SerializePayByLinkRequest converts a validated request to its wire body,
// formatting the expiration date in its own location.
func SerializePayByLinkRequest(r PayByLinkRequest) PayByLinkBody {
	return PayByLinkBody{
		Payment: PaymentBody{
			SuccessURL:     r.Payment.SuccessURL,
			FailURL:        r.Payment.FailURL,
			BackURL:        r.Payment.BackURL,
			Amount:         r.Payment.Amount,
			Lang:           r.Payment.Lang,
			ExpirationDate: r.Payment.ExpirationDate.Format(constant.TimestampFormat),
		},
		Products: r.Products,
		Customer: r.Customer,
	}
}
