package dto

type PayByLinkResponse struct {
	TransactionStatus string `json:"transactionStatus" validate:"required"`
	TransactionID     string `json:"transactionID" validate:"required"`
	Status            string `json:"status" validate:"required"`
	RedirectURL       string `json:"redirectUrl" validate:"required,url"`
}

// PayByLinkErrorResponse is the body EuPago returns with 400 and 409.
type PayByLinkErrorResponse struct {
	TransactionStatus string `json:"transactionStatus" validate:"required"`
	Code              string `json:"code" validate:"required"`
	Text              string `json:"text"`
}
