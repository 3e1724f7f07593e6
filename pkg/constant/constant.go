package constant

import "time"

const (
	SandboxURL    = "https://sandbox.eupago.pt/api"
	ProductionURL = "https://clientes.eupago.pt/api"

	PathPayByLinkCreate = "v1.02/paybylink/create"
	PathPayByLinkShow   = "paybylink"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"

	AuthorizationScheme = "ApiKey"
	MIMEApplicationJSON = "application/json"
)

const (
	DefaultTimeout = 5 * time.Second

	// TimestampFormat is the wire layout of expirationDate (yyyy-MM-dd HH:mm:ss).
	TimestampFormat = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
)

const (
	TransactionStatusSuccess  = "Success"
	TransactionStatusRejected = "Rejected"

	LinkStatusPending = "pending"
	LinkStatusExpired = "expired"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
)

var Currencies = []Currency{CurrencyEUR}

func (c Currency) Valid() bool {
	for _, v := range Currencies {
		if v == c {
			return true
		}
	}

	return false
}

type Language string

const (
	LanguagePT Language = "PT"
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
	LanguageFR Language = "FR"
	LanguageDE Language = "DE"
	LanguageIT Language = "IT"
)

var Languages = []Language{LanguagePT, LanguageEN, LanguageES, LanguageFR, LanguageDE, LanguageIT}

func (l Language) Valid() bool {
	for _, v := range Languages {
		if v == l {
			return true
		}
	}

	return false
}
