package failure

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

const DefaultValidationMessage = "Validation failed"

// Kind discriminates the failure variants surfaced by the SDK.
type Kind int

const (
	KindGeneric Kind = iota
	KindBusiness
	KindUnauthorized
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindBusiness:
		return "BusinessException"
	case KindUnauthorized:
		return "UnauthorizedException"
	case KindValidation:
		return "ValidationException"
	default:
		return "GenericException"
	}
}

// Failure is a structured error carrying a human message and an ordered
// multimap of machine readable details.
type Failure struct {
	Kind    Kind
	Message string

	keys  []string
	data  map[string][]string
	cause error
}

func New(kind Kind, message string) *Failure {
	return &Failure{
		Kind:    kind,
		Message: message,
		data:    map[string][]string{},
	}
}

// Generic returns a failure for unclassified or unexpected errors.
func Generic(message string) *Failure {
	return New(KindGeneric, message)
}

// Business returns a failure for a request the remote service rejected for domain reasons.
func Business(message string) *Failure {
	return New(KindBusiness, message)
}

// Unauthorized returns a failure for rejected credentials.
func Unauthorized(message string) *Failure {
	return New(KindUnauthorized, message)
}

// Validation returns a failure for a schema violation. An empty message falls
// back to DefaultValidationMessage.
func Validation(message string) *Failure {
	if message == "" {
		message = DefaultValidationMessage
	}

	return New(KindValidation, message)
}

// WithData appends value to the list stored under key.
func (f *Failure) WithData(key, value string) *Failure {
	if f.data == nil {
		f.data = map[string][]string{}
	}

	if _, ok := f.data[key]; !ok {
		f.keys = append(f.keys, key)
	}

	f.data[key] = append(f.data[key], value)

	return f
}

// WithCause records the underlying error, reachable through errors.Unwrap.
func (f *Failure) WithCause(err error) *Failure {
	f.cause = err

	return f
}

// Keys returns the data keys in first-insertion order.
func (f *Failure) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Values returns a copy of the values stored under key.
func (f *Failure) Values(key string) []string {
	return append([]string(nil), f.data[key]...)
}

// Data returns a copy of the data multimap.
func (f *Failure) Data() map[string][]string {
	out := make(map[string][]string, len(f.keys))
	for _, k := range f.keys {
		out[k] = f.Values(k)
	}

	return out
}

func (f *Failure) HasData() bool {
	return len(f.keys) > 0
}

// Error returns the kind and message.
func (f *Failure) Error() string {
	return f.Kind.String() + ": " + f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// String renders the kind, the message and, when present, every data entry.
func (f *Failure) String() string {
	if len(f.keys) == 0 {
		return f.Error()
	}

	var b strings.Builder

	b.WriteString(f.Error())
	b.WriteString("\nData:")

	for _, k := range f.keys {
		b.WriteString("\n  ")
		b.WriteString(k)
		b.WriteString(" = [")

		for i, v := range f.data[k] {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(quote(v))
		}

		b.WriteString("]")
	}

	return b.String()
}

func (f *Failure) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"name":`)
	buf.WriteString(quote(f.Kind.String()))
	buf.WriteString(`,"message":`)
	buf.WriteString(quote(f.Message))
	buf.WriteString(`,"data":{`)

	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		values, err := json.Marshal(f.data[k])
		if err != nil {
			return nil, err
		}

		buf.WriteString(quote(k))
		buf.WriteByte(':')
		buf.Write(values)
	}

	buf.WriteString("}}")

	return buf.Bytes(), nil
}

func quote(s string) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return `""`
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// As returns the Failure in err's chain, if any.
func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}

	return nil, false
}

// GetKind returns the kind of an error, KindGeneric when err is not a Failure.
func GetKind(err error) Kind {
	if f, ok := As(err); ok {
		return f.Kind
	}

	return KindGeneric
}

// Is reports whether err is a Failure of the given kind.
func Is(err error, kind Kind) bool {
	f, ok := As(err)

	return ok && f.Kind == kind
}
