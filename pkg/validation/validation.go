package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/failure"
	"github.com/savioruz/eupago/pkg/logger"
)

// RootKey is the data key used for violations that have no field path.
const RootKey = "root"

// Defaulter is implemented by values that fill absent optional fields before validation.
type Defaulter interface {
	ApplyDefaults()
}

// Validator checks values against their `validate` struct tags and turns every
// violation into a failure.KindValidation error.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
	logger   logger.Interface
}

func New(l logger.Interface) *Validator {
	if l == nil {
		l = logger.Nop()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		l.Warn("validation - New - register translations: %v", err)
	}

	v := &Validator{
		validate: validate,
		trans:    trans,
		logger:   l,
	}

	v.registerEnum("currency", func(s string) bool { return constant.Currency(s).Valid() }, joinEnum(constant.Currencies))
	v.registerEnum("lang", func(s string) bool { return constant.Language(s).Valid() }, joinEnum(constant.Languages))

	return v
}

func (v *Validator) registerEnum(tag string, valid func(string) bool, allowed string) {
	if err := v.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}); err != nil {
		v.logger.Warn("validation - registerEnum - %s: %v", tag, err)

		return
	}

	err := v.validate.RegisterTranslation(tag, v.trans,
		func(t ut.Translator) error {
			return t.Add(tag, "{0} must be one of [{1}]", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field(), allowed)
			if err != nil {
				return fe.Error()
			}

			return msg
		},
	)
	if err != nil {
		v.logger.Warn("validation - registerEnum - translation %s: %v", tag, err)
	}
}

// Struct applies defaults to a copy of input and validates it. The returned
// value is the defaulted copy.
func Struct[T any](v *Validator, input T, contextMessage ...string) (T, error) {
	out := input
	if d, ok := any(&out).(Defaulter); ok {
		d.ApplyDefaults()
	}

	if err := v.validate.Struct(out); err != nil {
		var zero T

		return zero, v.fail(err, contextMessage)
	}

	return out, nil
}

// Decode unmarshals raw JSON into T and validates the result. Decoding errors
// are reported as violations of the offending field, or of the root.
func Decode[T any](v *Validator, raw []byte, contextMessage ...string) (T, error) {
	var out T

	if err := json.Unmarshal(raw, &out); err != nil {
		f := failure.Validation(message(contextMessage))

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			f.WithData(fieldKey(typeErr.Field), fmt.Sprintf("Expected %s, received %s", typeErr.Type, typeErr.Value))
		} else {
			f.WithData(RootKey, err.Error())
		}

		var zero T

		return zero, v.report(f)
	}

	return Struct(v, out, contextMessage...)
}

// Var validates a single value against tag. Violations are keyed under RootKey.
func (v *Validator) Var(value any, tag string, contextMessage ...string) error {
	if err := v.validate.Var(value, tag); err != nil {
		return v.fail(err, contextMessage)
	}

	return nil
}

func (v *Validator) fail(err error, contextMessage []string) error {
	f := failure.Validation(message(contextMessage))

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, fe := range errs {
			f.WithData(namespaceKey(fe.Namespace()), strings.TrimSpace(fe.Translate(v.trans)))
		}
	} else {
		f.WithData(RootKey, err.Error())
	}

	return v.report(f)
}

func (v *Validator) report(f *failure.Failure) error {
	v.logger.Error(f.String())

	return f
}

func message(contextMessage []string) string {
	if len(contextMessage) == 0 {
		return ""
	}

	return contextMessage[0]
}

// namespaceKey drops the root type name from a validator namespace and turns
// index brackets into path segments: "Req.items[0].name" becomes "items.0.name".
func namespaceKey(ns string) string {
	i := strings.IndexByte(ns, '.')
	if i < 0 {
		return RootKey
	}

	return fieldKey(ns[i+1:])
}

func fieldKey(path string) string {
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)
	path = strings.Trim(path, ".")

	if path == "" {
		return RootKey
	}

	return path
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	return name
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}

	return strings.Join(parts, " ")
}
