package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"cottoncare/internal/domain"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		must(v.RegisterValidation("zip", stringRule(Zip)))
		must(v.RegisterValidation("phone", stringRule(Phone)))
		must(v.RegisterValidation("cardnum", stringRule(Card)))
		must(v.RegisterValidation("expiry", stringRule(Expiry)))
		must(v.RegisterValidation("cvc", stringRule(CVC)))
		must(v.RegisterValidation("disease", func(fl validator.FieldLevel) bool {
			return domain.Disease(fl.Field().String()).Valid()
		}))
	})
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func stringRule(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool { return fn(fl.Field().String()) }
}

// FieldErrors maps a JSON field path to a human message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Struct runs the validate tags of s. It returns nil or a FieldErrors.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the top-level struct name: "CheckoutInput.shipping.city" -> "shipping.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "does not match"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "zip":
		return "must be a valid ZIP code"
	case "phone":
		return "must be a valid phone number"
	case "cardnum":
		return "must be 13 to 19 digits"
	case "expiry":
		return "must be MM/YY or MM/YYYY"
	case "cvc":
		return "must be 3 or 4 digits"
	case "disease":
		return "is not a known disease label"
	case "url":
		return "must be a URL"
	}
	return "is invalid"
}
