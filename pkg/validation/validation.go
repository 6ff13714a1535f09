// Package validation checks `validate` struct tags and turns the first
// failure into a client-facing entities.ValidationError.
//
// Messages are built from the failed tag and the field's `label` tag (the Go
// field name when absent). A `msg` tag replaces the message for every check
// except the presence checks (required, notblank).
package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Uvais-khan078/village360/entities"
)

var std = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// numeric tags (gte, lte, ...) compare decimals by value
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Struct validates s, which must be a struct or a pointer to one.
func Struct(s any) error {
	err := std.Struct(s)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) || len(fes) == 0 {
		return err
	}
	fe := fes[0]
	sf, _ := lookup(reflect.TypeOf(s), fe.StructNamespace())
	return &entities.ValidationError{Message: message(fe, sf)}
}

// Var validates a single value against tag.
func Var(v any, tag string) bool { return std.Var(v, tag) == nil }

// lookup resolves "Type.Embedded.Field" back to the struct field.
func lookup(t reflect.Type, ns string) (reflect.StructField, bool) {
	var sf reflect.StructField
	parts := strings.Split(ns, ".")
	for _, name := range parts[1:] {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}
		f, ok := t.FieldByName(name)
		if !ok {
			return reflect.StructField{}, false
		}
		sf, t = f, f.Type
	}
	return sf, len(parts) > 1
}

func message(fe validator.FieldError, sf reflect.StructField) string {
	tag := fe.Tag()
	presence := tag == "required" || tag == "notblank"
	if m := sf.Tag.Get("msg"); m != "" && !presence {
		return m
	}
	label := sf.Tag.Get("label")
	if label == "" {
		label = fe.StructField()
	}

	var b strings.Builder
	switch tag {
	case "required", "notblank":
		b.WriteString(label + " is required")
	case "min", "gte":
		if tag == "gte" && fe.Param() == "0" {
			b.WriteString(label + " cannot be negative")
		} else if fe.Kind() == reflect.String {
			b.WriteString(label + " must be at least " + fe.Param() + " characters")
		} else {
			b.WriteString(label + " must be at least " + fe.Param())
		}
	case "max", "lte":
		if fe.Kind() == reflect.String {
			b.WriteString(label + " must be at most " + fe.Param() + " characters")
		} else {
			b.WriteString(label + " must be at most " + fe.Param())
		}
	case "oneof":
		b.WriteString("Invalid " + strings.ToLower(label))
	case "email":
		b.WriteString("Invalid email address")
	case "eqfield":
		b.WriteString(label + " must match " + fe.Param())
	default:
		b.WriteString(label + " is invalid")
	}
	return capitalize(b.String())
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
