// Package validate binds request data into a typed struct, checks it with
// go-playground/validator and hands the result to the next handler through
// the request context.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Source int

const (
	Body Source = iota
	Query
	Params
)

func (s Source) String() string {
	switch s {
	case Query:
		return "query"
	case Params:
		return "params"
	default:
		return "body"
	}
}

type Detail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []Detail `json:"details"`
}

type ctxKey[T any] struct{}

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}

		return name
	})

	return v
}

// Request decodes the given source into a T and validates it. Invalid input
// is answered with 400 and the details per field; valid input is stored in
// the context for From.
func Request[T any](source Source) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var v T

			if details := bind(r, source, &v); len(details) > 0 {
				writeError(w, details)
				return
			}

			if err := engine.Struct(&v); err != nil {
				writeError(w, Details(err))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey[T]{}, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// From returns the value stored by Request[T].
func From[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKey[T]{}).(T)
	return v, ok
}

// Struct validates v outside of a request.
func Struct(v any) error {
	return engine.Struct(v)
}

// Details converts a validation error into per-field messages.
func Details(err error) []Detail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Detail{{Field: "", Message: err.Error()}}
	}

	details := make([]Detail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, Detail{
			Field:   fieldPath(e),
			Message: message(e),
		})
	}

	return details
}

// fieldPath drops the root struct name from the namespace, so nested fields
// read as items[0].quantity.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return e.Field()
}

func writeError(w http.ResponseWriter, details []Detail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   "Request validation failed",
		Details: details,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func bind(r *http.Request, source Source, dst any) []Detail {
	switch source {
	case Query:
		q := r.URL.Query()
		return bindValues(dst, func(name string) string { return q.Get(name) })
	case Params:
		return bindValues(dst, func(name string) string { return chi.URLParam(r, name) })
	}

	if r.Body == nil || r.Body == http.NoBody {
		return []Detail{{Field: "body", Message: "Request body is required"}}
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return []Detail{{Field: "body", Message: "Invalid JSON: " + err.Error()}}
	}

	return nil
}

// bindValues fills the form-tagged fields of the struct dst points to.
// Empty values leave the field at its zero value.
func bindValues(dst any, lookup func(string) string) []Detail {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()

	var details []Detail

	for i := range rt.NumField() {
		name := strings.SplitN(rt.Field(i).Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}

		raw := strings.TrimSpace(lookup(name))
		if raw == "" {
			continue
		}

		if msg := setValue(rv.Field(i), raw); msg != "" {
			details = append(details, Detail{Field: name, Message: msg})
		}
	}

	return details
}

// setValue parses raw into f and returns a message when it cannot.
func setValue(f reflect.Value, raw string) string {
	if f.Kind() == reflect.Ptr {
		elem := reflect.New(f.Type().Elem())
		if msg := setValue(elem.Elem(), raw); msg != "" {
			return msg
		}

		f.Set(elem)

		return ""
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "Must be an integer"
		}

		f.SetInt(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil {
			return "Must be a number"
		}

		f.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "Must be true or false"
		}

		f.SetBool(b)
	default:
		return "Unsupported field type " + f.Kind().String()
	}

	return ""
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}

		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}

		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}
