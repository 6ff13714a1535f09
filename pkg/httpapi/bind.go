package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/pkg/validation"
)

const maxBodyBytes = 1 << 20

// StrictBinder decodes JSON bodies and rejects unknown fields, so a typo in a
// request never silently drops data.
type StrictBinder struct{}

func (StrictBinder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if ct := req.Header.Get(echo.HeaderContentType); ct != "" && !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Content-Type must be application/json")
	}
	dec := json.NewDecoder(io.LimitReader(req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return echo.NewHTTPError(http.StatusBadRequest, "Request body required")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body must contain a single JSON object")
	}
	return nil
}

// Validator checks `validate` struct tags, then the DTO's own Validate
// method for rules that span fields.
type Validator struct{}

func (Validator) Validate(i interface{}) error {
	if err := validation.Struct(i); err != nil {
		return Fail(err)
	}
	if v, ok := i.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return Fail(err)
		}
	}
	return nil
}

// BindValid binds the body into dst and validates it.
func BindValid(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
