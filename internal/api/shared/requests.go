package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxRequestBodySize caps request bodies at 1 MiB.
const maxRequestBodySize = 1 << 20

// ErrEmptyRequestBody is returned when a request that requires a body
// arrives without one.
var ErrEmptyRequestBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into dst, enforcing a size limit and
// rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyRequestBody
		}
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// Validate checks the struct's validation tags and returns every violation
// as one field-level error, so the client sees all failing fields at once.
func Validate(v *validator.Validate, req any) error {
	if err := v.Struct(req); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) && len(valErrs) > 0 {
			messages := make([]string, 0, len(valErrs))
			for _, fe := range valErrs {
				messages = append(messages,
					fmt.Sprintf("field %s failed validation on %s", fe.Field(), fe.Tag()))
			}
			return errors.New(strings.Join(messages, "; "))
		}
		return err
	}
	return nil
}
