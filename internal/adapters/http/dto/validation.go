package dto

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// jsonTagParts splits a json tag into the name and its options.
const jsonTagParts = 2

// Request errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrBinding    = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared request validator. Field errors are reported
// under their json names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", jsonTagParts)[0]
			if name == "-" || name == "" {
				return strings.SplitN(fld.Tag.Get("form"), ",", jsonTagParts)[0]
			}

			return name
		})
	})

	return validate
}

// Validate checks the validate tags of v.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// RespondWithRequestError writes the 422 response for a binding or
// validation failure returned by BindAndValidate. A body cut off by the
// server's size limit answers 413 instead.
func RespondWithRequestError(c *gin.Context, err error) {
	var (
		resp     *ErrorResponse
		tooLarge *http.MaxBytesError
	)

	if errors.As(err, &tooLarge) {
		resp = NewErrorResponse(ErrorCodeTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		c.JSON(http.StatusRequestEntityTooLarge, resp.WithTraceID(GetTraceID(c)))

		return
	}

	if fields := ValidationErrors(err); len(fields) > 0 {
		resp = NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", fields)
	} else {
		resp = NewErrorResponse(ErrorCodeValidation, "malformed request body")
	}

	c.JSON(http.StatusUnprocessableEntity, resp.WithTraceID(GetTraceID(c)))
}

// ValidationErrors maps each failing field to a readable message.
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

var validationMessages = map[string]string{
	"required": "this field is required",
	"gte":      "must be greater than or equal to {param}",
	"lte":      "must be less than or equal to {param}",
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "failed validation: " + fe.Tag()
}
