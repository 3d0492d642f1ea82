package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// decodeAndValidate decodes a JSON request body into dst and runs its
// validate tags, translating the first failure into a field-level 400.
func decodeAndValidate(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	if err := getValidator().Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return errs.NewInternalErrorWithCause("validation setup failed", err)
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			field := jsonFieldName(fe)
			if fe.Tag() == "required" {
				return errs.NewMissingRequiredFieldError(field)
			}
			return errs.NewInvalidFieldError(field, validationReason(fe))
		}
		return errs.NewBadRequestError("invalid request body")
	}
	return nil
}

// jsonFieldName lower-cases the leading struct field segment so error
// detail matches the wire naming rather than the Go naming.
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "body"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "failed '" + fe.Tag() + "' validation"
	}
}
