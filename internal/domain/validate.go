package domain

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire name so clients see "fullName", not "FullName".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("bannerurl", bannerURL); err != nil {
		panic(err)
	}
	return v
}

// bannerURL accepts blank, a site-relative path such as /media/banners/x.png,
// or an absolute http(s) URL.
func bannerURL(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if strings.HasPrefix(s, "/") {
		return !strings.HasPrefix(s, "//") && u.Host == ""
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate checks struct tags and returns the first failure as a *ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return NewValidationError(fe.Field(), describeTag(fe))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "url", "bannerurl":
		return "enter a valid URL"
	case "datetime":
		return "expected format " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
