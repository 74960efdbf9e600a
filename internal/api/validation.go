package api

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"pitchlink/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// RegisterValidators installs the custom tags and makes field errors report json names.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	return v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return datePattern.MatchString(fl.Field().String())
	})
}

// RegisterGinValidators hooks RegisterValidators into gin's default binding engine.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not validator/v10")
	}
	return RegisterValidators(v)
}

// Bind decodes the JSON body into dst. On failure it writes a 400 and returns false.
func Bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Fail(c, BindingError(err))
		return false
	}
	return true
}

// BindingError turns a gin/validator error into an apperr validation error.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation(fe.Field(), fieldMessage(fe))
	}
	return apperr.Validation("body", "Invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "isodate":
		return fe.Field() + " must be in YYYY-MM-DD format"
	default:
		return fe.Field() + " is invalid"
	}
}

// ParamID reads a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperr.Validation(name, "Invalid "+name)
	}
	return id, nil
}
