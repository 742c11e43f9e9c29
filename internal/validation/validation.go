package validation

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/tgtpos/receipt-service/pkg/apperror"
)

// New returns a configured validator for request payloads. Field names in
// error output use the json tag so clients see wire names, not Go names.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindAndValidate binds the JSON body into out and runs struct validation.
// On failure it returns a ValidationError describing the offending fields;
// the caller is responsible for writing the response.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return apperror.NewValidationError("Invalid receipt data")
	}
	if err := v.Struct(out); err != nil {
		return apperror.NewValidationError(describe(err))
	}
	return nil
}

func describe(err error) string {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return "Invalid receipt data"
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field())
	}
	return "Invalid receipt data: missing or invalid " + strings.Join(fields, ", ")
}
