package middleware

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupValidatorOnce sync.Once

// SetupValidator configures gin's binding validator: error messages use
// json/form tag names, and the filterdate tag accepts the date formats
// the list-view filter params take (YYYY-MM-DD or MM-DD).
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("filterdate", validFilterDate)
	})
}

func validFilterDate(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	for _, layout := range []string{"2006-01-02", "01-02"} {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}
