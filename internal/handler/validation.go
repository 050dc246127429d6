package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// gstinPattern is the 15-character GSTIN: state code, PAN, entity number, Z, checksum.
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	ifscPattern  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request types.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
			return validGSTIN(fl.Field().String())
		}); err != nil {
			return
		}
		err = v.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
			return ifscPattern.MatchString(fl.Field().String())
		})
	})
	return err
}

// validGSTIN checks the format and that the leading state code is 01-38.
func validGSTIN(s string) bool {
	if !gstinPattern.MatchString(s) {
		return false
	}
	code, err := strconv.Atoi(s[:2])
	return err == nil && code >= 1 && code <= 38
}

// bindingMessage turns a binding error into a message naming the failing fields.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "request body is not valid JSON for this endpoint"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		parts = append(parts, fmt.Sprintf("%s failed %q", field, fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
