package services

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// decimalPattern is plain decimal notation: optional sign, digits, optional fraction.
var decimalPattern = regexp.MustCompile(`^[+-]?([0-9]*\.)?[0-9]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("jsonnumber", func(fl validator.FieldLevel) bool {
		raw, ok := fl.Field().Interface().(json.RawMessage)
		if !ok {
			return false
		}
		_, ok = ParseNumber(raw)
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

// ParseNumber accepts a JSON number or a string holding a decimal number.
// NaN, infinities and hex notation are rejected.
func ParseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		v, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = v
	} else {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if !decimalPattern.MatchString(s) {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = v
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// check validates in against its struct tags. messages maps "param" or
// "param.tag" to the text returned to clients.
func check(in any, messages map[string]string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		param := fe.Namespace()
		if i := strings.IndexByte(param, '.'); i >= 0 {
			param = param[i+1:]
		}
		msg, ok := messages[param+"."+fe.Tag()]
		if !ok {
			msg, ok = messages[param]
		}
		if !ok {
			msg = "Invalid value for " + param
		}
		out.Errors = append(out.Errors, FieldError{Msg: msg, Param: param})
	}
	return out
}
