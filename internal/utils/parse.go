package utils

import (
	"encoding/json" // decoding JSON scalars
	"errors"        // sentinel for bad decimals
	"strconv"       // integer parsing
	"strings"       // trimming operator input

	"github.com/shopspring/decimal" // exact money values
)

// Form input arrives as free text typed by the operator.  Integer fields
// follow a lenient parse-or-default policy: anything that is not a plain
// base-10 integer silently becomes the default (zero for every entity form),
// so a typo in "Mileage" stores 0 instead of being rejected.  Decimal fields
// are strict.

// ErrInvalidDecimal is returned by ParseDecimal for input that is not a number.
var ErrInvalidDecimal = errors.New("invalid decimal")

// IntOr parses s as a base-10 integer, returning def on any failure.
func IntOr(s string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// IntOrZero is IntOr with the zero fallback used by the entity forms.
func IntOrZero(s string) int64 { return IntOr(s, 0) }

// ParseDecimal parses a money or salary field.  Empty input is an error.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidDecimal
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidDecimal
	}
	return d, nil
}

// FormInt is an integer form field decoded with the parse-or-default policy.
// It accepts a JSON number, a JSON string or null and never fails to decode.
type FormInt int64

// Int64 returns the coerced value.
func (f FormInt) Int64() int64 { return int64(f) }

// UnmarshalJSON implements json.Unmarshaler.
func (f *FormInt) UnmarshalJSON(b []byte) error {
	*f = FormInt(IntOrZero(rawText(b)))
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query values.
func (f *FormInt) UnmarshalParam(s string) error {
	*f = FormInt(IntOrZero(s))
	return nil
}

// FormText is a text form field.  Numbers are kept verbatim so that a
// client sending {"salary": 1500.50} and {"salary": "1500.50"} is treated
// the same.
type FormText string

// String returns the trimmed text.
func (f FormText) String() string { return strings.TrimSpace(string(f)) }

// UnmarshalJSON implements json.Unmarshaler.
func (f *FormText) UnmarshalJSON(b []byte) error {
	*f = FormText(rawText(b))
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler.
func (f *FormText) UnmarshalParam(s string) error {
	*f = FormText(s)
	return nil
}

// rawText turns a JSON scalar into the text an operator would have typed.
func rawText(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return ""
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return ""
		}
		return str
	}
	return s
}
