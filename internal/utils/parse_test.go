package utils

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntOrZero(t *testing.T) {
	cases := map[string]int64{
		"42":     42,
		"  7 ":   7,
		"-3":     -3,
		"":       0,
		"12k":    0,
		"12.5":   0,
		"ninety": 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, IntOrZero(in), "input %q", in)
	}
	assert.Equal(t, int64(-1), IntOr("x", -1))
}

func TestFormInt_NeverFails(t *testing.T) {
	var body struct {
		Mileage  FormInt `json:"mileage"`
		Duration FormInt `json:"duration"`
		Customer FormInt `json:"customer_id"`
		Missing  FormInt `json:"missing"`
	}
	err := json.Unmarshal([]byte(`{"mileage":"15000","duration":"two","customer_id":3,"missing":null}`), &body)
	require.NoError(t, err)

	assert.Equal(t, int64(15000), body.Mileage.Int64())
	assert.Equal(t, int64(0), body.Duration.Int64())
	assert.Equal(t, int64(3), body.Customer.Int64())
	assert.Equal(t, int64(0), body.Missing.Int64())

	var f FormInt
	require.NoError(t, f.UnmarshalParam("oops"))
	assert.Equal(t, int64(0), f.Int64())
}

func TestFormText(t *testing.T) {
	var body struct {
		Salary FormText `json:"salary"`
		Price  FormText `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"salary":1500.50,"price":" 12.00 "}`), &body))
	assert.Equal(t, "1500.50", body.Salary.String())
	assert.Equal(t, "12.00", body.Price.String())
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal(" 10.25 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("10.25")))

	_, err = ParseDecimal("")
	assert.ErrorIs(t, err, ErrInvalidDecimal)
	_, err = ParseDecimal("ten")
	assert.ErrorIs(t, err, ErrInvalidDecimal)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", "admin", 5)
	require.NoError(t, err)

	sub, err := ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)

	_, err = ParseAccessToken("other", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewAccessToken("secret", "admin", -1)
	require.NoError(t, err)
	_, err = ParseAccessToken("secret", expired.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
