package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		input   string
		want    string
		wantErr *errors.Error
	}{
		"zero":         {input: "0", want: "0"},
		"small":        {input: "1234", want: "1234"},
		"max uint128":  {input: "340282366920938463463374607431768211455", want: "340282366920938463463374607431768211455"},
		"over uint128": {input: "340282366920938463463374607431768211456", wantErr: errors.ErrOverflow},
		"empty":        {input: "", wantErr: errors.ErrAmount},
		"negative":     {input: "-1", wantErr: errors.ErrAmount},
		"not a number": {input: "ten", wantErr: errors.ErrAmount},
		"fractional":   {input: "1.5", wantErr: errors.ErrAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a, err := ParseAmount(tc.input)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, a.String())
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	max := MustParseAmount("340282366920938463463374607431768211455")

	sum, err := NewAmount(40).Add(NewAmount(2))
	assert.Nil(t, err)
	assert.Equal(t, "42", sum.String())

	_, err = max.Add(NewAmount(1))
	assert.IsErr(t, errors.ErrOverflow, err)

	diff, err := NewAmount(42).Subtract(NewAmount(42))
	assert.Nil(t, err)
	if !diff.IsZero() {
		t.Fatalf("want zero, got %s", diff)
	}

	_, err = NewAmount(1).Subtract(NewAmount(2))
	assert.IsErr(t, errors.ErrAmount, err)

	assert.Equal(t, 1, NewAmount(2).Compare(NewAmount(1)))
	assert.Equal(t, -1, NewAmount(1).Compare(NewAmount(2)))
	if !NewAmount(3).IsGTE(NewAmount(3)) {
		t.Fatal("3 >= 3")
	}
}

func TestAmountBytes(t *testing.T) {
	for _, s := range []string{"0", "1", "256", "340282366920938463463374607431768211455"} {
		a := MustParseAmount(s)
		got, err := AmountFromBytes(a.Bytes())
		assert.Nil(t, err)
		if !got.Equals(a) {
			t.Fatalf("want %s, got %s", a, got)
		}
	}
	_, err := AmountFromBytes(make([]byte, 17))
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestAmountJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Amount Amount `json:"amount"`
	}{Amount: NewAmount(1000)})
	assert.Nil(t, err)
	assert.Equal(t, `{"amount":"1000"}`, string(raw))

	cases := map[string]struct {
		raw     string
		want    string
		wantErr *errors.Error
	}{
		"string":       {raw: `"77"`, want: "77"},
		"number":       {raw: `77`, want: "77"},
		"float number": {raw: `7.5`, wantErr: errors.ErrAmount},
		"negative":     {raw: `"-7"`, wantErr: errors.ErrAmount},
		"object":       {raw: `{}`, wantErr: errors.ErrAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tc.raw), &a)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, a.String())
			}
		})
	}
}
