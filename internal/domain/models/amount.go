package models

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxAmount keeps rounded floats inside the exactly representable int64 range.
const maxAmount = 1 << 53

var amountTextPattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// Amount is a cost in whole units of the smallest currency unit.
// Decoding never fails: tokens that are not a single number are kept in Raw
// and read as zero by the consistency engine.
type Amount struct {
	Value int64
	Raw   string
}

func NewAmount(v int64) Amount {
	return Amount{Value: v}
}

// Malformed reports whether the decoded token was not a number.
func (a Amount) Malformed() bool {
	return a.Raw != ""
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Malformed() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(a.Value, 10)), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount{}
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}

	if s[0] == '"' {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			a.Raw = s
			return nil
		}
		if strings.TrimSpace(text) == "" {
			return nil
		}
		v, ok := ParseAmountText(text)
		if !ok {
			a.Raw = text
			return nil
		}
		a.Value = v
		return nil
	}

	v, ok := roundAmount(s)
	if !ok {
		a.Raw = s
		return nil
	}
	a.Value = v
	return nil
}

// ParseAmountText reads "1,200", "₹ 450", "500 INR" or "Rs. 300.50".
// Text holding zero or several numbers (ranges like "500-1000") is rejected.
func ParseAmountText(text string) (int64, bool) {
	matches := amountTextPattern.FindAllString(text, -1)
	if len(matches) != 1 {
		return 0, false
	}
	return roundAmount(strings.ReplaceAll(matches[0], ",", ""))
}

func roundAmount(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxAmount {
		return 0, false
	}
	return int64(math.Round(f)), true
}

// Text accepts a JSON string or number and keeps it as text. Model output
// mixes "500" and 500 for the same descriptive field.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "" || s == "null":
		*t = ""
	case s[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*t = Text(v)
	default:
		*t = Text(s)
	}
	return nil
}
