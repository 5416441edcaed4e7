// Package utils holds input normalization helpers shared by every
// operation client, most importantly CPF/CNPJ handling. FitBank rejects
// any tax number that still carries dots, dashes or slashes, so all
// documents pass through TaxNumber before reaching a payload.
package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTaxNumber is returned when a document fails both the CPF and
// the CNPJ checksum.
var ErrInvalidTaxNumber = errors.New("fitbank: invalid tax number")

const (
	cpfLength  = 11
	cnpjLength = 14
)

// TaxNumber is a CPF or CNPJ in the bank's canonical digit-only form.
// The zero value is not valid; use NewTaxNumber.
type TaxNumber struct {
	value string
}

// NewTaxNumber strips formatting from a CPF/CNPJ and verifies its check
// digits. It tries CPF first, then CNPJ. Normalization is idempotent: an
// already stripped document comes back unchanged.
func NewTaxNumber(raw string) (TaxNumber, error) {
	digits := stripFormatting(raw)

	switch {
	case validCPF(digits):
		return TaxNumber{value: digits}, nil
	case validCNPJ(digits):
		return TaxNumber{value: digits}, nil
	default:
		return TaxNumber{}, fmt.Errorf("%w: %q", ErrInvalidTaxNumber, raw)
	}
}

// String returns the digit-only document.
func (t TaxNumber) String() string {
	return t.value
}

// IsCNPJ reports whether the document belongs to a company.
func (t TaxNumber) IsCNPJ() bool {
	return len(t.value) == cnpjLength
}

func stripFormatting(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validCPF(digits string) bool {
	if len(digits) != cpfLength || allSame(digits) {
		return false
	}
	d := toInts(digits)
	if checkDigit(d[:9], 10) != d[9] {
		return false
	}
	return checkDigit(d[:10], 11) == d[10]
}

// checkDigit computes a CPF verification digit using descending weights
// starting at firstWeight.
func checkDigit(d []int, firstWeight int) int {
	sum := 0
	for i, v := range d {
		sum += v * (firstWeight - i)
	}
	return sum * 10 % 11 % 10
}

var (
	cnpjWeightsFirst  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func validCNPJ(digits string) bool {
	if len(digits) != cnpjLength || allSame(digits) {
		return false
	}
	d := toInts(digits)
	if cnpjCheckDigit(d[:12], cnpjWeightsFirst) != d[12] {
		return false
	}
	return cnpjCheckDigit(d[:13], cnpjWeightsSecond) == d[13]
}

func cnpjCheckDigit(d []int, weights []int) int {
	sum := 0
	for i, v := range d {
		sum += v * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func toInts(digits string) []int {
	out := make([]int, len(digits))
	for i := 0; i < len(digits); i++ {
		out[i] = int(digits[i] - '0')
	}
	return out
}
