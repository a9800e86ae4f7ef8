// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fract

import (
	"math/bits"

	"github.com/openmarket/openmarketd/fault"
)

// Digits - number of decimal places carried
const Digits = 16

const bitsPerDigit = 4

// divisor for the scaled sum in MulUint64: 10 * 10^Digits
const scaleDivisor = 100000000000000000

// UFract64 - 64-bit unsigned packed binary-coded decimal fraction
//
// range is 0 to 0.9999999999999999, one decimal digit per nibble with
// the most significant decimal place in the most significant nibble
type UFract64 uint64

// FromDigits - create a UFract64 from an array of bytes each
// representing one decimal place
func FromDigits(digits [Digits]byte) UFract64 {
	fract := uint64(0)
	shift := uint(64)
	for _, digit := range digits {
		shift -= bitsPerDigit
		fract |= uint64(digit&0x0f) << shift
	}
	return UFract64(fract)
}

// Digit - the value of the decimal place at index, 0 is the most
// significant place
func (f UFract64) Digit(index int) byte {
	return byte(uint64(f)>>uint((Digits-1-index)*bitsPerDigit)) & 0x0f
}

// IsZero - true if the fraction is zero
func (f UFract64) IsZero() bool {
	return 0 == f
}

// IsValid - true if every nibble holds a decimal digit
func (f UFract64) IsValid() bool {
	for i := 0; i < Digits; i += 1 {
		if f.Digit(i) > 9 {
			return false
		}
	}
	return true
}

// MulUint64 - multiply the fraction by an integer, truncating the
// result towards zero
//
// the intermediate sum is accumulated in 128 bits so no digit is lost
// before the final scaling division
func (f UFract64) MulUint64(value uint64) uint64 {
	if 0 == f || 0 == value {
		return 0
	}

	var hi, lo, carry uint64

	multiplier := uint64(1)
	for i := Digits - 1; i >= 0; i -= 1 {
		multiplier *= 10
		digit := uint64(f.Digit(i))
		if 0 == digit {
			continue
		}
		termHi, termLo := bits.Mul64(value, digit*multiplier)
		lo, carry = bits.Add64(lo, termLo, 0)
		hi, _ = bits.Add64(hi, termHi, carry)
	}

	// low 64 bits of the 128-bit quotient
	remainder := hi % scaleDivisor
	quotient, _ := bits.Div64(remainder, lo, scaleDivisor)
	return quotient
}

// String - render as "0.NNNNNNNNNNNNNNNN"
func (f UFract64) String() string {
	buffer := make([]byte, 0, 2+Digits)
	buffer = append(buffer, '0', '.')
	for i := 0; i < Digits; i += 1 {
		buffer = append(buffer, '0'+f.Digit(i))
	}
	return string(buffer)
}

// MarshalText - for JSON encoding
func (f UFract64) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText - for JSON decoding
func (f *UFract64) UnmarshalText(s []byte) error {
	fract, err := Parse(string(s))
	if nil != err {
		return err
	}
	*f = fract
	return nil
}

// Parse - convert a "0.NNN…" decimal string, up to 16 places, into a
// UFract64; missing trailing places are zero
func Parse(s string) (UFract64, error) {
	if "0" == s {
		return 0, nil
	}
	if len(s) < 2 || '0' != s[0] || '.' != s[1] {
		return 0, fault.ErrFractionOutOfRange
	}
	places := s[2:]
	if 0 == len(places) || len(places) > Digits {
		return 0, fault.ErrFractionOutOfRange
	}

	var digits [Digits]byte
	for i := 0; i < len(places); i += 1 {
		c := places[i]
		if c < '0' || c > '9' {
			return 0, fault.ErrFractionOutOfRange
		}
		digits[i] = c - '0'
	}
	return FromDigits(digits), nil
}
