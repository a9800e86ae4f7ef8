// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/fract"
)

func mustParse(t *testing.T, s string) fract.UFract64 {
	t.Helper()
	f, err := fract.Parse(s)
	require.NoError(t, err)
	return f
}

func TestParseAndString(t *testing.T) {
	testData := []struct {
		input    string
		expected string
	}{
		{"0", "0.0000000000000000"},
		{"0.5", "0.5000000000000000"},
		{"0.01", "0.0100000000000000"},
		{"0.9999999999999999", "0.9999999999999999"},
		{"0.1234567890123456", "0.1234567890123456"},
	}
	for _, item := range testData {
		f := mustParse(t, item.input)
		assert.Equal(t, item.expected, f.String(), "input: %q", item.input)
		assert.True(t, f.IsValid())
	}
}

func TestParseRejects(t *testing.T) {
	testData := []string{
		"",
		"0.",
		"1.0",
		".5",
		"0.12x45",
		"0.12345678901234567", // 17 places
		"-0.5",
	}
	for _, item := range testData {
		_, err := fract.Parse(item)
		assert.Equal(t, fault.ErrFractionOutOfRange, err, "input: %q", item)
	}
}

func TestFromDigits(t *testing.T) {
	var digits [fract.Digits]byte
	digits[0] = 2
	digits[1] = 5

	f := fract.FromDigits(digits)
	assert.Equal(t, "0.2500000000000000", f.String())
	assert.Equal(t, byte(2), f.Digit(0))
	assert.Equal(t, byte(5), f.Digit(1))
	assert.Equal(t, byte(0), f.Digit(15))
}

func TestIsValidRejectsNonDecimalNibble(t *testing.T) {
	f := fract.UFract64(0xa000000000000000)
	assert.False(t, f.IsValid())
}

func TestMulUint64(t *testing.T) {
	testData := []struct {
		fraction string
		value    uint64
		expected uint64
	}{
		{"0", 100, 0},
		{"0.5", 100, 50},
		{"0.5", 3, 1}, // truncates towards zero
		{"0.01", 12345, 123},
		{"0.25", 0, 0},
		{"0.9999999999999999", 10000000000000000, 9999999999999999},
		{"0.0000000000000001", 10000000000000000, 1},
		{"0.0000000000000001", 9999999999999999, 0},
	}
	for _, item := range testData {
		f := mustParse(t, item.fraction)
		assert.Equal(t, item.expected, f.MulUint64(item.value),
			"%s * %d", item.fraction, item.value)
	}
}

func TestMulUint64NoOverflow(t *testing.T) {
	// intermediate products exceed 64 bits but the result must not lose
	// any digit
	const max = ^uint64(0)
	f := mustParse(t, "0.1")
	assert.Equal(t, uint64(1844674407370955161), f.MulUint64(max))
}

func TestTextMarshalling(t *testing.T) {
	f := mustParse(t, "0.0625")
	text, err := f.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0.0625000000000000", string(text))

	var parsed fract.UFract64
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, f, parsed)
}
