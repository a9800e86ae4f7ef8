// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fract - fixed-point decimal fractions
//
// asset fee schedules carry a fractional part in the range [0,1) with
// 16 decimal digits of precision, stored as packed BCD so the decimal
// representation survives encoding exactly
package fract
