// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - the ten transaction kinds and their wire
// codecs
//
// every record starts with a 16 bit little endian tag, carries its
// fields in struct order and ends with the signatures.  two-party
// records embed the countersigned offer as a length prefixed segment
// so the counterparty signature covers exactly those bytes.
//
// the set of kinds is closed; an unknown tag is a decode error and
// execution dispatches over the concrete types exhaustively.
package transactionrecord
