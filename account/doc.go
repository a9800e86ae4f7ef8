// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - account identifiers
//
// an account is identified by its ed25519 public key; the text form is
// Base58 with a four byte sha3-256 checksum appended, the hex form is
// used when deriving asset identifiers
package account
