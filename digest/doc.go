// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - SHA3-256 digests for transaction identifiers
//
// a transaction id is the digest of the complete packed transaction
// bytes including all signatures
package digest
