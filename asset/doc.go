// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - asset identifiers, holdings and issuance records
//
// an asset class is identified by a deterministic 16 byte id derived
// from the creator key and a free form data string; the global Info
// record tracks the total issued amount and the immutable fee schedule
package asset
