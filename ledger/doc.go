// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - account balances and asset issuance records
//
// pure read/mutate operations over the storage pools with no business
// logic; atomicity is the caller's responsibility via the fork's
// restore points
package ledger
