// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the key-value layer under the ledger
//
// a Store supplies plain get/put/delete; the host wraps one in a Fork
// per block, which adds the copy-on-write checkpoint discipline that
// transaction execution relies on: Begin marks a restore point,
// Rollback discards every write since the most recent mark and Commit
// keeps them; Flush persists the surviving writes to the base store
//
// named pool handles partition the key space with a one byte prefix:
//
//   W - account records
//   I - asset issuance records
//   O - open offers per asset
//   S - transaction status
package storage
