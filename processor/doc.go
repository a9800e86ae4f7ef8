// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - the transaction execution state machine
//
// execution is all or nothing on top of a storage fork: the genesis
// fee is charged first and survives a failed transaction, everything
// after it happens inside a checkpoint that is rolled back on the
// first error.  the terminal outcome of every transaction is written
// exactly once to the status store.
//
// the set of transaction kinds is closed, so dispatch is a single
// exhaustive type switch.
package processor
