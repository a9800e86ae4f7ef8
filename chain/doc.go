// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - the execution context shared by every transaction
//
// the context carries the fee schedule, the genesis account that
// collects fixed fees and the permission masks restricting which
// transaction kinds an account may submit.  it is passed explicitly
// into verification and execution; there is no global state.
//
// contexts are normally read from a Lua configuration file.
package chain
