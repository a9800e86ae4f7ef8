// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package status - persistent execution results of processed transactions
//
// every processed transaction leaves exactly one status record keyed
// by its digest, written once and never overwritten.  a status either
// reports success or names the reason execution was rolled back.
package status
