// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all networks
const (
	Market  = "market"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a network name
func Valid(name string) bool {
	switch name {
	case Market, Testing, Local:
		return true
	default:
		return false
	}
}
