// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/chain"
)

const configurationText = `
local M = {}

M.network = "testing"
M.genesis = "6161616161616161616161616161616161616161616161616161616161616161"

M.fees = {
    add_asset = 1000,
    per_add_asset = 2,
    delete_asset = 100,
    exchange = 300,
    trade = 500,
    transfer = 10,
}

M.permissions = {
    global = 1023,
    wallets = {
        ["6262626262626262626262626262626262626262626262626262626262626262"] = 1,
    },
}

return M
`

func TestLoadContext(t *testing.T) {
	directory, err := ioutil.TempDir("", "chain-test")
	require.NoError(t, err)
	defer os.RemoveAll(directory)

	fileName := filepath.Join(directory, "chain.conf")
	require.NoError(t, ioutil.WriteFile(fileName, []byte(configurationText), 0600))

	ctx, err := chain.LoadContext(fileName)
	require.NoError(t, err)

	genesis, _ := account.PublicKeyFromHexString("6161616161616161616161616161616161616161616161616161616161616161")
	assert.Equal(t, chain.Testing, ctx.Network)
	assert.Equal(t, genesis, ctx.Genesis)
	assert.Equal(t, uint64(1000), ctx.Fees.AddAsset)
	assert.Equal(t, uint64(2), ctx.Fees.PerAddAsset)
	assert.Equal(t, uint64(500), ctx.Fees.Trade)

	restricted, _ := account.PublicKeyFromHexString("6262626262626262626262626262626262626262626262626262626262626262")
	assert.True(t, ctx.Permissions.Allows(restricted, chain.PermitTransfer))
	assert.False(t, ctx.Permissions.Allows(restricted, chain.PermitBid))
	assert.True(t, ctx.Permissions.Allows(genesis, chain.PermitAsk))
}

func TestValidNetworkNames(t *testing.T) {
	assert.True(t, chain.Valid(chain.Market))
	assert.True(t, chain.Valid(chain.Testing))
	assert.True(t, chain.Valid(chain.Local))
	assert.False(t, chain.Valid("mainnet"))
}

func TestNetworkDefaultsToLocal(t *testing.T) {
	config := &chain.Configuration{
		Genesis: "6161616161616161616161616161616161616161616161616161616161616161",
	}
	ctx, err := config.Context()
	require.NoError(t, err)
	assert.Equal(t, chain.Local, ctx.Network)

	config.Network = "mainnet"
	_, err = config.Context()
	assert.Error(t, err)
}

func TestPermissionsDefaultToAll(t *testing.T) {
	permissions := chain.Permissions{Global: chain.PermitAll}
	wallet := account.PublicKey{1}

	assert.True(t, permissions.Allows(wallet, chain.PermitTransfer))
	assert.True(t, permissions.Allows(wallet, chain.PermitAsk))
}

func TestGlobalMaskRestrictsEveryone(t *testing.T) {
	permissions := chain.Permissions{
		Global: chain.PermitAll &^ chain.PermitDeleteAssets,
	}
	wallet := account.PublicKey{1}

	assert.True(t, permissions.Allows(wallet, chain.PermitAddAssets))
	assert.False(t, permissions.Allows(wallet, chain.PermitDeleteAssets))
}
