// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fees_test

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/fees"
	"github.com/openmarket/openmarketd/fract"
	"github.com/openmarket/openmarketd/ledger"
	"github.com/openmarket/openmarketd/storage"
)

func TestMain(m *testing.M) {
	directory, err := ioutil.TempDir("", "fees-test")
	if nil != err {
		os.Exit(1)
	}
	_ = logger.Initialise(logger.Configuration{
		Directory: directory,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	code := m.Run()
	logger.Finalise()
	os.RemoveAll(directory)
	os.Exit(code)
}

func wallet(fill byte) account.PublicKey {
	var key account.PublicKey
	for i := range key {
		key[i] = fill
	}
	return key
}

func percent(t *testing.T, s string) fract.UFract64 {
	t.Helper()
	f, err := fract.Parse(s)
	require.NoError(t, err)
	return f
}

// one asset issued by creator with a 10 + 1% schedule on every
// operation
func issue(t *testing.T, l *ledger.Ledger, name string, creator account.PublicKey) asset.AssetId {
	t.Helper()
	fee := asset.Fee{Fixed: 10, Fraction: percent(t, "0.01")}
	id := asset.NewAssetId(name, creator)
	l.StoreAssetInfo(id, asset.Info{
		Creator: creator,
		Amount:  1000,
		Fees:    asset.Fees{Trade: fee, Exchange: fee, Transfer: fee},
	})
	return id
}

func newLedger() *ledger.Ledger {
	return ledger.New(storage.NewPool(storage.NewFork(storage.NewMemoryStore())))
}

func TestStrategyFromByte(t *testing.T) {
	for _, value := range []byte{1, 2, 3, 4} {
		strategy, err := fees.StrategyFromByte(value)
		require.NoError(t, err)
		assert.Equal(t, fees.Strategy(value), strategy)
	}
	for _, value := range []byte{0, 5, 255} {
		_, err := fees.StrategyFromByte(value)
		assert.Equal(t, fault.ErrInvalidFeeStrategy, err)
	}
}

func TestForAddAssets(t *testing.T) {
	f := fees.ForAddAssets(1000, 2, []asset.MetaAsset{
		{Amount: 30},
		{Amount: 70},
	})
	assert.Equal(t, uint64(1000+2*100), f.ToGenesis)
	assert.Zero(t, f.ThirdPartyTotal())
}

func TestForTradeAccumulatesBasis(t *testing.T) {
	l := newLedger()
	creator := wallet(0x77)
	first := issue(t, l, "first", creator)
	second := issue(t, l, "second", creator)

	// basis is 5*100 + 10*50 = 1000 for every referenced asset
	f, err := fees.ForTrade(l, 500, []asset.TradeAsset{
		{Id: first, Amount: 5, Price: 100},
		{Id: second, Amount: 10, Price: 50},
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(500), f.ToGenesis)
	// two assets, each 10 + 1% of 1000
	assert.Equal(t, uint64(40), f.ToThirdParty[creator])
	assert.Equal(t, uint64(540), f.Total())
}

func TestForTradeUnknownAsset(t *testing.T) {
	l := newLedger()
	id := asset.NewAssetId("ghost", wallet(0x77))

	_, err := fees.ForTrade(l, 500, []asset.TradeAsset{
		{Id: id, Amount: 1, Price: 1},
	})
	assert.Equal(t, fault.ErrAssetNotFound, err)
}

func TestForTransferFixedOnly(t *testing.T) {
	l := newLedger()
	creator := wallet(0x77)
	id := issue(t, l, "first", creator)

	f, err := fees.ForTransfer(l, 10, []asset.Bundle{{Id: id, Amount: 4}})
	require.NoError(t, err)

	// fraction applies to a zero price, only the fixed part remains
	assert.Equal(t, uint64(10), f.ToThirdParty[creator])
}

func TestCollectToGenesis2CeilingSplit(t *testing.T) {
	l := newLedger()
	genesis := wallet(0xff)
	l.Store(wallet(1), ledger.Account{Balance: 100})
	l.Store(wallet(2), ledger.Account{Balance: 100})

	f := fees.Fees{ToGenesis: 11}
	require.NoError(t, f.CollectToGenesis2(l, wallet(1), wallet(2), genesis))

	assert.Equal(t, uint64(94), l.Fetch(wallet(1)).Balance)
	assert.Equal(t, uint64(95), l.Fetch(wallet(2)).Balance)
	assert.Equal(t, uint64(11), l.Fetch(genesis).Balance)
}

func TestCollectToThirdPartySkipsSelf(t *testing.T) {
	l := newLedger()
	creator := wallet(0x77)
	other := wallet(0x88)
	l.Store(creator, ledger.Account{Balance: 100})

	f := fees.Fees{ToThirdParty: map[account.PublicKey]uint64{
		creator: 50,
		other:   20,
	}}
	require.NoError(t, f.CollectToThirdParty(l, creator))

	// self entry collected nothing but still counts in the total
	assert.Equal(t, uint64(80), l.Fetch(creator).Balance)
	assert.Equal(t, uint64(20), l.Fetch(other).Balance)
	assert.Equal(t, uint64(70), f.ThirdPartyTotal())
}

func TestCollectToThirdPartyInsufficientFunds(t *testing.T) {
	l := newLedger()
	payer := wallet(1)
	l.Store(payer, ledger.Account{Balance: 5})

	f := fees.Fees{ToThirdParty: map[account.PublicKey]uint64{
		wallet(0x77): 10,
	}}
	err := f.CollectToThirdParty(l, payer)
	assert.Equal(t, fault.ErrInsufficientFunds, err)
}

func TestCollectToThirdParty2(t *testing.T) {
	l := newLedger()
	creator := wallet(0x77)
	l.Store(wallet(1), ledger.Account{Balance: 100})
	l.Store(wallet(2), ledger.Account{Balance: 100})

	f := fees.Fees{ToThirdParty: map[account.PublicKey]uint64{
		creator: 11,
	}}
	require.NoError(t, f.CollectToThirdParty2(l, wallet(1), wallet(2)))

	assert.Equal(t, uint64(94), l.Fetch(wallet(1)).Balance)
	assert.Equal(t, uint64(95), l.Fetch(wallet(2)).Balance)
	assert.Equal(t, uint64(11), l.Fetch(creator).Balance)
}
