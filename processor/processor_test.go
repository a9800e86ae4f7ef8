// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/chain"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/fees"
	"github.com/openmarket/openmarketd/fract"
	"github.com/openmarket/openmarketd/ledger"
	"github.com/openmarket/openmarketd/offers"
	"github.com/openmarket/openmarketd/processor"
	"github.com/openmarket/openmarketd/status"
	"github.com/openmarket/openmarketd/storage"
	"github.com/openmarket/openmarketd/transactionrecord"
)

func TestMain(m *testing.M) {
	directory, err := ioutil.TempDir("", "processor-test")
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

func makeKey(t *testing.T, seedByte byte) (account.PublicKey, ed25519.PrivateKey) {
	seed := bytes.Repeat([]byte{seedByte}, ed25519.SeedSize)
	private := ed25519.NewKeyFromSeed(seed)
	public, err := account.PublicKeyFromBytes(private.Public().(ed25519.PublicKey))
	require.NoError(t, err)
	return public, private
}

func signer(private ed25519.PrivateKey) func([]byte) account.Signature {
	return func(message []byte) account.Signature {
		signature, _ := account.SignatureFromBytes(ed25519.Sign(private, message))
		return signature
	}
}

var genesisWallet = account.PublicKey{0xff, 0xee}

func testContext() *chain.Context {
	return &chain.Context{
		Fees: chain.TransactionFees{
			AddAsset:    1000,
			PerAddAsset: 2,
			DeleteAsset: 100,
			Exchange:    1000,
			Trade:       500,
			Transfer:    10,
		},
		Genesis: genesisWallet,
		Permissions: chain.Permissions{
			Global: chain.PermitAll,
		},
	}
}

type harness struct {
	processor *processor.Processor
	ledger    *ledger.Ledger
	book      *offers.Book
	ctx       *chain.Context
}

func setup(t *testing.T) *harness {
	fork := storage.NewFork(storage.NewMemoryStore())
	pool := storage.NewPool(fork)
	ctx := testContext()
	return &harness{
		processor: processor.New(ctx, fork),
		ledger:    ledger.New(pool),
		book:      offers.NewBook(pool),
		ctx:       ctx,
	}
}

func (h *harness) fund(wallet account.PublicKey, balance uint64) {
	record := h.ledger.Fetch(wallet)
	record.Balance = balance
	h.ledger.Store(wallet, record)
}

func feeSchedule(t *testing.T) asset.Fees {
	fraction, err := fract.Parse("0.01")
	require.NoError(t, err)
	return asset.Fees{
		Trade:    asset.Fee{Fixed: 10, Fraction: fraction},
		Exchange: asset.Fee{Fixed: 10, Fraction: fraction},
		Transfer: asset.Fee{Fixed: 10, Fraction: fraction},
	}
}

func (h *harness) issue(t *testing.T, creatorKey ed25519.PrivateKey, creator account.PublicKey, data string, metas []asset.MetaAsset, seed uint64) asset.AssetId {
	add := &transactionrecord.AddAssets{
		Creator:    creator,
		MetaAssets: metas,
		Seed:       seed,
	}
	add.Sign(signer(creatorKey))
	result, err := h.processor.Execute(add)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)
	return asset.NewAssetId(data, creator)
}

func TestAddAssetsIssuesAndCharges(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	receiver, _ := makeKey(t, 0x22)
	h.fund(creator, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: receiver, Data: "gold", Amount: 100, Fees: schedule},
	}, 1)

	// genesis fee = 1000 + 2 per issued unit
	assert.Equal(t, uint64(10000-1200), h.ledger.Fetch(creator).Balance)
	assert.Equal(t, uint64(1200), h.ledger.Fetch(genesisWallet).Balance)
	assert.Equal(t, uint64(100), h.ledger.Fetch(receiver).AssetAmount(id))

	info, ok := h.ledger.FetchAssetInfo(id)
	require.True(t, ok)
	assert.Equal(t, creator, info.Creator)
	assert.Equal(t, uint64(100), info.Amount)
}

func TestAddAssetsMergesRepeatIssuance(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	receiver, _ := makeKey(t, 0x22)
	h.fund(creator, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: receiver, Data: "gold", Amount: 100, Fees: schedule},
	}, 1)
	h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: receiver, Data: "gold", Amount: 50, Fees: schedule},
	}, 2)

	info, ok := h.ledger.FetchAssetInfo(id)
	require.True(t, ok)
	assert.Equal(t, uint64(150), info.Amount)
	assert.Equal(t, uint64(150), h.ledger.Fetch(receiver).AssetAmount(id))
}

func TestAddAssetsRejectsChangedFeeSchedule(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	receiver, _ := makeKey(t, 0x22)
	h.fund(creator, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: receiver, Data: "gold", Amount: 100, Fees: schedule},
	}, 1)

	changed := schedule
	changed.Trade.Fixed = 99
	add := &transactionrecord.AddAssets{
		Creator: creator,
		MetaAssets: []asset.MetaAsset{
			{Receiver: receiver, Data: "gold", Amount: 50, Fees: changed},
		},
		Seed: 2,
	}
	add.Sign(signer(creatorKey))
	result, err := h.processor.Execute(add)
	require.NoError(t, err)
	assert.Equal(t, status.InvalidAssetInfo, result)

	// issuance rolled back, the genesis fee is kept
	info, _ := h.ledger.FetchAssetInfo(id)
	assert.Equal(t, uint64(100), info.Amount)
	assert.Equal(t, uint64(100), h.ledger.Fetch(receiver).AssetAmount(id))
	assert.Equal(t, uint64(10000-1200-1100), h.ledger.Fetch(creator).Balance)
}

func TestDeleteAssetsBurnsOnlyHeldUnits(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	other, _ := makeKey(t, 0x22)
	h.fund(creator, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: creator, Data: "gold", Amount: 10, Fees: schedule},
	}, 1)

	// move 4 units away so only 6 remain deletable
	transfer := &transactionrecord.Transfer{
		From:   creator,
		To:     other,
		Assets: []asset.Bundle{{Id: id, Amount: 4}},
		Seed:   2,
	}
	transfer.Sign(signer(creatorKey))
	result, err := h.processor.Execute(transfer)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	del := &transactionrecord.DeleteAssets{
		Creator: creator,
		Assets:  []asset.Bundle{{Id: id, Amount: 6}},
		Seed:    3,
	}
	del.Sign(signer(creatorKey))
	result, err = h.processor.Execute(del)
	require.NoError(t, err)
	assert.Equal(t, status.Ok, result)

	info, ok := h.ledger.FetchAssetInfo(id)
	require.True(t, ok)
	assert.Equal(t, uint64(4), info.Amount)
	assert.Equal(t, uint64(0), h.ledger.Fetch(creator).AssetAmount(id))

	// nothing left to delete
	del2 := &transactionrecord.DeleteAssets{
		Creator: creator,
		Assets:  []asset.Bundle{{Id: id, Amount: 1}},
		Seed:    4,
	}
	del2.Sign(signer(creatorKey))
	result, err = h.processor.Execute(del2)
	require.NoError(t, err)
	assert.Equal(t, status.InsufficientAssets, result)
	assert.Equal(t, uint64(4), h.ledger.Fetch(other).AssetAmount(id))
}

func TestDeleteAssetsRejectsForeignCreator(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	impostor, impostorKey := makeKey(t, 0x22)
	h.fund(creator, 10000)
	h.fund(impostor, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: impostor, Data: "gold", Amount: 10, Fees: schedule},
	}, 1)

	del := &transactionrecord.DeleteAssets{
		Creator: impostor,
		Assets:  []asset.Bundle{{Id: id, Amount: 5}},
		Seed:    2,
	}
	del.Sign(signer(impostorKey))
	result, err := h.processor.Execute(del)
	require.NoError(t, err)
	assert.Equal(t, status.InvalidTransaction, result)
	assert.Equal(t, uint64(10), h.ledger.Fetch(impostor).AssetAmount(id))
}

func TestTransferKeepsGenesisFeeOnFailure(t *testing.T) {
	h := setup(t)
	from, fromKey := makeKey(t, 0x11)
	to, _ := makeKey(t, 0x22)
	h.fund(from, 100)

	transfer := &transactionrecord.Transfer{
		From:   from,
		To:     to,
		Amount: 5000, // more than the balance
		Seed:   1,
	}
	transfer.Sign(signer(fromKey))
	result, err := h.processor.Execute(transfer)
	require.NoError(t, err)
	assert.Equal(t, status.InsufficientFunds, result)

	// the genesis fee is irrevocable, everything else rolled back
	assert.Equal(t, uint64(100-10), h.ledger.Fetch(from).Balance)
	assert.Equal(t, uint64(10), h.ledger.Fetch(genesisWallet).Balance)
	assert.True(t, h.ledger.Fetch(to).IsEmpty())
}

func TestTransferPaysThirdPartyFee(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	holder, holderKey := makeKey(t, 0x22)
	other, _ := makeKey(t, 0x33)
	h.fund(creator, 10000)
	h.fund(holder, 1000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: holder, Data: "gold", Amount: 10, Fees: schedule},
	}, 1)

	creatorBefore := h.ledger.Fetch(creator).Balance

	transfer := &transactionrecord.Transfer{
		From:   holder,
		To:     other,
		Assets: []asset.Bundle{{Id: id, Amount: 3}},
		Seed:   2,
	}
	transfer.Sign(signer(holderKey))
	result, err := h.processor.Execute(transfer)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	// transfer fee is the fixed part of the schedule
	assert.Equal(t, uint64(1000-10-10), h.ledger.Fetch(holder).Balance)
	assert.Equal(t, creatorBefore+10, h.ledger.Fetch(creator).Balance)
	assert.Equal(t, uint64(3), h.ledger.Fetch(other).AssetAmount(id))
}

func TestTradeSettlesWithRecipientStrategy(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	seller, sellerKey := makeKey(t, 0x22)
	buyer, buyerKey := makeKey(t, 0x33)
	h.fund(creator, 10000)
	h.fund(buyer, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: seller, Data: "gold", Amount: 10, Fees: schedule},
	}, 1)

	creatorBefore := h.ledger.Fetch(creator).Balance

	trade := &transactionrecord.Trade{
		Offer: transactionrecord.TradeOffer{
			Buyer:  buyer,
			Seller: seller,
			Assets: []asset.TradeAsset{
				{Id: id, Amount: 4, Price: 25},
			},
			FeeStrategy: fees.Recipient,
			Seed:        2,
		},
	}
	trade.SellerSignature = signer(sellerKey)(trade.Offer.Pack())
	trade.Sign(signer(buyerKey))

	result, err := h.processor.Execute(trade)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	// notional 100, trade fee 10 + 1% of 100 = 11, genesis 500
	assert.Equal(t, uint64(10000-500-11-100), h.ledger.Fetch(buyer).Balance)
	assert.Equal(t, uint64(100), h.ledger.Fetch(seller).Balance)
	assert.Equal(t, creatorBefore+11, h.ledger.Fetch(creator).Balance)
	assert.Equal(t, uint64(4), h.ledger.Fetch(buyer).AssetAmount(id))
	assert.Equal(t, uint64(6), h.ledger.Fetch(seller).AssetAmount(id))
}

func TestTradeIntermediaryPaysCommission(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	seller, sellerKey := makeKey(t, 0x22)
	buyer, buyerKey := makeKey(t, 0x33)
	broker, brokerKey := makeKey(t, 0x44)
	h.fund(creator, 10000)
	h.fund(buyer, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: seller, Data: "gold", Amount: 10, Fees: schedule},
	}, 1)

	trade := &transactionrecord.TradeIntermediary{
		Offer: transactionrecord.TradeIntermediaryOffer{
			Trade: transactionrecord.TradeOffer{
				Buyer:  buyer,
				Seller: seller,
				Assets: []asset.TradeAsset{
					{Id: id, Amount: 4, Price: 25},
				},
				FeeStrategy: fees.Recipient,
				Seed:        2,
			},
			Intermediary: transactionrecord.Intermediary{
				Wallet:     broker,
				Commission: 50,
			},
		},
	}
	segment := trade.Offer.Pack()
	trade.IntermediarySignature = signer(brokerKey)(segment)
	trade.SellerSignature = signer(sellerKey)(segment)
	trade.Sign(signer(buyerKey))

	result, err := h.processor.Execute(trade)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	assert.Equal(t, uint64(50), h.ledger.Fetch(broker).Balance)
	assert.Equal(t, uint64(10000-500-50-11-100), h.ledger.Fetch(buyer).Balance)
}

func TestExchangeSplitsFeesBetweenBothSides(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	sender, senderKey := makeKey(t, 0x22)
	recipient, recipientKey := makeKey(t, 0x33)
	h.fund(creator, 10000)
	h.fund(sender, 10000)
	h.fund(recipient, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: sender, Data: "gold", Amount: 10, Fees: schedule},
	}, 1)

	creatorBefore := h.ledger.Fetch(creator).Balance

	exchange := &transactionrecord.Exchange{
		Offer: transactionrecord.ExchangeOffer{
			Sender:       sender,
			SenderAssets: []asset.Bundle{{Id: id, Amount: 5}},
			SenderValue:  200,
			Recipient:    recipient,
			FeeStrategy:  fees.RecipientAndSender,
			Seed:         2,
		},
	}
	exchange.SenderSignature = signer(senderKey)(exchange.Offer.Pack())
	exchange.Sign(signer(recipientKey))

	result, err := h.processor.Execute(exchange)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	// genesis 1000 and exchange fee 10 split evenly: 505 each side
	assert.Equal(t, uint64(10000-505-200), h.ledger.Fetch(sender).Balance)
	assert.Equal(t, uint64(10000-505+200), h.ledger.Fetch(recipient).Balance)
	assert.Equal(t, creatorBefore+10, h.ledger.Fetch(creator).Balance)
	assert.Equal(t, uint64(5), h.ledger.Fetch(recipient).AssetAmount(id))
	assert.Equal(t, uint64(5), h.ledger.Fetch(sender).AssetAmount(id))
}

func TestBidMatchesBestAsksFirstInOrder(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	seller1, seller1Key := makeKey(t, 0x22)
	seller2, seller2Key := makeKey(t, 0x33)
	buyer, buyerKey := makeKey(t, 0x44)
	h.fund(creator, 10000)
	h.fund(seller1, 1000)
	h.fund(seller2, 1000)
	h.fund(buyer, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: seller1, Data: "gold", Amount: 5, Fees: schedule},
		{Receiver: seller2, Data: "gold", Amount: 3, Fees: schedule},
	}, 1)

	for i, ask := range []struct {
		wallet account.PublicKey
		key    ed25519.PrivateKey
		amount uint64
	}{
		{seller1, seller1Key, 5},
		{seller2, seller2Key, 3},
	} {
		record := &transactionrecord.AskOffer{
			Wallet: ask.wallet,
			Asset:  asset.TradeAsset{Id: id, Amount: ask.amount, Price: 100},
			Seed:   uint64(i + 2),
		}
		record.Sign(signer(ask.key))
		result, err := h.processor.Execute(record)
		require.NoError(t, err)
		require.Equal(t, status.Ok, result)
	}

	// offered units leave the sellers' accounts into the book
	assert.Equal(t, uint64(0), h.ledger.Fetch(seller1).AssetAmount(id))
	assert.Equal(t, uint64(0), h.ledger.Fetch(seller2).AssetAmount(id))

	creatorBefore := h.ledger.Fetch(creator).Balance

	bid := &transactionrecord.BidOffer{
		Wallet: buyer,
		Asset:  asset.TradeAsset{Id: id, Amount: 6, Price: 120},
		Seed:   4,
	}
	bid.Sign(signer(buyerKey))
	result, err := h.processor.Execute(bid)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	// fills at the resting price: 5 from seller1 then 1 from seller2
	assert.Equal(t, uint64(1000-500+500), h.ledger.Fetch(seller1).Balance)
	assert.Equal(t, uint64(1000-500+100), h.ledger.Fetch(seller2).Balance)
	assert.Equal(t, uint64(6), h.ledger.Fetch(buyer).AssetAmount(id))

	// buyer pays genesis 500, the matched notional 600 and the trade
	// fee on it (10 + 1% of 600); the locked spread is refunded
	assert.Equal(t, uint64(10000-500-600-16), h.ledger.Fetch(buyer).Balance)
	assert.Equal(t, creatorBefore+16, h.ledger.Fetch(creator).Balance)

	// seller2 still has 2 units resting
	open := h.book.Fetch(id)
	require.Len(t, open.Asks, 1)
	require.Len(t, open.Asks[0].Offers, 1)
	assert.Equal(t, seller2, open.Asks[0].Offers[0].Wallet)
	assert.Equal(t, uint64(2), open.Asks[0].Offers[0].Amount)
	assert.Empty(t, open.Bids)
}

func TestRestingBidFilledByIncomingAsk(t *testing.T) {
	h := setup(t)
	creator, creatorKey := makeKey(t, 0x11)
	seller, sellerKey := makeKey(t, 0x22)
	buyer, buyerKey := makeKey(t, 0x33)
	h.fund(creator, 10000)
	h.fund(seller, 1000)
	h.fund(buyer, 10000)

	schedule := feeSchedule(t)
	id := h.issue(t, creatorKey, creator, "gold", []asset.MetaAsset{
		{Receiver: seller, Data: "gold", Amount: 2, Fees: schedule},
	}, 1)

	bid := &transactionrecord.BidOffer{
		Wallet: buyer,
		Asset:  asset.TradeAsset{Id: id, Amount: 2, Price: 80},
		Seed:   2,
	}
	bid.Sign(signer(buyerKey))
	result, err := h.processor.Execute(bid)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	// the bid rests, coins locked out of the balance
	assert.Equal(t, uint64(10000-500-160), h.ledger.Fetch(buyer).Balance)
	open := h.book.Fetch(id)
	require.Len(t, open.Bids, 1)

	ask := &transactionrecord.AskOffer{
		Wallet: seller,
		Asset:  asset.TradeAsset{Id: id, Amount: 2, Price: 80},
		Seed:   3,
	}
	ask.Sign(signer(sellerKey))
	result, err = h.processor.Execute(ask)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	// seller gets 160 from the locked coins minus the trade fee on
	// the matched notional (10 + 1% of 160 = 11), buyer gets the units
	assert.Equal(t, uint64(1000-500+160-11), h.ledger.Fetch(seller).Balance)
	assert.Equal(t, uint64(2), h.ledger.Fetch(buyer).AssetAmount(id))
	assert.Equal(t, uint64(0), h.ledger.Fetch(seller).AssetAmount(id))

	// the book record disappears when both sides are empty
	assert.True(t, h.book.Fetch(id).IsEmpty())
}

func TestBidOnUnknownAssetFails(t *testing.T) {
	h := setup(t)
	buyer, buyerKey := makeKey(t, 0x11)
	h.fund(buyer, 10000)

	bid := &transactionrecord.BidOffer{
		Wallet: buyer,
		Asset:  asset.TradeAsset{Id: asset.AssetId{9}, Amount: 1, Price: 1},
		Seed:   1,
	}
	bid.Sign(signer(buyerKey))
	result, err := h.processor.Execute(bid)
	require.NoError(t, err)
	assert.Equal(t, status.AssetNotFound, result)

	// genesis fee charged, the lock rolled back
	assert.Equal(t, uint64(10000-500), h.ledger.Fetch(buyer).Balance)
}

func TestReplayIsRejected(t *testing.T) {
	h := setup(t)
	from, fromKey := makeKey(t, 0x11)
	to, _ := makeKey(t, 0x22)
	h.fund(from, 1000)

	transfer := &transactionrecord.Transfer{
		From:   from,
		To:     to,
		Amount: 100,
		Seed:   1,
	}
	transfer.Sign(signer(fromKey))

	result, err := h.processor.Execute(transfer)
	require.NoError(t, err)
	require.Equal(t, status.Ok, result)

	_, err = h.processor.Execute(transfer)
	assert.Equal(t, fault.ErrStatusAlreadyRecorded, err)

	// the replay had no effect
	assert.Equal(t, uint64(100), h.ledger.Fetch(to).Balance)
}

func TestVerifyFailureRecordsNothing(t *testing.T) {
	h := setup(t)
	from, fromKey := makeKey(t, 0x11)
	h.fund(from, 1000)

	transfer := &transactionrecord.Transfer{
		From:   from,
		To:     from, // invalid
		Amount: 100,
	}
	transfer.Sign(signer(fromKey))

	_, err := h.processor.Execute(transfer)
	assert.Error(t, err)
	assert.Equal(t, uint64(1000), h.ledger.Fetch(from).Balance)
}
