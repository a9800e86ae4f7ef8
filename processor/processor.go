// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/bitmark-inc/logger"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/chain"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/fees"
	"github.com/openmarket/openmarketd/ledger"
	"github.com/openmarket/openmarketd/offers"
	"github.com/openmarket/openmarketd/status"
	"github.com/openmarket/openmarketd/storage"
	"github.com/openmarket/openmarketd/transactionrecord"
)

// Processor - executes transactions against a storage fork
type Processor struct {
	log    *logger.L
	ctx    *chain.Context
	fork   *storage.Fork
	ledger *ledger.Ledger
	book   *offers.Book
	status *status.Store
}

// New - create a processor over a fork
//
// the host owns the fork: it decides when accumulated state is
// flushed to the backing store
func New(ctx *chain.Context, fork *storage.Fork) *Processor {
	pool := storage.NewPool(fork)
	return &Processor{
		log:    logger.New("processor"),
		ctx:    ctx,
		fork:   fork,
		ledger: ledger.New(pool),
		book:   offers.NewBook(pool),
		status: status.NewStore(pool),
	}
}

// Execute - verify and execute one transaction, recording its outcome
//
// a Verify failure rejects the transaction outright and records
// nothing; an execution failure rolls back everything except the
// genesis fee and records the failure in the status store.  the
// returned error reports only rejection or store corruption, never a
// recorded business failure
func (p *Processor) Execute(tx transactionrecord.Transaction) (status.Status, error) {
	packed := tx.Pack()
	txId := packed.TxId()
	kind := kindName(tx.Tag())

	verifyCounter.WithLabelValues(kind).Inc()
	if err := tx.Verify(p.ctx); nil != err {
		p.log.Warnf("reject %s %s: %s", kind, txId, err)
		return status.InvalidTransaction, err
	}

	if _, recorded := p.status.Fetch(txId); recorded {
		return status.InvalidTransaction, fault.ErrStatusAlreadyRecorded
	}

	executeCounter.WithLabelValues(kind).Inc()

	var err error
	switch tx := tx.(type) {
	case *transactionrecord.Transfer:
		err = p.executeTransfer(tx)
	case *transactionrecord.TransferWithFeesPayer:
		err = p.executeTransferWithFeesPayer(tx)
	case *transactionrecord.AddAssets:
		err = p.executeAddAssets(txId, tx)
	case *transactionrecord.DeleteAssets:
		err = p.executeDeleteAssets(tx)
	case *transactionrecord.Trade:
		err = p.executeTrade(tx.Offer, nil)
	case *transactionrecord.TradeIntermediary:
		err = p.executeTrade(tx.Offer.Trade, &tx.Offer.Intermediary)
	case *transactionrecord.Exchange:
		err = p.executeExchange(tx.Offer, nil)
	case *transactionrecord.ExchangeIntermediary:
		err = p.executeExchange(tx.Offer.Exchange, &tx.Offer.Intermediary)
	case *transactionrecord.BidOffer:
		err = p.executeBidOffer(txId, tx)
	case *transactionrecord.AskOffer:
		err = p.executeAskOffer(txId, tx)
	default:
		return status.InvalidTransaction, fault.ErrNotTransactionRecord
	}

	result := status.FromError(err)
	if recordErr := p.status.Record(txId, result); nil != recordErr {
		return status.InvalidTransaction, recordErr
	}
	if result.IsOk() {
		executeSuccessCounter.WithLabelValues(kind).Inc()
		p.log.Infof("executed %s %s", kind, txId)
	} else {
		p.log.Infof("failed %s %s: %s", kind, txId, result)
	}
	return result, nil
}

// charge the genesis fee, then run the body inside a checkpoint
func (p *Processor) run(payGenesis func() error, body func() error) error {
	if err := payGenesis(); nil != err {
		return err
	}
	p.fork.Begin()
	if err := body(); nil != err {
		p.fork.Rollback()
		return err
	}
	p.fork.Commit()
	return nil
}

// route the genesis fee to the payer(s) named by the strategy
func (p *Processor) payGenesis(f fees.Fees, strategy fees.Strategy, recipient account.PublicKey, sender account.PublicKey, intermediary account.PublicKey) error {
	switch strategy {
	case fees.Recipient:
		return f.CollectToGenesis(p.ledger, recipient, p.ctx.Genesis)
	case fees.Sender:
		return f.CollectToGenesis(p.ledger, sender, p.ctx.Genesis)
	case fees.RecipientAndSender:
		return f.CollectToGenesis2(p.ledger, recipient, sender, p.ctx.Genesis)
	case fees.Intermediary:
		return f.CollectToGenesis(p.ledger, intermediary, p.ctx.Genesis)
	default:
		return fault.ErrInvalidFeeStrategy
	}
}

// route the third party fees to asset creators per the strategy
func (p *Processor) payThirdParty(f fees.Fees, strategy fees.Strategy, recipient account.PublicKey, sender account.PublicKey, intermediary account.PublicKey) error {
	switch strategy {
	case fees.Recipient:
		return f.CollectToThirdParty(p.ledger, recipient)
	case fees.Sender:
		return f.CollectToThirdParty(p.ledger, sender)
	case fees.RecipientAndSender:
		return f.CollectToThirdParty2(p.ledger, recipient, sender)
	case fees.Intermediary:
		return f.CollectToThirdParty(p.ledger, intermediary)
	default:
		return fault.ErrInvalidFeeStrategy
	}
}

// pay the broker commission from the payer(s) named by the strategy;
// an intermediary paying itself is a no-op
func (p *Processor) payCommission(strategy fees.Strategy, recipient account.PublicKey, sender account.PublicKey, intermediary transactionrecord.Intermediary) error {
	switch strategy {
	case fees.Recipient:
		return p.ledger.MoveCoins(recipient, intermediary.Wallet, intermediary.Commission)
	case fees.Sender:
		return p.ledger.MoveCoins(sender, intermediary.Wallet, intermediary.Commission)
	case fees.RecipientAndSender:
		half := intermediary.Commission / 2
		if err := p.ledger.MoveCoins(recipient, intermediary.Wallet, intermediary.Commission-half); nil != err {
			return err
		}
		return p.ledger.MoveCoins(sender, intermediary.Wallet, half)
	case fees.Intermediary:
		return nil
	default:
		return fault.ErrInvalidFeeStrategy
	}
}
