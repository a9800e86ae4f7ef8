// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/openmarket/openmarketd/transactionrecord"
)

var (
	verifyCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openmarketd_transaction_verify_total",
		Help: "transactions verified, by kind",
	}, []string{"kind"})

	executeCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openmarketd_transaction_execute_total",
		Help: "transactions executed, by kind",
	}, []string{"kind"})

	executeSuccessCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openmarketd_transaction_execute_success_total",
		Help: "transactions executed successfully, by kind",
	}, []string{"kind"})
)

func kindName(tag transactionrecord.Tag) string {
	switch tag {
	case transactionrecord.TransferTag:
		return "transfer"
	case transactionrecord.TransferWithFeesPayerTag:
		return "transfer_with_fees_payer"
	case transactionrecord.AddAssetsTag:
		return "add_assets"
	case transactionrecord.DeleteAssetsTag:
		return "delete_assets"
	case transactionrecord.TradeTag:
		return "trade"
	case transactionrecord.TradeIntermediaryTag:
		return "trade_intermediary"
	case transactionrecord.ExchangeTag:
		return "exchange"
	case transactionrecord.ExchangeIntermediaryTag:
		return "exchange_intermediary"
	case transactionrecord.BidOfferTag:
		return "bid_offer"
	case transactionrecord.AskOfferTag:
		return "ask_offer"
	default:
		return "unknown"
	}
}
