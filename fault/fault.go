// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ExistsError - record already exists
	ExistsError GenericError
	// InvalidError - invalid data or parameter
	InvalidError GenericError
	// NotFoundError - record was not found
	NotFoundError GenericError
	// ProcessError - processing failed
	ProcessError GenericError
)

// common errors - keep in alphabetic order
var (
	ErrAssetDataTooLong         = InvalidError("asset data too long")
	ErrAssetNotFound            = NotFoundError("asset not found")
	ErrCannotDecodeAccount      = InvalidError("cannot decode account")
	ErrChecksumMismatch         = ProcessError("checksum mismatch")
	ErrDataTooLong              = InvalidError("data too long")
	ErrFractionOutOfRange       = InvalidError("fraction out of range")
	ErrInsufficientAssets       = InvalidError("insufficient assets")
	ErrInsufficientFunds        = InvalidError("insufficient funds")
	ErrInvalidAssetId           = InvalidError("invalid asset id")
	ErrInvalidBoolean           = InvalidError("invalid boolean")
	ErrInvalidChainName         = InvalidError("invalid chain name")
	ErrInvalidAssetInfo         = InvalidError("invalid asset info")
	ErrInvalidCount             = InvalidError("invalid item count")
	ErrInvalidFeeStrategy       = InvalidError("invalid fee strategy")
	ErrInvalidKeyLength         = InvalidError("invalid key length")
	ErrInvalidLength            = InvalidError("invalid length")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrInvalidTransaction       = InvalidError("invalid transaction")
	ErrNotPublicKey             = InvalidError("not a public key")
	ErrNotTransactionRecord     = InvalidError("not a transaction record")
	ErrStatusAlreadyRecorded    = ExistsError("status already recorded")
	ErrTransactionNotFound      = NotFoundError("transaction not found")
	ErrWrongNetworkForPublicKey = InvalidError("wrong network for public key")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// Error - the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
