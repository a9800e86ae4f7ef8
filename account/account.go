// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/openmarket/openmarketd/fault"
)

// byte sizes of the fixed length fields
const (
	PublicKeySize  = ed25519.PublicKeySize
	SignatureSize  = ed25519.SignatureSize
	checksumLength = 4
)

// PublicKey - an ed25519 public key identifying one account
//
// the zero value is a valid map key and never corresponds to a real
// keypair
type PublicKey [PublicKeySize]byte

// Signature - an ed25519 signature
type Signature [SignatureSize]byte

// PublicKeyFromBytes - convert and validate a byte slice
func PublicKeyFromBytes(buffer []byte) (PublicKey, error) {
	var key PublicKey
	if PublicKeySize != len(buffer) {
		return key, fault.ErrInvalidKeyLength
	}
	copy(key[:], buffer)
	return key, nil
}

// PublicKeyFromHexString - convert and validate a 64 character hex string
func PublicKeyFromHexString(s string) (PublicKey, error) {
	var key PublicKey
	if hex.EncodedLen(PublicKeySize) != len(s) {
		return key, fault.ErrInvalidKeyLength
	}
	if _, err := hex.Decode(key[:], []byte(s)); nil != err {
		return key, fault.ErrNotPublicKey
	}
	return key, nil
}

// SignatureFromBytes - convert and validate a byte slice
func SignatureFromBytes(buffer []byte) (Signature, error) {
	var signature Signature
	if SignatureSize != len(buffer) {
		return signature, fault.ErrInvalidLength
	}
	copy(signature[:], buffer)
	return signature, nil
}

// CheckSignature - verify that the signature matches the message for
// this public key
func (key PublicKey) CheckSignature(message []byte, signature Signature) error {
	if !ed25519.Verify(key[:], message, signature[:]) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// HexString - lowercase hex of the raw key bytes, also the prefix used
// in asset id derivation
func (key PublicKey) HexString() string {
	return hex.EncodeToString(key[:])
}

// String - human readable account representation: Base58 of the key
// bytes followed by a four byte sha3 checksum
func (key PublicKey) String() string {
	checksum := sha3.Sum256(key[:])
	buffer := append([]byte{}, key[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - for JSON encoding
func (key PublicKey) MarshalText() ([]byte, error) {
	return []byte(key.String()), nil
}

// UnmarshalText - for JSON decoding
func (key *PublicKey) UnmarshalText(s []byte) error {
	account, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	*key = account
	return nil
}

// AccountFromBase58 - decode and checksum a Base58 account string
func AccountFromBase58(accountBase58Encoded string) (PublicKey, error) {
	var key PublicKey

	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return key, fault.ErrCannotDecodeAccount
	}
	if PublicKeySize+checksumLength != len(accountDecoded) {
		return key, fault.ErrInvalidKeyLength
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return key, fault.ErrChecksumMismatch
	}

	copy(key[:], accountDecoded[:checksumStart])
	return key, nil
}
