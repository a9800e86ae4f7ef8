// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/fault"
)

// FeesConfiguration - fee schedule section of the configuration file
type FeesConfiguration struct {
	AddAsset    uint64 `gluamapper:"add_asset" json:"add_asset"`
	PerAddAsset uint64 `gluamapper:"per_add_asset" json:"per_add_asset"`
	DeleteAsset uint64 `gluamapper:"delete_asset" json:"delete_asset"`
	Exchange    uint64 `gluamapper:"exchange" json:"exchange"`
	Trade       uint64 `gluamapper:"trade" json:"trade"`
	Transfer    uint64 `gluamapper:"transfer" json:"transfer"`
}

// PermissionsConfiguration - permission section of the configuration file
//
// wallet keys are hex encoded public keys; a missing global mask means
// everything is allowed
type PermissionsConfiguration struct {
	Global  *uint64           `gluamapper:"global" json:"global"`
	Wallets map[string]uint64 `gluamapper:"wallets" json:"wallets"`
}

// Configuration - the raw result of executing the configuration file
type Configuration struct {
	Network     string                   `gluamapper:"network" json:"network"`
	Genesis     string                   `gluamapper:"genesis" json:"genesis"`
	Fees        FeesConfiguration        `gluamapper:"fees" json:"fees"`
	Permissions PermissionsConfiguration `gluamapper:"permissions" json:"permissions"`
}

// ParseConfigurationFile - read and execute a Lua file and assign
// the results to a configuration structure
func ParseConfigurationFile(fileName string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	// create the global "arg" table
	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	// execute configuration
	if err := L.DoFile(fileName); err != nil {
		return err
	}

	mapperOption := gluamapper.Option{
		NameFunc: func(s string) string {
			return s
		},
		TagName: "gluamapper",
	}
	mapper := gluamapper.Mapper{Option: mapperOption}
	err := mapper.Map(L.Get(L.GetTop()).(*lua.LTable), config)
	return err
}

// LoadContext - read a configuration file and build the context
func LoadContext(fileName string) (*Context, error) {
	config := &Configuration{}
	if err := ParseConfigurationFile(fileName, config); nil != err {
		return nil, err
	}
	return config.Context()
}

// Context - convert a parsed configuration into an execution context
func (config *Configuration) Context() (*Context, error) {
	network := config.Network
	if "" == network {
		network = Local
	}
	if !Valid(network) {
		return nil, fault.ErrInvalidChainName
	}

	genesis, err := account.PublicKeyFromHexString(config.Genesis)
	if nil != err {
		return nil, err
	}

	permissions := Permissions{
		Global: PermitAll,
	}
	if nil != config.Permissions.Global {
		permissions.Global = Permission(*config.Permissions.Global)
	}
	if 0 != len(config.Permissions.Wallets) {
		permissions.Wallets = make(map[account.PublicKey]Permission, len(config.Permissions.Wallets))
		for text, mask := range config.Permissions.Wallets {
			wallet, err := account.PublicKeyFromHexString(text)
			if nil != err {
				return nil, err
			}
			permissions.Wallets[wallet] = Permission(mask)
		}
	}

	return &Context{
		Network: network,
		Fees: TransactionFees{
			AddAsset:    config.Fees.AddAsset,
			PerAddAsset: config.Fees.PerAddAsset,
			DeleteAsset: config.Fees.DeleteAsset,
			Exchange:    config.Fees.Exchange,
			Trade:       config.Fees.Trade,
			Transfer:    config.Fees.Transfer,
		},
		Genesis:     genesis,
		Permissions: permissions,
	}, nil
}
