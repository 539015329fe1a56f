// Copyright 2021 The captoken Authors
// This file is part of the captoken library.
//
// The captoken library is free software: you can redistribute it and/or modify
// it under the terms of the MIT Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The captoken library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// MIT Lesser General Public License for more details.
//
// You should have received a copy of the MIT Lesser General Public License
// along with the captoken library. If not, see <https://mit-license.org/>.

package backend

import (
	"errors"
	"log"

	"captoken"
	"captoken/common"
	"captoken/node"
	"captoken/storage/badger"

	"github.com/sirupsen/logrus"
)

var (
	ErrInitialToken = errors.New("initial token deploy fail")
)

// Backend wires the token ledger, wallet and event bus together and
// exposes them through the node's RPC service.
type Backend struct {
	config   *Config
	token    *captoken.Token
	wallet   *captoken.Wallet
	ledger   *captoken.Ledger
	eventBus *captoken.EventBus
}

type Params struct {
	TokenName     string
	TokenSymbol   string
	TokenDecimals uint8
	MaxSupply     string
	Owner         common.Address
	Debug         bool
}

// Config contains the configuration options of the Backend.
type Config struct {
	*Params
	StateDB badger.IStorage
	KeysDB  badger.IStorage
}

// NewBackend constructs and returns a Backend instance by the node and config.
// On first start it deploys the token from the configured parameters;
// afterwards the persisted metadata is authoritative.
func NewBackend(stack *node.Node, config *Config) (*Backend, error) {
	var err error = nil
	back := &Backend{
		config: config,
	}
	back.eventBus = captoken.NewEventBus()
	back.ledger = captoken.NewLedger(config.StateDB)
	back.wallet = captoken.NewWallet(config.KeysDB)

	owner := config.Owner
	addrdef := back.wallet.GetDefault()
	if owner.IsZero() {
		if addrdef.IsZero() {
			if owner, err = back.wallet.AddByRandom(); err != nil {
				return nil, err
			}
			if err = back.wallet.SetDefault(owner); err != nil {
				return nil, err
			}
		} else {
			owner = addrdef
		}
	}

	back.token, err = captoken.OpenToken(config.StateDB, back.ledger, back.eventBus)
	if errors.Is(err, captoken.ErrTokenNotDeployed) {
		maxSupply, perr := common.ParseAmount(config.MaxSupply, config.TokenDecimals)
		if perr != nil {
			return nil, perr
		}
		tokenConfig := captoken.Config{
			Name:      config.TokenName,
			Symbol:    config.TokenSymbol,
			Decimals:  config.TokenDecimals,
			MaxSupply: maxSupply,
		}
		back.token, err = captoken.NewToken(
			config.StateDB, back.ledger, tokenConfig, owner, back.eventBus)
		if err != nil {
			logrus.Errorf("Token deploy err: %s", err)
			return nil, ErrInitialToken
		}
	} else if err != nil {
		return nil, err
	}
	logrus.Debugf("Initial token: name=%s, symbol=%s, owner=%s",
		back.token.Name(), back.token.Symbol(), owner.B58String())

	if err = stack.RegisterBackend(back.token, back.wallet); err != nil {
		return nil, err
	}
	return back, nil
}

func (b *Backend) Start() error {
	go b.eventLoop()
	return nil
}

// eventLoop drains the bus for the daemon's lifetime so every token
// mutation leaves a trace in the logs.
func (b *Backend) eventLoop() {
	mintSub := b.eventBus.Subscript(captoken.MintEvent{})
	transferSub := b.eventBus.Subscript(captoken.TransferEvent{})
	pausedSub := b.eventBus.Subscript(captoken.PausedEvent{})
	unpausedSub := b.eventBus.Subscript(captoken.UnpausedEvent{})
	ownershipSub := b.eventBus.Subscript(captoken.OwnershipEvent{})
	decimals := b.token.Decimals()
	for {
		select {
		case data := <-mintSub.Chan():
			ev := data.(captoken.MintEvent)
			logrus.Infof("Minted %s %s to %s",
				common.FormatAmount(ev.Amount, decimals), b.token.Symbol(), ev.To.B58String())
		case data := <-transferSub.Chan():
			ev := data.(captoken.TransferEvent)
			logrus.Infof("Transferred %s %s from %s to %s",
				common.FormatAmount(ev.Amount, decimals), b.token.Symbol(),
				ev.From.B58String(), ev.To.B58String())
		case <-pausedSub.Chan():
			logrus.Warnf("Token transfers paused")
		case <-unpausedSub.Chan():
			logrus.Infof("Token transfers resumed")
		case data := <-ownershipSub.Chan():
			ev := data.(captoken.OwnershipEvent)
			logrus.Infof("Token ownership moved from %s to %s",
				ev.Prev.B58String(), ev.New.B58String())
		}
	}
}

func (b *Backend) Token() *captoken.Token {
	return b.token
}

func (b *Backend) Wallet() *captoken.Wallet {
	return b.wallet
}

func (b *Backend) EventBus() *captoken.EventBus {
	return b.eventBus
}

func (b *Backend) StateDB() badger.IStorage {
	return b.config.StateDB
}

func (b *Backend) close() {
	if err := b.config.StateDB.Close(); err != nil {
		log.Fatalf("State storage close errors: %s", err)
	}
	if err := b.config.KeysDB.Close(); err != nil {
		log.Fatalf("Keys storage close errors: %s", err)
	}
}
