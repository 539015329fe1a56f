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

package captoken

import (
	"sync"

	"captoken/common"
	"captoken/log"
	"captoken/storage/badger"

	"github.com/holiman/uint256"
)

// Config is the immutable token configuration fixed at deployment.
type Config struct {
	Name      string
	Symbol    string
	Decimals  uint8
	MaxSupply *uint256.Int
}

// Token is a fixed-ceiling token over a balance ledger. Every operation is
// a single transaction: all preconditions are checked against the settled
// state before the first ledger mutation, so a failed call leaves nothing
// behind. A mutex serializes calls; each successful call commits before
// returning.
//
// Authorization is an explicit comparison of the caller against the stored
// owner, and the pause gate is an explicit predicate checked before any
// transfer. Neither is wired through the ledger.
type Token struct {
	mu       sync.Mutex
	config   Config
	owner    common.Address
	paused   bool
	ledger   *Ledger
	db       *tokenDB
	eventBus *EventBus
	logger   log.Logger
}

// NewToken deploys a token: the configuration is validated, persisted and
// the deployer becomes the owner. A max supply of zero fails the deployment.
func NewToken(storage badger.IStorage, ledger *Ledger, config Config, owner common.Address, eventBus *EventBus) (*Token, error) {
	if config.MaxSupply == nil || config.MaxSupply.IsZero() {
		return nil, ErrInvalidMaxSupply
	}
	if owner.IsZero() {
		return nil, ErrInvalidOwner
	}
	t := &Token{
		config:   config,
		owner:    owner,
		ledger:   ledger,
		db:       newTokenDB(storage),
		eventBus: eventBus,
		logger:   log.DefaultLogger(),
	}
	if err := t.writeMeta(); err != nil {
		return nil, err
	}
	t.logger.Infof("Deployed token: name=%s, symbol=%s, maxSupply=%s, owner=%s",
		config.Name, config.Symbol, config.MaxSupply.ToBig().Text(10), owner.B58String())
	return t, nil
}

// OpenToken reloads a deployed token from its metadata record.
func OpenToken(storage badger.IStorage, ledger *Ledger, eventBus *EventBus) (*Token, error) {
	db := newTokenDB(storage)
	meta, err := db.ReadMeta()
	if err != nil {
		return nil, err
	}
	if meta.maxSupply == nil || meta.maxSupply.IsZero() {
		return nil, ErrInvalidMaxSupply
	}
	return &Token{
		config: Config{
			Name:      meta.name,
			Symbol:    meta.symbol,
			Decimals:  meta.decimals,
			MaxSupply: meta.maxSupply,
		},
		owner:    meta.owner,
		paused:   meta.paused,
		ledger:   ledger,
		db:       db,
		eventBus: eventBus,
		logger:   log.DefaultLogger(),
	}, nil
}

func (t *Token) writeMeta() error {
	return t.db.WriteMeta(&tokenMeta{
		name:      t.config.Name,
		symbol:    t.config.Symbol,
		decimals:  t.config.Decimals,
		maxSupply: t.config.MaxSupply,
		owner:     t.owner,
		paused:    t.paused,
	})
}

// authorize is the owner-only guard.
func (t *Token) authorize(caller common.Address) error {
	if !caller.Equals(t.owner) {
		return ErrUnauthorized
	}
	return nil
}

// canTransfer is the transfer gate predicate.
func (t *Token) canTransfer() error {
	if t.paused {
		return ErrTransfersPaused
	}
	return nil
}

func (t *Token) Name() string {
	return t.config.Name
}

func (t *Token) Symbol() string {
	return t.config.Symbol
}

func (t *Token) Decimals() uint8 {
	return t.config.Decimals
}

func (t *Token) MaxSupply() *uint256.Int {
	return new(uint256.Int).Set(t.config.MaxSupply)
}

func (t *Token) TotalSupply() *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.TotalSupply()
}

func (t *Token) BalanceOf(addr common.Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.BalanceOf(addr)
}

func (t *Token) Owner() common.Address {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.owner
}

func (t *Token) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// Mint issues amount new units to the recipient. Owner only; the new total
// supply may never pass the ceiling, and the sum is overflow checked so a
// huge amount cannot wrap past it. Minting is not blocked by the pause gate.
func (t *Token) Mint(caller, to common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.authorize(caller); err != nil {
		return err
	}
	if to.IsZero() {
		return ErrInvalidRecipient
	}
	newSupply, overflow := new(uint256.Int).AddOverflow(t.ledger.TotalSupply(), amount)
	if overflow || newSupply.Gt(t.config.MaxSupply) {
		return ErrSupplyExceeded
	}
	if err := t.ledger.Mint(to, amount); err != nil {
		return err
	}
	if err := t.ledger.Commit(); err != nil {
		return err
	}
	t.eventBus.Publish(MintEvent{To: to, Amount: new(uint256.Int).Set(amount)})
	t.logger.Debugf("Minted %s to %s, totalSupply=%s",
		amount.ToBig().Text(10), to.B58String(), newSupply.ToBig().Text(10))
	return nil
}

// Transfer moves amount from the caller to a single recipient, gated by the
// pause flag.
func (t *Token) Transfer(caller, to common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.canTransfer(); err != nil {
		return err
	}
	if to.IsZero() {
		return ErrInvalidRecipient
	}
	if err := t.ledger.Transfer(caller, to, amount); err != nil {
		return err
	}
	if err := t.ledger.Commit(); err != nil {
		return err
	}
	t.eventBus.Publish(TransferEvent{From: caller, To: to, Amount: new(uint256.Int).Set(amount)})
	return nil
}

// Multisend disburses amounts[i] to recipients[i] for every i, all from the
// caller's balance, as one all-or-nothing call. Every precondition is
// checked before the first ledger write: pairing and batch shape, recipient
// addresses, the overflow-checked batch total, and the caller's solvency
// against that total. Recipients are paid in the supplied order and repeats
// are paid once per occurrence.
func (t *Token) Multisend(caller common.Address, recipients []common.Address, amounts []*uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.canTransfer(); err != nil {
		return err
	}
	if len(recipients) != len(amounts) {
		return ErrLengthMismatch
	}
	if len(recipients) == 0 {
		return ErrEmptyBatch
	}
	for _, to := range recipients {
		if to.IsZero() {
			return ErrInvalidRecipient
		}
	}
	total := uint256.NewInt(0)
	for _, amount := range amounts {
		var overflow bool
		total, overflow = new(uint256.Int).AddOverflow(total, amount)
		if overflow {
			return ErrBatchOverflow
		}
	}
	if t.ledger.BalanceOf(caller).Lt(total) {
		return ErrInsufficientBalance
	}
	for i, to := range recipients {
		// cannot fail: solvency was proven against the full total
		if err := t.ledger.Transfer(caller, to, amounts[i]); err != nil {
			t.ledger.reset()
			return err
		}
	}
	if err := t.ledger.Commit(); err != nil {
		return err
	}
	for i, to := range recipients {
		t.eventBus.Publish(TransferEvent{From: caller, To: to, Amount: new(uint256.Int).Set(amounts[i])})
	}
	t.logger.Debugf("Disbursed %s to %d recipients from %s",
		total.ToBig().Text(10), len(recipients), caller.B58String())
	return nil
}

// Pause blocks all transfers until Unpause. Owner only.
func (t *Token) Pause(caller common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.authorize(caller); err != nil {
		return err
	}
	if t.paused {
		return ErrAlreadyPaused
	}
	t.paused = true
	if err := t.writeMeta(); err != nil {
		t.paused = false
		return err
	}
	t.eventBus.Publish(PausedEvent{})
	t.logger.Infof("Transfers paused")
	return nil
}

func (t *Token) Unpause(caller common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.authorize(caller); err != nil {
		return err
	}
	if !t.paused {
		return ErrNotPaused
	}
	t.paused = false
	if err := t.writeMeta(); err != nil {
		t.paused = true
		return err
	}
	t.eventBus.Publish(UnpausedEvent{})
	t.logger.Infof("Transfers unpaused")
	return nil
}

// TransferOwnership hands the owner role to a non-zero account.
func (t *Token) TransferOwnership(caller, newOwner common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.authorize(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return ErrInvalidOwner
	}
	prev := t.owner
	t.owner = newOwner
	if err := t.writeMeta(); err != nil {
		t.owner = prev
		return err
	}
	t.eventBus.Publish(OwnershipEvent{Prev: prev, New: newOwner})
	t.logger.Infof("Ownership transferred: %s -> %s", prev.B58String(), newOwner.B58String())
	return nil
}
