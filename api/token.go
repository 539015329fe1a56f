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

package api

import (
	"strings"

	"captoken"
	"captoken/common"

	"github.com/holiman/uint256"
)

type TokenAPIHandler struct {
	Token  *captoken.Token
	Wallet *captoken.Wallet
}

type BalanceOfArgs struct {
	Address string `json:"address"`
}

type MintArgs struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

type TransferArgs struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// MultisendArgs carries the batch as comma separated lists. To and
// Values must decode to the same number of entries.
type MultisendArgs struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Values string `json:"values"`
}

type PauseArgs struct {
	From string `json:"from"`
}

type TransferOwnershipArgs struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// resolveCaller maps an optional from argument to a wallet address.
// An empty value falls back to the default wallet address. The named
// address must be one whose key this daemon's wallet holds; the wallet
// is the only caller identity there is.
func (handler *TokenAPIHandler) resolveCaller(from string) (common.Address, error) {
	if from == "" {
		addr := handler.Wallet.GetDefault()
		if addr.IsZero() {
			return common.ZeroAddr, captoken.NewRPCError(-1006, "no default wallet address, create one first")
		}
		return addr, nil
	}
	if err := common.AddrCalibrator(from); err != nil {
		return common.ZeroAddr, captoken.NewRPCErrorCause(-6001, err)
	}
	addr := common.StrB58ToAddress(from)
	if !handler.Wallet.Contains(addr) {
		return common.ZeroAddr, captoken.NewRPCError(-6001, "from address not found in wallet")
	}
	return addr, nil
}

func (handler *TokenAPIHandler) parseValue(val string) (*uint256.Int, error) {
	if val == "" {
		return nil, captoken.NewRPCError(-1006, "value not be empty")
	}
	amount, err := common.ParseAmount(val, handler.Token.Decimals())
	if err != nil {
		return nil, captoken.NewRPCErrorCause(-1006, err)
	}
	return amount, nil
}

func (handler *TokenAPIHandler) GetInfo(_ EmptyArgs, resp *TokenInfoResp) error {
	token := handler.Token
	owner := token.Owner()
	maxSupply := token.MaxSupply()
	totalSupply := token.TotalSupply()
	*resp = TokenInfoResp{
		Name:        token.Name(),
		Symbol:      token.Symbol(),
		Decimals:    int(token.Decimals()),
		MaxSupply:   common.FormatAmount(maxSupply, token.Decimals()),
		TotalSupply: common.FormatAmount(totalSupply, token.Decimals()),
		Owner:       owner.B58String(),
		Paused:      token.Paused(),
	}
	return nil
}

func (handler *TokenAPIHandler) MaxSupply(_ EmptyArgs, resp *string) error {
	*resp = handler.Token.MaxSupply().String()
	return nil
}

func (handler *TokenAPIHandler) TotalSupply(_ EmptyArgs, resp *string) error {
	*resp = handler.Token.TotalSupply().String()
	return nil
}

func (handler *TokenAPIHandler) BalanceOf(args BalanceOfArgs, resp *string) error {
	if args.Address == "" {
		return captoken.NewRPCError(-1006, "parameter cannot be empty")
	}
	if err := common.AddrCalibrator(args.Address); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	addr := common.StrB58ToAddress(args.Address)
	balance := handler.Token.BalanceOf(addr)
	*resp = common.FormatAmount(balance, handler.Token.Decimals())
	return nil
}

func (handler *TokenAPIHandler) Owner(_ EmptyArgs, resp *string) error {
	owner := handler.Token.Owner()
	*resp = owner.B58String()
	return nil
}

func (handler *TokenAPIHandler) Paused(_ EmptyArgs, resp *bool) error {
	*resp = handler.Token.Paused()
	return nil
}

func (handler *TokenAPIHandler) Mint(args MintArgs, resp *string) error {
	caller, err := handler.resolveCaller(args.From)
	if err != nil {
		return err
	}
	if args.To == "" {
		return captoken.NewRPCError(-1006, "to address not be empty")
	}
	if err = common.AddrCalibrator(args.To); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	to := common.StrB58ToAddress(args.To)
	amount, err := handler.parseValue(args.Value)
	if err != nil {
		return err
	}
	if err = handler.Token.Mint(caller, to, amount); err != nil {
		return captoken.NewRPCErrorCause(-32001, err)
	}
	*resp = handler.Token.TotalSupply().String()
	return nil
}

func (handler *TokenAPIHandler) Transfer(args TransferArgs, resp *string) error {
	caller, err := handler.resolveCaller(args.From)
	if err != nil {
		return err
	}
	if args.To == "" {
		return captoken.NewRPCError(-1006, "to address not be empty")
	}
	if err = common.AddrCalibrator(args.To); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	to := common.StrB58ToAddress(args.To)
	amount, err := handler.parseValue(args.Value)
	if err != nil {
		return err
	}
	if err = handler.Token.Transfer(caller, to, amount); err != nil {
		return captoken.NewRPCErrorCause(-32001, err)
	}
	balance := handler.Token.BalanceOf(caller)
	*resp = common.FormatAmount(balance, handler.Token.Decimals())
	return nil
}

func (handler *TokenAPIHandler) Multisend(args MultisendArgs, resp *string) error {
	caller, err := handler.resolveCaller(args.From)
	if err != nil {
		return err
	}
	if args.To == "" || args.Values == "" {
		return captoken.NewRPCError(-1006, "to and values not be empty")
	}
	tos := strings.Split(args.To, ",")
	vals := strings.Split(args.Values, ",")
	recipients := make([]common.Address, 0, len(tos))
	for _, item := range tos {
		item = strings.TrimSpace(item)
		if err = common.AddrCalibrator(item); err != nil {
			return captoken.NewRPCErrorCause(-6001, err)
		}
		recipients = append(recipients, common.StrB58ToAddress(item))
	}
	amounts := make([]*uint256.Int, 0, len(vals))
	for _, item := range vals {
		amount, err := handler.parseValue(strings.TrimSpace(item))
		if err != nil {
			return err
		}
		amounts = append(amounts, amount)
	}
	if err = handler.Token.Multisend(caller, recipients, amounts); err != nil {
		return captoken.NewRPCErrorCause(-32001, err)
	}
	balance := handler.Token.BalanceOf(caller)
	*resp = common.FormatAmount(balance, handler.Token.Decimals())
	return nil
}

func (handler *TokenAPIHandler) Pause(args PauseArgs, resp *bool) error {
	caller, err := handler.resolveCaller(args.From)
	if err != nil {
		return err
	}
	if err = handler.Token.Pause(caller); err != nil {
		return captoken.NewRPCErrorCause(-32001, err)
	}
	*resp = true
	return nil
}

func (handler *TokenAPIHandler) Unpause(args PauseArgs, resp *bool) error {
	caller, err := handler.resolveCaller(args.From)
	if err != nil {
		return err
	}
	if err = handler.Token.Unpause(caller); err != nil {
		return captoken.NewRPCErrorCause(-32001, err)
	}
	*resp = true
	return nil
}

func (handler *TokenAPIHandler) TransferOwnership(args TransferOwnershipArgs, resp *string) error {
	caller, err := handler.resolveCaller(args.From)
	if err != nil {
		return err
	}
	if args.To == "" {
		return captoken.NewRPCError(-1006, "to address not be empty")
	}
	if err = common.AddrCalibrator(args.To); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	newOwner := common.StrB58ToAddress(args.To)
	if err = handler.Token.TransferOwnership(caller, newOwner); err != nil {
		return captoken.NewRPCErrorCause(-32001, err)
	}
	*resp = newOwner.B58String()
	return nil
}
