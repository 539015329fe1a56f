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
	"encoding/hex"
	"sort"

	"captoken"
	"captoken/common"
)

type WalletHandler struct {
	Wallet *captoken.Wallet
}

type WalletByAddressArgs struct {
	Address string `json:"address"`
}

type WalletImportArgs struct {
	Key string `json:"key"`
}

type SetDefaultAddrArgs struct {
	Address string `json:"address"`
}

func (handler *WalletHandler) Create(_ EmptyArgs, resp *string) error {
	addr, err := handler.Wallet.AddByRandom()
	if err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	*resp = addr.B58String()
	return nil
}

func (handler *WalletHandler) Del(args WalletByAddressArgs, resp *interface{}) error {
	if args.Address == "" {
		return captoken.NewRPCError(-1006, "del wallet address not null")
	}
	if err := common.AddrCalibrator(args.Address); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	addr := common.StrB58ToAddress(args.Address)
	if err := handler.Wallet.Remove(addr); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	return nil
}

// List returns all wallet addresses, newest first.
func (handler *WalletHandler) List(_ EmptyArgs, resp *[]common.Address) error {
	data := handler.Wallet.All()
	var out walletEntries
	for addr := range data {
		r, err := handler.Wallet.GetWalletNewTime(addr)
		if err != nil {
			return err
		}
		out = append(out, &walletEntry{
			addr:    addr,
			newTime: int64(common.Byte2Int(r)),
		})
	}
	sort.Sort(out)
	result := make([]common.Address, 0)
	for i := 0; i < len(out); i++ {
		result = append(result, out[i].addr)
	}
	*resp = result
	return nil
}

func (handler *WalletHandler) GetDefaultAddress(_ EmptyArgs, resp *string) error {
	address := handler.Wallet.GetDefault()
	if address.IsZero() {
		return nil
	}
	*resp = address.B58String()
	return nil
}

func (handler *WalletHandler) SetDefaultAddress(args SetDefaultAddrArgs, _ **string) error {
	if args.Address == "" {
		return captoken.NewRPCError(-1006, "parameter cannot be empty")
	}
	if err := common.AddrCalibrator(args.Address); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	addr := common.StrB58ToAddress(args.Address)
	if err := handler.Wallet.SetDefault(addr); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	return nil
}

func (handler *WalletHandler) ExportByAddress(args WalletByAddressArgs, resp *string) error {
	if args.Address == "" {
		return captoken.NewRPCError(-1006, "parameter cannot be empty")
	}
	if err := common.AddrCalibrator(args.Address); err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	addr := common.StrB58ToAddress(args.Address)
	pk, err := handler.Wallet.Export(addr)
	if err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	*resp = "0x" + hex.EncodeToString(pk)
	return nil
}

func (handler *WalletHandler) ImportByPrivateKey(args WalletImportArgs, resp *string) error {
	if args.Key == "" {
		return captoken.NewRPCError(-1006, "parameter cannot be empty")
	}
	if len(args.Key) < 2 || args.Key[0:2] != "0x" {
		return captoken.NewRPCError(-1006, "key requires 0x prefix")
	}
	keyDer := common.Hex2bytes(args.Key)
	if keyDer == nil {
		return captoken.NewRPCError(-1006, "key is not valid hex")
	}
	addr, err := handler.Wallet.Import(keyDer)
	if err != nil {
		return captoken.NewRPCErrorCause(-6001, err)
	}
	*resp = addr.B58String()
	return nil
}
