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

package sub

import (
	"fmt"

	"captoken"
	"captoken/common"

	"github.com/spf13/cobra"
)

var (
	walletCommand = &cobra.Command{
		Use:                   "wallet <command> [options]",
		DisableFlagsInUseLine: true,
		Short:                 "get wallet info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	walletListCommand = &cobra.Command{
		Use:                   "list [options]",
		DisableFlagsInUseLine: true,
		Short:                 "get wallet address list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getWalletList()
		},
	}
	walletNewCommand = &cobra.Command{
		Use:                   "new [options]",
		DisableFlagsInUseLine: true,
		Short:                 "Create wallet address",
		RunE: func(cmd *cobra.Command, args []string) error {
			return walletNew()
		},
	}
	walletDelCommand = &cobra.Command{
		Use:                   "del [options] <address>",
		DisableFlagsInUseLine: true,
		Short:                 "Delete wallet <address>",
		RunE:                  walletDel,
	}
	walletSetAddrDefCommand = &cobra.Command{
		Use:                   "setdef [options] <address>",
		DisableFlagsInUseLine: true,
		Short:                 "set default wallet <address>",
		RunE:                  setWalletAddrDef,
	}
	walletGetAddrDefCommand = &cobra.Command{
		Use:                   "getdef [options]",
		DisableFlagsInUseLine: true,
		Short:                 "get default wallet address",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getWalletAddrDef()
		},
	}
	walletExportCommand = &cobra.Command{
		Use:                   "export [options] <address>",
		DisableFlagsInUseLine: true,
		Short:                 "export wallet <address>",
		RunE:                  runWalletExport,
	}
	walletImportCommand = &cobra.Command{
		Use:                   "import [options] <key>",
		DisableFlagsInUseLine: true,
		Short:                 "import wallet <key>",
		RunE:                  runWalletImport,
	}
)

func walletNew() error {
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var addr *string = nil
	err = cli.CallMethod(1, "Wallet.Create", nil, &addr)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Println(*addr)
	return nil
}

func walletDel(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	addrq := &getWalletByAddressArgs{
		Address: args[0],
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var r *interface{} = nil
	err = cli.CallMethod(1, "Wallet.Del", addrq, &r)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Println("Successfully deleted address")
	return nil
}

func runWalletExport(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	addrq := &getWalletByAddressArgs{
		Address: args[0],
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var r *string = nil
	err = cli.CallMethod(1, "Wallet.ExportByAddress", addrq, &r)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Printf("%s\n", *r)
	return nil
}

func runWalletImport(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	importrq := &walletImportArgs{
		Key: args[0],
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var r *string = nil
	err = cli.CallMethod(1, "Wallet.ImportByPrivateKey", importrq, &r)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Printf("%s\n", *r)
	return nil
}

func setWalletAddrDef(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	req := &setWalletAddrDefArgs{
		Address: args[0],
	}
	var r *string = nil
	err = cli.CallMethod(1, "Wallet.SetDefaultAddress", req, &r)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Printf("Successfully set default address\n")
	return nil
}

func getWalletAddrDef() error {
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var defStr *string = nil
	err = cli.CallMethod(1, "Wallet.GetDefaultAddress", nil, &defStr)
	if err != nil {
		return err
	}
	fmt.Println(*defStr)
	return nil
}

func getWalletList() error {
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	var defAddr common.Address
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	err = cli.CallMethod(1, "Wallet.GetDefaultAddress", nil, &defAddr)
	if err != nil {
		return err
	}
	walletAddress := make([]common.Address, 0)
	err = cli.CallMethod(1, "Wallet.List", nil, &walletAddress)
	if err != nil {
		return err
	}
	fmt.Print("Address                            Balance                       Default")
	fmt.Println()
	for _, addr := range walletAddress {
		var balance string
		req := &balanceOfArgs{
			Address: addr.B58String(),
		}
		err = cli.CallMethod(1, "Token.BalanceOf", &req, &balance)
		if err != nil {
			balance = "-"
		}
		def := ""
		if addr.Equals(defAddr) {
			def = "x"
		}
		fmt.Printf("%-34s %-29s %-7s\n", addr.B58String(), balance, def)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(walletCommand)
	walletCommand.AddCommand(walletListCommand)
	walletCommand.AddCommand(walletNewCommand)
	walletCommand.AddCommand(walletDelCommand)
	walletCommand.AddCommand(walletSetAddrDefCommand)
	walletCommand.AddCommand(walletGetAddrDefCommand)
	walletCommand.AddCommand(walletExportCommand)
	walletCommand.AddCommand(walletImportCommand)
}
