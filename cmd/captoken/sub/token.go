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
	fromAddr     string
	tokenCommand = &cobra.Command{
		Use:                   "token <command> [options]",
		DisableFlagsInUseLine: true,
		Short:                 "get token info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	tokenInfoCommand = &cobra.Command{
		Use:                   "info [options]",
		DisableFlagsInUseLine: true,
		Short:                 "get token metadata and supply",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getTokenInfo()
		},
	}
	tokenBalanceCommand = &cobra.Command{
		Use:                   "balance [options] <address>",
		DisableFlagsInUseLine: true,
		Short:                 "get token balance of <address>",
		RunE:                  getTokenBalance,
	}
	tokenMintCommand = &cobra.Command{
		Use:                   "mint [options] <address> <value>",
		DisableFlagsInUseLine: true,
		Short:                 "Mint new tokens to the specified address",
		RunE:                  runTokenMint,
	}
	tokenSendCommand = &cobra.Command{
		Use:                   "send [options] <address> <value>",
		DisableFlagsInUseLine: true,
		Short:                 "Send tokens to the specified destination address",
		RunE:                  runTokenSend,
	}
	tokenMultisendCommand = &cobra.Command{
		Use:                   "multisend [options] <address,address,...> <value,value,...>",
		DisableFlagsInUseLine: true,
		Short:                 "Send tokens to many recipients in one atomic batch",
		RunE:                  runTokenMultisend,
	}
	tokenPauseCommand = &cobra.Command{
		Use:                   "pause [options]",
		DisableFlagsInUseLine: true,
		Short:                 "Pause all token transfers",
		RunE:                  runTokenPause,
	}
	tokenUnpauseCommand = &cobra.Command{
		Use:                   "unpause [options]",
		DisableFlagsInUseLine: true,
		Short:                 "Resume token transfers",
		RunE:                  runTokenUnpause,
	}
	tokenSetOwnerCommand = &cobra.Command{
		Use:                   "setowner [options] <address>",
		DisableFlagsInUseLine: true,
		Short:                 "Transfer token ownership to <address>",
		RunE:                  runTokenSetOwner,
	}
)

func getTokenInfo() error {
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	result := make(map[string]interface{}, 1)
	err = cli.CallMethod(1, "Token.GetInfo", nil, &result)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	bs, err := common.MarshalIndent(result)
	if err != nil {
		return err
	}
	fmt.Println(string(bs))
	return nil
}

func getTokenBalance(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var result string
	req := &balanceOfArgs{
		Address: args[0],
	}
	err = cli.CallMethod(1, "Token.BalanceOf", &req, &result)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	fmt.Println(result)
	return nil
}

func runTokenMint(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var result string
	req := &mintArgs{
		To:    args[0],
		Value: args[1],
	}
	if fromAddr != "" {
		req.From = fromAddr
	}
	err = cli.CallMethod(1, "Token.Mint", &req, &result)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	fmt.Printf("Minted, total supply: %s\n", result)
	return nil
}

func runTokenSend(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var result string
	req := &transferArgs{
		To:    args[0],
		Value: args[1],
	}
	if fromAddr != "" {
		req.From = fromAddr
	}
	err = cli.CallMethod(1, "Token.Transfer", &req, &result)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	fmt.Printf("Sent, balance: %s\n", result)
	return nil
}

func runTokenMultisend(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var result string
	req := &multisendArgs{
		To:     args[0],
		Values: args[1],
	}
	if fromAddr != "" {
		req.From = fromAddr
	}
	err = cli.CallMethod(1, "Token.Multisend", &req, &result)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	fmt.Printf("Sent, balance: %s\n", result)
	return nil
}

func runTokenPause(cmd *cobra.Command, args []string) error {
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var result bool
	req := &pauseArgs{}
	if fromAddr != "" {
		req.From = fromAddr
	}
	err = cli.CallMethod(1, "Token.Pause", &req, &result)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	fmt.Println("Transfers paused")
	return nil
}

func runTokenUnpause(cmd *cobra.Command, args []string) error {
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var result bool
	req := &pauseArgs{}
	if fromAddr != "" {
		req.From = fromAddr
	}
	err = cli.CallMethod(1, "Token.Unpause", &req, &result)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	fmt.Println("Transfers resumed")
	return nil
}

func runTokenSetOwner(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return cmd.Help()
	}
	config, err := parseClientConfig(cfgFile)
	if err != nil {
		return err
	}
	cli := captoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	var result string
	req := &transferOwnershipArgs{
		To: args[0],
	}
	if fromAddr != "" {
		req.From = fromAddr
	}
	err = cli.CallMethod(1, "Token.TransferOwnership", &req, &result)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	fmt.Printf("Ownership transferred to %s\n", result)
	return nil
}

func init() {
	rootCmd.AddCommand(tokenCommand)
	tokenCommand.AddCommand(tokenInfoCommand)
	tokenCommand.AddCommand(tokenBalanceCommand)
	tokenCommand.AddCommand(tokenMintCommand)
	tokenCommand.AddCommand(tokenSendCommand)
	tokenCommand.AddCommand(tokenMultisendCommand)
	tokenCommand.AddCommand(tokenPauseCommand)
	tokenCommand.AddCommand(tokenUnpauseCommand)
	tokenCommand.AddCommand(tokenSetOwnerCommand)
	mintFlags := tokenMintCommand.PersistentFlags()
	mintFlags.StringVarP(&fromAddr, "from", "f", "", "Set from address")
	sendFlags := tokenSendCommand.PersistentFlags()
	sendFlags.StringVarP(&fromAddr, "from", "f", "", "Set from address")
	multisendFlags := tokenMultisendCommand.PersistentFlags()
	multisendFlags.StringVarP(&fromAddr, "from", "f", "", "Set from address")
	pauseFlags := tokenPauseCommand.PersistentFlags()
	pauseFlags.StringVarP(&fromAddr, "from", "f", "", "Set from address")
	unpauseFlags := tokenUnpauseCommand.PersistentFlags()
	unpauseFlags.StringVarP(&fromAddr, "from", "f", "", "Set from address")
	setOwnerFlags := tokenSetOwnerCommand.PersistentFlags()
	setOwnerFlags.StringVarP(&fromAddr, "from", "f", "", "Set from address")
}
