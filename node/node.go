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

package node

import (
	"log"

	"captoken"
	"captoken/api"

	"github.com/sirupsen/logrus"
)

// Node is a container on which services can be registered.
type Node struct {
	config    *Config
	rpcServer *captoken.RPCServer
}

type Config struct {
	RPCConfig *captoken.RPCConfig
}

// New creates a new node, ready for service registration.
func New(config *Config) (*Node, error) {
	n := &Node{
		config: config,
	}
	n.rpcServer = captoken.NewRPCServer(config.RPCConfig)
	return n, nil
}

// Start runs the RPC service in a goroutine.
// Node can only be started once.
func (n *Node) Start() error {
	go func() {
		if err := n.rpcServer.Start(); err != nil {
			logrus.Errorln(err)
		}
	}()
	return nil
}

// RegisterBackend registers built-in APIs.
func (n *Node) RegisterBackend(
	token *captoken.Token,
	wallet *captoken.Wallet) error {
	tokenApiHandler := &api.TokenAPIHandler{
		Token:  token,
		Wallet: wallet,
	}
	walletApiHandler := &api.WalletHandler{
		Wallet: wallet,
	}
	if err := n.rpcServer.RegisterName("Token", tokenApiHandler); err != nil {
		log.Fatalf("RPC service register error: %s", err)
		return err
	}
	if err := n.rpcServer.RegisterName("Wallet", walletApiHandler); err != nil {
		log.Fatalf("RPC service register error: %s", err)
		return err
	}
	return nil
}
