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
	"os"
	"os/signal"
	"syscall"

	"captoken/backend"
	"captoken/common"
	"captoken/log"
	"captoken/node"
	"captoken/storage/badger"

	"github.com/sirupsen/logrus"

	"github.com/spf13/cobra"
)

var (
	rpcaddr   string
	datadir   string
	debug     bool
	daemonCmd = &cobra.Command{
		Use:                   "daemon [options]",
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		Short:                 "Start a captoken daemon process",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon()
		},
	}
)

func resetConfig(config *daemonConfig) {
	if datadir != "" {
		setupDataDir(&config.storageParams, datadir)
	}
	if rpcaddr != "" {
		config.nodeConfig.RPCConfig.ListenAddr = rpcaddr
	}
}

func runDaemon() error {
	var (
		err   error            = nil
		stack *node.Node       = nil
		back  *backend.Backend = nil
	)

	config, err := parseDaemonConfig(cfgFile)
	if err != nil {
		return err
	}
	resetConfig(&config)
	loglevel, err := logrus.ParseLevel(config.loggerParams.level)
	if err != nil {
		return err
	}

	logrus.SetFormatter(&log.Formatter{})
	logrus.SetLevel(loglevel)
	nodeConf := &config.nodeConfig
	nodeConf.RPCConfig.Logger = logrus.StandardLogger()
	if stack, err = node.New(nodeConf); err != nil {
		return err
	}
	keysDb, err := badger.New(config.storageParams.keysDir)
	if err != nil {
		return err
	}
	stateDb, err := badger.New(config.storageParams.stateDir)
	if err != nil {
		return err
	}
	defer func() {
		common.Safeclose(keysDb.Close)
		common.Safeclose(stateDb.Close)
	}()
	backparams := &config.backendParams
	backparams.Debug = debug
	if backparams.Debug {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.Debugf("Set debug mode")
	}
	if back, err = backend.NewBackend(stack, &backend.Config{
		Params:  backparams,
		StateDB: stateDb,
		KeysDB:  keysDb,
	}); err != nil {
		return err
	}
	if err = backend.StartNodeAndBackend(stack, back); err != nil {
		return err
	}
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
out:
	select {
	case s := <-c:
		switch s {
		case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
			break out
		}
	}
	return nil
}

func init() {
	mFlags := daemonCmd.PersistentFlags()
	mFlags.StringVarP(&rpcaddr, "rpcaddr", "r", "", "Set JSON-RPC Service listen address")
	mFlags.StringVarP(&datadir, "datadir", "d", "", "Set Data directory")
	mFlags.BoolVarP(&debug, "debug", "", false, "Enable debug")
	rootCmd.AddCommand(daemonCmd)
}
