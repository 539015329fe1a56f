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
	"os"
	"path/filepath"
	"strings"
	"time"

	"captoken"
	"captoken/backend"
	"captoken/common"
	"captoken/node"

	"github.com/spf13/viper"
)

const (
	defaultConfigFile        = "./config.yml"
	defaultStorageDir        = ".captoken"
	defaultStateDir          = "state"
	defaultKeysDir           = "keys"
	defaultRPCClientAPIHost  = "127.0.0.1:9094"
	defaultNodeRPCListenAddr = "127.0.0.1:9094"
	defaultLoggerLevel       = "INFO"
	defaultCliTimeOut        = "180s"
	defaultTokenName         = "Capped Token"
	defaultTokenSymbol       = "CAP"
	defaultTokenDecimals     = uint8(18)
	defaultTokenMaxSupply    = "1000000"
)

type storageParams struct {
	dataDir  string
	keysDir  string
	stateDir string
}

type loggerParams struct {
	level string
}

type daemonConfig struct {
	loggerParams  loggerParams
	storageParams storageParams
	nodeConfig    node.Config
	backendParams backend.Params
}

type clientConfig struct {
	rpcClientApiHost    string
	rpcClientApiTimeOut string
}

func readFromConfigPath(v *viper.Viper, customFile string) error {
	filename := filepath.Base(defaultConfigFile)
	ext := filepath.Ext(defaultConfigFile)
	configPath := filepath.Dir(defaultConfigFile)
	v.AddConfigPath("$HOME/.captoken")
	v.AddConfigPath("/etc/captoken")
	v.AddConfigPath(configPath)
	v.SetConfigType(strings.TrimPrefix(ext, "."))
	v.SetConfigName(strings.TrimSuffix(filename, ext))
	v.SetConfigFile(customFile)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return nil
}

func parseConfigLoggerParams(v *viper.Viper) loggerParams {
	params := loggerParams{}
	params.level = v.GetString("logger.level")
	if params.level == "" {
		params.level = defaultLoggerLevel
	}
	return params
}

func setupDataDir(params *storageParams, datadir string) {
	if datadir != "" && params.dataDir != datadir {
		np := new(storageParams)
		np.dataDir = datadir
		*params = *np
	}
	if params.stateDir == "" {
		params.stateDir = filepath.Join(
			params.dataDir, defaultStateDir)
	}
	if params.keysDir == "" {
		params.keysDir = filepath.Join(
			params.dataDir, defaultKeysDir)
	}
}

func parseConfigStorageParams(v *viper.Viper) storageParams {
	params := storageParams{}
	params.dataDir = v.GetString("storage.datadir")
	params.stateDir = v.GetString("storage.statedir")
	params.keysDir = v.GetString("storage.keysdir")
	if params.dataDir == "" {
		home := os.Getenv("HOME")
		params.dataDir = filepath.Join(
			home, defaultStorageDir)
	}
	setupDataDir(&params, params.dataDir)
	return params
}

func parseConfigNodeParams(v *viper.Viper) node.Config {
	config := node.Config{
		RPCConfig: new(captoken.RPCConfig),
	}
	config.RPCConfig.ListenAddr = v.GetString("rpcserver.listen")
	if config.RPCConfig.ListenAddr == "" {
		config.RPCConfig.ListenAddr = defaultNodeRPCListenAddr
	}
	return config
}

func parseConfigBackendParams(v *viper.Viper) backend.Params {
	config := backend.Params{}
	config.TokenName = v.GetString("token.name")
	config.TokenSymbol = v.GetString("token.symbol")
	config.MaxSupply = v.GetString("token.maxsupply")
	decimals := v.GetUint("token.decimals")
	owner := v.GetString("token.owner")
	if owner != "" {
		config.Owner = common.StrB58ToAddress(owner)
	}
	if config.TokenName == "" {
		config.TokenName = defaultTokenName
	}
	if config.TokenSymbol == "" {
		config.TokenSymbol = defaultTokenSymbol
	}
	if config.MaxSupply == "" {
		config.MaxSupply = defaultTokenMaxSupply
	}
	if decimals == 0 && !v.IsSet("token.decimals") {
		config.TokenDecimals = defaultTokenDecimals
	} else {
		config.TokenDecimals = uint8(decimals)
	}
	return config
}

func parseDaemonConfig(configFilePath string) (daemonConfig, error) {
	config := viper.New()
	if err := readFromConfigPath(config, configFilePath); err != nil {
	}
	mStorageParams := parseConfigStorageParams(config)
	mBackendParams := parseConfigBackendParams(config)
	mLoggerParams := parseConfigLoggerParams(config)
	nodeParams := parseConfigNodeParams(config)
	return daemonConfig{
		loggerParams:  mLoggerParams,
		storageParams: mStorageParams,
		nodeConfig:    nodeParams,
		backendParams: mBackendParams,
	}, nil
}

func parseClientConfig(configFilePath string) (clientConfig, error) {
	config := viper.New()
	if err := readFromConfigPath(config, configFilePath); err != nil {
	}
	mRpcClientApiHost := config.GetString("rpclient.apihost")
	if rpchost == "" {
		if mRpcClientApiHost == "" {
			mRpcClientApiHost = fmt.Sprintf("http://%s", defaultRPCClientAPIHost)
		}
	} else {
		mRpcClientApiHost = fmt.Sprintf("http://%s", rpchost)
	}
	mRpcClientApiTimeOut := config.GetString("rpclient.timeout")
	if mRpcClientApiTimeOut == "" {
		mRpcClientApiTimeOut = defaultCliTimeOut
	}
	timeDur, err := time.ParseDuration(mRpcClientApiTimeOut)
	if err != nil {
		return clientConfig{}, err
	}
	times := timeDur.Seconds()
	if times < 1 && times > 3*60 {
		return clientConfig{}, fmt.Errorf("time overflow")
	}
	return clientConfig{
		rpcClientApiHost:    mRpcClientApiHost,
		rpcClientApiTimeOut: mRpcClientApiTimeOut,
	}, nil
}
