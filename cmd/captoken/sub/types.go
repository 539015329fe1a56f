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

type getWalletByAddressArgs struct {
	Address string `json:"address"`
}

type walletImportArgs struct {
	Key string `json:"key"`
}

type setWalletAddrDefArgs struct {
	Address string `json:"address"`
}

type balanceOfArgs struct {
	Address string `json:"address"`
}

type mintArgs struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

type transferArgs struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

type multisendArgs struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Values string `json:"values"`
}

type pauseArgs struct {
	From string `json:"from"`
}

type transferOwnershipArgs struct {
	From string `json:"from"`
	To   string `json:"to"`
}
