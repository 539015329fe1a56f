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
	"captoken/common"
)

type EmptyArgs = interface{}

// TokenInfoResp mirrors the public read surface of the token.
type TokenInfoResp struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    int    `json:"decimals"`
	MaxSupply   string `json:"max_supply"`
	TotalSupply string `json:"total_supply"`
	Owner       string `json:"owner"`
	Paused      bool   `json:"paused"`
}

type walletEntry struct {
	addr    common.Address
	newTime int64
}

type walletEntries []*walletEntry

func (w walletEntries) Len() int {
	return len(w)
}

func (w walletEntries) Less(i, j int) bool {
	return w[i].newTime > w[j].newTime
}

func (w walletEntries) Swap(i, j int) {
	w[i], w[j] = w[j], w[i]
}
