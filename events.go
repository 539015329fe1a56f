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
	"captoken/common"

	"github.com/holiman/uint256"
)

// MintEvent is published after new units are issued.
type MintEvent struct {
	To     common.Address
	Amount *uint256.Int
}

// TransferEvent is published once per recipient, including each pair of a
// batch disbursement.
type TransferEvent struct {
	From   common.Address
	To     common.Address
	Amount *uint256.Int
}

type PausedEvent struct{}

type UnpausedEvent struct{}

type OwnershipEvent struct {
	Prev common.Address
	New  common.Address
}
