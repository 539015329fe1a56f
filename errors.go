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

import "errors"

var (
	// construction
	ErrInvalidMaxSupply = errors.New("max supply must be greater than zero")
	ErrInvalidOwner     = errors.New("owner must not be the zero address")
	ErrTokenNotDeployed = errors.New("token not deployed")

	// authorization and gate
	ErrUnauthorized    = errors.New("caller is not the owner")
	ErrTransfersPaused = errors.New("transfers are paused")
	ErrAlreadyPaused   = errors.New("already paused")
	ErrNotPaused       = errors.New("not paused")

	// issuance and disbursement
	ErrSupplyExceeded      = errors.New("mint would exceed max supply")
	ErrLengthMismatch      = errors.New("recipients and amounts length mismatch")
	ErrEmptyBatch          = errors.New("empty batch")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidRecipient    = errors.New("recipient must not be the zero address")
	ErrBatchOverflow       = errors.New("batch total overflows")
)
