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

package common

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	errNegativeAmount = errors.New("amount must not be negative")
	errAmountTooLarge = errors.New("amount out of range")
)

// ParseAmount converts a display-unit amount string ("1.25") into base
// units using the token decimals. Fractions below one base unit are rejected.
func ParseAmount(s string, decimals uint8) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %s", s, err)
	}
	if d.IsNegative() {
		return nil, errNegativeAmount
	}
	scaled := d.Shift(int32(decimals))
	if scaled.Exponent() < 0 && !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, decimals)
	}
	val, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return nil, errAmountTooLarge
	}
	return val, nil
}

// FormatAmount renders a base-unit amount in display units.
func FormatAmount(val *uint256.Int, decimals uint8) string {
	if val == nil {
		return "0"
	}
	d := decimal.NewFromBigInt(val.ToBig(), -int32(decimals))
	return d.String()
}

// ParseUnits parses a raw base-unit integer string.
func ParseUnits(s string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("parse units %q failed", s)
	}
	if b.Sign() < 0 {
		return nil, errNegativeAmount
	}
	val, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errAmountTooLarge
	}
	return val, nil
}
