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
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	AddrLen               = 25
	AddrCheckSumLen       = 4
	DefaultAddressVersion = 1
)

// Address is a versioned account identifier: one version byte, a 20 byte
// public key hash and a 4 byte checksum.
type Address [AddrLen]byte

var ZeroAddr = Address{}

func Hex2bytes(s string) []byte {
	if len(s) > 1 {
		if s[0:2] == "0x" {
			s = s[2:]
		}
		if len(s)%2 == 1 {
			s = "0" + s
		}
		bs, err := hex.DecodeString(s)
		if err != nil {
			return nil
		}
		return bs
	}
	return nil
}

func Bytes2Address(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

func B58ToAddress(enc []byte) Address {
	return Bytes2Address(B58Decode(enc))
}

func StrB58ToAddress(enc string) Address {
	return B58ToAddress([]byte(enc))
}

func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddrLen:]
	}
	copy(a[AddrLen-len(b):], b)
}

func (a *Address) Bytes() []byte {
	return a[:]
}

func (a *Address) Hex() string {
	if a.IsZero() {
		return ""
	}
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether a is the null account.
func (a *Address) IsZero() bool {
	return bytes.Equal(a[:], ZeroAddr[:])
}

func (a *Address) B58() []byte {
	if a.IsZero() {
		return nil
	}
	return B58Encode(a.Bytes())
}

func (a *Address) B58String() string {
	return string(a.B58())
}

func (a *Address) String() string {
	if a.IsZero() {
		return ""
	}
	return a.B58String()
}

func (a *Address) Version() uint8 {
	return a[0]
}

func (a *Address) PubKeyHash() []byte {
	return a[1 : AddrLen-AddrCheckSumLen]
}

func (a *Address) Payload() []byte {
	return a[:AddrLen-AddrCheckSumLen]
}

func (a *Address) Checksum() []byte {
	return a[AddrLen-AddrCheckSumLen:]
}

func (a *Address) Equals(b Address) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}

func (a *Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.B58())), nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	if data == nil || len(data) < 2 {
		a.SetBytes([]byte{0})
		return nil
	}
	b58a := B58ToAddress(data[1 : len(data)-1])
	a.SetBytes(b58a.Bytes())
	return nil
}

// AddrCalibrator validates the base58 form of an address before it is used
// as an RPC parameter.
func AddrCalibrator(val string) error {
	addr := B58Decode([]byte(val))
	if len(addr) != AddrLen {
		return errors.New("parameter byte length rule failed")
	}
	return nil
}
