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
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

const Zero = 0

func Int2Byte(n int) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	return buf[:]
}

func Byte2Int(bs []byte) int {
	if len(bs) < 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(bs))
}

func Safeclose(fn func() error) {
	if err := fn(); err != nil {
		logrus.Errorf("Close err: %s", err)
	}
}
