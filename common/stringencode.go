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
	"fmt"
	"sort"
	"strings"
)

// SortAndEncodeMap flattens a record into a deterministic "k=v&k=v" string.
// Keys are sorted so the encoding of the same record is stable.
func SortAndEncodeMap(data map[string]string) string {
	mapkeys := make([]string, 0)
	for k := range data {
		mapkeys = append(mapkeys, k)
	}
	sort.Strings(mapkeys)
	strbuf := ""
	for i, key := range mapkeys {
		val := data[key]
		if val == "" {
			continue
		}
		strbuf += fmt.Sprintf("%s=%s", key, val)
		if i < len(mapkeys)-1 {
			strbuf += "&"
		}
	}
	return strbuf
}

func StringDecodeMap(s string) map[string]string {
	if s == "" {
		return nil
	}
	kvs := strings.Split(s, "&")
	result := make(map[string]string)
	for _, kv := range kvs {
		mkv := strings.SplitN(kv, "=", 2)
		if len(mkv) < 2 {
			continue
		}
		result[mkv[0]] = mkv[1]
	}
	return result
}
