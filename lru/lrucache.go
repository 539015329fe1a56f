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

package lru

import (
	"container/list"
	"sync"

	"captoken/common"
)

// Cache is a fixed-size cache of byte values keyed by address, with
// least-recently-used eviction.
type Cache struct {
	mu     sync.Mutex
	size   int
	items  map[common.Address]*list.Element
	access *list.List
}

type cacheData struct {
	key common.Address
	val []byte
}

func NewCache(size int) *Cache {
	return &Cache{
		size:   size,
		items:  make(map[common.Address]*list.Element, size),
		access: list.New(),
	}
}

func (c *Cache) Get(key common.Address) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}

	c.access.MoveToFront(elem)

	return elem.Value.(*cacheData).val, ok
}

func (c *Cache) GetOrPut(key common.Address, val []byte) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]

	if ok {
		val = elem.Value.(*cacheData).val
		c.access.MoveToFront(elem)
	} else {
		c.items[key] = c.access.PushFront(&cacheData{
			key: key,
			val: val,
		})
		for len(c.items) > c.size {
			back := c.access.Back()
			info := back.Value.(*cacheData)
			delete(c.items, info.key)
			c.access.Remove(back)
		}
	}
	return val, ok
}

func (c *Cache) Put(key common.Address, val []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if ok {
		elem.Value.(*cacheData).val = val
		c.access.MoveToFront(elem)
	} else {
		c.items[key] = c.access.PushFront(&cacheData{
			key: key,
			val: val,
		})
		for len(c.items) > c.size {
			back := c.access.Back()
			info := back.Value.(*cacheData)
			delete(c.items, info.key)
			c.access.Remove(back)
		}
	}
}

func (c *Cache) Remove(key common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if ok {
		delete(c.items, key)
		c.access.Remove(elem)
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
