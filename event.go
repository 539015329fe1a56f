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
	"reflect"
	"sync"
)

// EventBus dispatches events to registered receivers. Receivers subscribe
// by event type.
type EventBus struct {
	subs map[reflect.Type][]chan interface{}
	rw   sync.RWMutex
}

type Subscription struct {
	eb  *EventBus
	typ reflect.Type
	c   chan interface{}
}

func (s *Subscription) Chan() chan interface{} {
	return s.c
}

func (s *Subscription) Unsubscribe() {
	s.eb.unsubscribe(s.typ, s.c)
}

func NewEventBus() *EventBus {
	return &EventBus{
		subs: make(map[reflect.Type][]chan interface{}),
	}
}

func (e *EventBus) Subscript(t interface{}) *Subscription {
	e.rw.Lock()
	defer e.rw.Unlock()
	rtyp := reflect.TypeOf(t)
	subtion := &Subscription{
		typ: rtyp,
		c:   make(chan interface{}),
		eb:  e,
	}
	e.subs[rtyp] = append(e.subs[rtyp], subtion.c)
	return subtion
}

func (e *EventBus) Publish(data interface{}) {
	e.rw.RLock()
	defer e.rw.RUnlock()
	rtyp := reflect.TypeOf(data)
	if cs, found := e.subs[rtyp]; found {
		go func(d interface{}, cs []chan interface{}) {
			for _, ch := range cs {
				ch <- d
			}
		}(data, cs)
	}
}

// unsubscribe detaches c by identity. Positions shift as earlier
// subscribers leave, so the channel itself is the only stable handle.
func (e *EventBus) unsubscribe(t reflect.Type, c chan interface{}) {
	e.rw.Lock()
	defer e.rw.Unlock()
	old, found := e.subs[t]
	if !found {
		return
	}
	for i, ch := range old {
		if ch == c {
			e.subs[t] = append(old[:i], old[i+1:]...)
			return
		}
	}
}
