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

package badger

import (
	"errors"

	badgerdb "github.com/dgraph-io/badger/v3"
)

var ErrNotFound = errors.New("key not found")

// IStorage is the key-value surface the ledger, keystore and metadata
// records are written through. The daemon backs it with badger; tests back
// it with an in-memory map.
type IStorage interface {
	GetDBPath() string
	Set(key string, val []byte) error
	SetData(key []byte, val []byte) error
	Get(key string) ([]byte, error)
	GetData(key []byte) ([]byte, error)
	Del(key string) error
	DelData(key []byte) error
	PrefixForeachData(prefix []byte, fn func(k []byte, v []byte) error) error
	NewWriteBatch() *StorageWriteBatch
	CommitWriteBatch(batch *StorageWriteBatch) error
	Close() error
}

// StorageWriteBatch collects writes that are flushed in one shot.
type StorageWriteBatch struct {
	wb *badgerdb.WriteBatch
}

func (b *StorageWriteBatch) Put(key []byte, val []byte) error {
	return b.wb.Set(key, val)
}

func (b *StorageWriteBatch) Delete(key []byte) error {
	return b.wb.Delete(key)
}

// Storage is the badger-backed IStorage used by the daemon.
type Storage struct {
	db       *badgerdb.DB
	pathname string
}

func New(pathname string) (*Storage, error) {
	opts := badgerdb.DefaultOptions(pathname)
	opts.Logger = nil
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{
		db:       db,
		pathname: pathname,
	}, nil
}

func (s *Storage) GetDBPath() string {
	return s.pathname
}

func (s *Storage) Set(key string, val []byte) error {
	return s.SetData([]byte(key), val)
}

func (s *Storage) SetData(key []byte, val []byte) error {
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, val)
	})
}

func (s *Storage) Get(key string) ([]byte, error) {
	return s.GetData([]byte(key))
}

func (s *Storage) GetData(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badgerdb.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *Storage) Del(key string) error {
	return s.DelData([]byte(key))
}

func (s *Storage) DelData(key []byte) error {
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	})
}

func (s *Storage) PrefixForeachData(prefix []byte, fn func(k []byte, v []byte) error) error {
	return s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err = fn(item.KeyCopy(nil), val); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) NewWriteBatch() *StorageWriteBatch {
	return &StorageWriteBatch{
		wb: s.db.NewWriteBatch(),
	}
}

func (s *Storage) CommitWriteBatch(batch *StorageWriteBatch) error {
	if batch == nil || batch.wb == nil {
		return errors.New("nil write batch")
	}
	return batch.wb.Flush()
}

func (s *Storage) Close() error {
	return s.db.Close()
}
