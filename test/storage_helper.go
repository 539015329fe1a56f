package test

import (
	"bytes"

	"captoken/storage/badger"
)

// MemStorage is a map-backed badger.IStorage for tests.
type MemStorage struct {
	db map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		db: make(map[string][]byte),
	}
}

func (st *MemStorage) GetDBPath() string {
	return ""
}

func (st *MemStorage) Set(key string, val []byte) error {
	return st.SetData([]byte(key), val)
}

func (st *MemStorage) SetData(key []byte, val []byte) error {
	st.db[string(key)] = val
	return nil
}

func (st *MemStorage) Get(key string) ([]byte, error) {
	return st.GetData([]byte(key))
}

func (st *MemStorage) GetData(key []byte) ([]byte, error) {
	val, has := st.db[string(key)]
	if !has {
		return nil, badger.ErrNotFound
	}
	return val, nil
}

func (st *MemStorage) Del(key string) error {
	return st.DelData([]byte(key))
}

func (st *MemStorage) DelData(key []byte) error {
	delete(st.db, string(key))
	return nil
}

func (st *MemStorage) PrefixForeachData(prefix []byte, fn func(k []byte, v []byte) error) error {
	for key, val := range st.db {
		if !bytes.HasPrefix([]byte(key), prefix) {
			continue
		}
		if err := fn([]byte(key), val); err != nil {
			return err
		}
	}
	return nil
}

func (st *MemStorage) NewWriteBatch() *badger.StorageWriteBatch {
	return nil
}

func (st *MemStorage) CommitWriteBatch(batch *badger.StorageWriteBatch) error {
	return nil
}

func (st *MemStorage) Close() error { return nil }

// FaultyStorage wraps MemStorage with a switchable write failure.
type FaultyStorage struct {
	*MemStorage
	writeErr error
}

func NewFaultyStorage() *FaultyStorage {
	return &FaultyStorage{MemStorage: NewMemStorage()}
}

// FailWrites makes every subsequent write return err; nil restores
// normal behaviour.
func (st *FaultyStorage) FailWrites(err error) {
	st.writeErr = err
}

func (st *FaultyStorage) Set(key string, val []byte) error {
	return st.SetData([]byte(key), val)
}

func (st *FaultyStorage) SetData(key []byte, val []byte) error {
	if st.writeErr != nil {
		return st.writeErr
	}
	return st.MemStorage.SetData(key, val)
}
