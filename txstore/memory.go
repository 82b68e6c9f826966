package txstore

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// MemoryDB is a DB kept in a map.
type MemoryDB struct {
	lock          sync.RWMutex
	keyValueStore map[string][]byte
}

type memoryOperation struct {
	op    string
	key   []byte
	value []byte
}

type memoryBatch struct {
	operations []memoryOperation
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		keyValueStore: make(map[string][]byte),
	}
}

func (db *MemoryDB) Put(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.keyValueStore[string(key)] = common.CopyBytes(value)
	return nil
}

func (db *MemoryDB) Get(key []byte) (value []byte, err error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	value, isPresent := db.keyValueStore[string(key)]
	if !isPresent {
		return nil, ErrNotFound
	}
	return common.CopyBytes(value), nil
}

func (db *MemoryDB) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	_, isPresent := db.keyValueStore[string(key)]
	return isPresent, nil
}

func (db *MemoryDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	delete(db.keyValueStore, string(key))
	return nil
}

// Len returns the number of stored keys.
func (db *MemoryDB) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.keyValueStore)
}

func (db *MemoryDB) NewBatch() Batch {
	return &memoryBatch{}
}

func (db *MemoryDB) BatchWrite(batch Batch) error {
	b, ok := batch.(*memoryBatch)
	if !ok {
		return fmt.Errorf("batch of type %T was not created by this database", batch)
	}

	db.lock.Lock()
	defer db.lock.Unlock()
	for _, operation := range b.operations {
		if operation.op == "DELETE" {
			delete(db.keyValueStore, string(operation.key))
		} else if operation.op == "PUT" {
			db.keyValueStore[string(operation.key)] = operation.value
		}
	}
	return nil
}

func (db *MemoryDB) Close() error {
	return nil
}

func (b *memoryBatch) Put(key []byte, value []byte) {
	b.operations = append(b.operations, memoryOperation{
		op:    "PUT",
		key:   common.CopyBytes(key),
		value: common.CopyBytes(value),
	})
}

func (b *memoryBatch) Delete(key []byte) {
	b.operations = append(b.operations, memoryOperation{
		op:  "DELETE",
		key: common.CopyBytes(key),
	})
}
