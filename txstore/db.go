package txstore

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// ErrNotFound is returned by DB.Get for a missing key.
var ErrNotFound = errors.New("not found")

// Batch collects writes that are applied together by DB.BatchWrite.
type Batch interface {
	Put(key []byte, value []byte)
	Delete(key []byte)
}

type DB interface {
	Put(key []byte, value []byte) error
	Get(key []byte) (value []byte, err error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	NewBatch() Batch
	BatchWrite(batch Batch) error
	Close() error
}

// Database is a DB backed by LevelDB.
type Database struct {
	keyValueDB *leveldb.DB
}

func NewDatabase(levelDB *leveldb.DB) *Database {
	return &Database{keyValueDB: levelDB}
}

// OpenDatabase opens or creates the LevelDB directory at path.
func OpenDatabase(path string) (*Database, error) {
	levelDB, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("could not open database %v: %w", path, err)
	}
	return NewDatabase(levelDB), nil
}

func (db *Database) Put(key []byte, value []byte) error {
	return db.keyValueDB.Put(key, value, nil)
}

func (db *Database) Get(key []byte) (value []byte, err error) {
	data, err := db.keyValueDB.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

func (db *Database) Has(key []byte) (bool, error) {
	return db.keyValueDB.Has(key, nil)
}

func (db *Database) Delete(key []byte) error {
	return db.keyValueDB.Delete(key, nil)
}

func (db *Database) NewBatch() Batch {
	return new(leveldb.Batch)
}

func (db *Database) BatchWrite(batch Batch) error {
	levelBatch, ok := batch.(*leveldb.Batch)
	if !ok {
		return fmt.Errorf("batch of type %T was not created by this database", batch)
	}
	return db.keyValueDB.Write(levelBatch, nil)
}

func (db *Database) Close() error {
	return db.keyValueDB.Close()
}
