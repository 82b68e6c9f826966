// Package txstore keeps transactions by hash together with their senders, so
// that loading a transaction does not repeat signature recovery.
package txstore

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/veritas-L2/ethtx"
)

var (
	txPrefix     = []byte("t") // txPrefix + hash -> encoded transaction
	senderPrefix = []byte("s") // senderPrefix + hash -> sender address
)

func txKey(hash common.Hash) []byte {
	return append(append([]byte{}, txPrefix...), hash.Bytes()...)
}

func senderKey(hash common.Hash) []byte {
	return append(append([]byte{}, senderPrefix...), hash.Bytes()...)
}

// Store persists transactions in a DB.
type Store struct {
	db DB
}

func New(db DB) *Store {
	return &Store{db: db}
}

// Put stores tx and its sender. A transaction whose sender cannot be
// recovered is rejected.
func (s *Store) Put(tx *ethtx.Transaction) (common.Hash, error) {
	from, err := tx.Sender()
	if err != nil {
		return common.Hash{}, err
	}
	enc, err := tx.MarshalBinary()
	if err != nil {
		return common.Hash{}, err
	}

	hash := tx.Hash()
	batch := s.db.NewBatch()
	batch.Put(txKey(hash), enc)
	batch.Put(senderKey(hash), from.Bytes())
	if err := s.db.BatchWrite(batch); err != nil {
		return common.Hash{}, fmt.Errorf("could not store transaction %v: %w", hash, err)
	}

	log.Debug("Stored transaction", "hash", hash, "from", from, "size", len(enc))
	return hash, nil
}

// Get loads the transaction with the given hash. The stored sender is set on
// the transaction without recovering it.
func (s *Store) Get(hash common.Hash) (*ethtx.Transaction, error) {
	enc, err := s.db.Get(txKey(hash))
	if err != nil {
		return nil, err
	}
	tx, err := ethtx.DecodeTransaction(enc)
	if err != nil {
		return nil, fmt.Errorf("could not decode transaction %v: %w", hash, err)
	}
	if tx.Hash() != hash {
		return nil, fmt.Errorf("stored transaction %v has hash %v", hash, tx.Hash())
	}

	from, err := s.db.Get(senderKey(hash))
	switch {
	case err == nil && len(from) == common.AddressLength:
		tx.SetSender(common.BytesToAddress(from))
	case err != nil && !errors.Is(err, ErrNotFound):
		return nil, err
	}

	log.Debug("Loaded transaction", "hash", hash)
	return tx, nil
}

// Has reports whether a transaction with the given hash is stored.
func (s *Store) Has(hash common.Hash) (bool, error) {
	return s.db.Has(txKey(hash))
}

// Delete removes the transaction with the given hash and its sender.
func (s *Store) Delete(hash common.Hash) error {
	batch := s.db.NewBatch()
	batch.Delete(txKey(hash))
	batch.Delete(senderKey(hash))
	if err := s.db.BatchWrite(batch); err != nil {
		return fmt.Errorf("could not delete transaction %v: %w", hash, err)
	}
	log.Debug("Deleted transaction", "hash", hash)
	return nil
}
