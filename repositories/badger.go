package repositories

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.Store[domain.SuspensionRecord] = (*BadgerStore[domain.SuspensionRecord])(nil)

// Codec turns a record into badger values and back.
type Codec[V any] interface {
	Marshal(value V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// BadgerStore keeps one namespace of participant records in BadgerDB.
// Keys are formatted as "{namespace}:{participant_id}" so that a prefix scan
// walks exactly one namespace.
type BadgerStore[V any] struct {
	db        *badger.DB
	log       *slog.Logger
	namespace string
	codec     Codec[V]
}

func NewBadgerStore[V any](db *badger.DB, log *slog.Logger, namespace string, codec Codec[V]) *BadgerStore[V] {
	return &BadgerStore[V]{db: db, log: log, namespace: namespace, codec: codec}
}

// OpenBadger opens BadgerDB on path, or purely in memory when path is empty.
// State is rebuilt from live events: records left on disk by a previous run
// are dropped, they cannot be trusted once their pending relocations are gone.
func OpenBadger(path string) (*badger.DB, error) {
	options := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	if path == "" {
		options = options.WithInMemory(true)
	}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("badger opening failed: %w", err)
	}
	if path != "" {
		if err := db.DropAll(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("badger reset failed: %w", err)
		}
	}
	return db, nil
}

func (s *BadgerStore[V]) key(id domain.ParticipantID) []byte {
	return []byte(fmt.Sprintf("%s:%s", s.namespace, id))
}

func (s *BadgerStore[V]) prefix() []byte {
	return []byte(s.namespace + ":")
}

func (s *BadgerStore[V]) Get(id domain.ParticipantID) (V, bool, error) {
	var zero V
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(id))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get %s/%s: %w", s.namespace, id, err)
	}
	value, err := s.codec.Unmarshal(raw)
	if err != nil {
		return zero, false, fmt.Errorf("decode %s/%s: %w", s.namespace, id, err)
	}
	return value, true, nil
}

func (s *BadgerStore[V]) Set(id domain.ParticipantID, value V) error {
	raw, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", s.namespace, id, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(id), raw)
	})
}

func (s *BadgerStore[V]) Delete(id domain.ParticipantID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(id))
	})
}

// Range decodes the whole namespace first and calls fn outside of the
// read transaction, so fn is free to write to the store.
func (s *BadgerStore[V]) Range(fn func(id domain.ParticipantID, value V) bool) error {
	type entry struct {
		id    domain.ParticipantID
		value V
	}
	var entries []entry
	prefix := s.prefix()
	err := s.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := domain.ParticipantID(item.Key()[len(prefix):])
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			value, err := s.codec.Unmarshal(raw)
			if err != nil {
				s.log.Error("Skipping undecodable record", "namespace", s.namespace, "participant", id, "error", err)
				continue
			}
			entries = append(entries, entry{id: id, value: value})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("range %s: %w", s.namespace, err)
	}
	for _, e := range entries {
		if !fn(e.id, e.value) {
			return nil
		}
	}
	return nil
}

func (s *BadgerStore[V]) Len() (int, error) {
	count := 0
	prefix := s.prefix()
	err := s.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.namespace, err)
	}
	return count, nil
}

const (
	ActivityNamespace   = "afk"
	WindowNamespace     = "spam"
	SuspensionNamespace = "timeout"
)

func NewBadgerStores(db *badger.DB, log *slog.Logger) Stores {
	return Stores{
		Activity:    NewBadgerStore[domain.ActivityRecord](db, log, ActivityNamespace, ActivityCodec{}),
		Windows:     NewBadgerStore[domain.RateWindow](db, log, WindowNamespace, RateWindowCodec{}),
		Suspensions: NewBadgerStore[domain.SuspensionRecord](db, log, SuspensionNamespace, SuspensionCodec{}),
	}
}
