package store

import (
	"encoding/binary"

	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/mixin/crypto"
	"github.com/dgraph-io/badger/v3"
	"github.com/rentable/rental/market"
	"github.com/shopspring/decimal"
)

const (
	prefixCollectionPayload = "COLLECTION:PAYLOAD:"
	prefixAppPayload        = "COLLECTION:APP:PAYLOAD:"
	prefixAppQueue          = "COLLECTION:APP:QUEUE:"
)

func (bs *BadgerStore) CreateCollection(c *market.Collection, deposit *market.Transfer) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readCollection(txn, c.Address)
		if err != nil {
			return err
		}
		if old != nil {
			return market.ErrAlreadyExists
		}
		err = bs.applyTransfer(txn, deposit)
		if err != nil {
			return err
		}
		return bs.writeCollection(txn, c)
	})
}

func (bs *BadgerStore) UpdateCollection(c *market.Collection) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readCollection(txn, c.Address)
		if err != nil {
			return err
		}
		if old == nil {
			return market.ErrNotFound
		}
		return bs.writeCollection(txn, c)
	})
}

func (bs *BadgerStore) ReadCollection(address crypto.Hash) (*market.Collection, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readCollection(txn, address)
}

func (bs *BadgerStore) CreateCollectionApp(app *market.CollectionApp, deposit *market.Transfer) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readCollectionApp(txn, app.Address)
		if err != nil {
			return err
		}
		if old != nil {
			return market.ErrAlreadyExists
		}
		c, err := bs.readCollection(txn, app.Collection)
		if err != nil {
			return err
		}
		if c == nil {
			return market.ErrNotFound
		}
		c.AppCount += 1
		err = bs.writeCollection(txn, c)
		if err != nil {
			return err
		}
		err = bs.applyTransfer(txn, deposit)
		if err != nil {
			return err
		}
		err = txn.Set(buildAppQueueKey(app), []byte{1})
		if err != nil {
			return err
		}
		return bs.writeCollectionApp(txn, app)
	})
}

func (bs *BadgerStore) UpdateCollectionApp(app *market.CollectionApp) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readCollectionApp(txn, app.Address)
		if err != nil {
			return err
		}
		if old == nil {
			return market.ErrNotFound
		}
		return bs.writeCollectionApp(txn, app)
	})
}

// RemoveCollectionApp deletes the record, refunds whatever balance the
// record address escrows to refundTo and decrements the owning collection's
// app count, all in one transaction.
func (bs *BadgerStore) RemoveCollectionApp(address crypto.Hash, refundTo crypto.Hash) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		app, err := bs.readCollectionApp(txn, address)
		if err != nil {
			return err
		}
		if app == nil {
			return market.ErrNotFound
		}

		c, err := bs.readCollection(txn, app.Collection)
		if err != nil {
			return err
		}
		if c != nil && c.AppCount > 0 {
			c.AppCount -= 1
			err = bs.writeCollection(txn, c)
			if err != nil {
				return err
			}
		}

		reserved, err := bs.readBalance(txn, address)
		if err != nil {
			return err
		}
		if reserved.Sign() > 0 {
			err = bs.writeBalance(txn, address, decimal.Zero)
			if err != nil {
				return err
			}
			err = bs.creditBalance(txn, refundTo, reserved)
			if err != nil {
				return err
			}
		}

		err = txn.Delete(buildAppQueueKey(app))
		if err != nil {
			return err
		}
		key := append([]byte(prefixAppPayload), address[:]...)
		return txn.Delete(key)
	})
}

func (bs *BadgerStore) ReadCollectionApp(address crypto.Hash) (*market.CollectionApp, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readCollectionApp(txn, address)
}

func (bs *BadgerStore) ListCollectionApps(collection crypto.Hash) ([]*market.CollectionApp, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = append([]byte(prefixAppQueue), collection[:]...)
	it := txn.NewIterator(opts)
	defer it.Close()

	var apps []*market.CollectionApp
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		key := it.Item().Key()
		var address crypto.Hash
		copy(address[:], key[len(opts.Prefix)+8:])
		app, err := bs.readCollectionApp(txn, address)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func (bs *BadgerStore) readCollection(txn *badger.Txn, address crypto.Hash) (*market.Collection, error) {
	key := append([]byte(prefixCollectionPayload), address[:]...)
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var c market.Collection
	err = common.MsgpackUnmarshal(val, &c)
	return &c, err
}

func (bs *BadgerStore) writeCollection(txn *badger.Txn, c *market.Collection) error {
	key := append([]byte(prefixCollectionPayload), c.Address[:]...)
	return txn.Set(key, common.MsgpackMarshalPanic(c))
}

func (bs *BadgerStore) readCollectionApp(txn *badger.Txn, address crypto.Hash) (*market.CollectionApp, error) {
	key := append([]byte(prefixAppPayload), address[:]...)
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var app market.CollectionApp
	err = common.MsgpackUnmarshal(val, &app)
	return &app, err
}

func (bs *BadgerStore) writeCollectionApp(txn *badger.Txn, app *market.CollectionApp) error {
	key := append([]byte(prefixAppPayload), app.Address[:]...)
	return txn.Set(key, common.MsgpackMarshalPanic(app))
}

func buildAppQueueKey(app *market.CollectionApp) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(app.CreatedAt.UnixNano()))
	key := append([]byte(prefixAppQueue), app.Collection[:]...)
	key = append(key, buf...)
	return append(key, app.Address[:]...)
}
