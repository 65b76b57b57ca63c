package store

import (
	"github.com/MixinNetwork/mixin/crypto"
	"github.com/dgraph-io/badger/v3"
	"github.com/rentable/rental/market"
	"github.com/shopspring/decimal"
)

const (
	prefixLedgerBalance = "LEDGER:BALANCE:"
	prefixLedgerTrace   = "LEDGER:TRACE:"
)

func (bs *BadgerStore) Transfer(t *market.Transfer) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return bs.applyTransfer(txn, t)
	})
}

func (bs *BadgerStore) Deposit(address crypto.Hash, amount decimal.Decimal) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return bs.creditBalance(txn, address, amount)
	})
}

func (bs *BadgerStore) ReadBalance(address crypto.Hash) (decimal.Decimal, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readBalance(txn, address)
}

// applyTransfer moves funds inside the caller's transaction so record
// writes and the payment commit or fail together. A trace that has already
// been applied is skipped, replays are no-ops.
func (bs *BadgerStore) applyTransfer(txn *badger.Txn, t *market.Transfer) error {
	if t == nil {
		return nil
	}
	traceKey := append([]byte(prefixLedgerTrace), t.TraceId...)
	_, err := txn.Get(traceKey)
	if err == nil {
		return nil
	} else if err != badger.ErrKeyNotFound {
		return err
	}

	from, err := bs.readBalance(txn, t.From)
	if err != nil {
		return err
	}
	if from.Cmp(t.Amount) < 0 {
		return market.ErrInsufficientFunds
	}
	err = bs.writeBalance(txn, t.From, from.Sub(t.Amount))
	if err != nil {
		return err
	}
	err = bs.creditBalance(txn, t.To, t.Amount)
	if err != nil {
		return err
	}
	return txn.Set(traceKey, []byte{1})
}

func (bs *BadgerStore) readBalance(txn *badger.Txn, address crypto.Hash) (decimal.Decimal, error) {
	key := append([]byte(prefixLedgerBalance), address[:]...)
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return decimal.Zero, nil
	} else if err != nil {
		return decimal.Zero, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(string(val))
}

func (bs *BadgerStore) writeBalance(txn *badger.Txn, address crypto.Hash, balance decimal.Decimal) error {
	if balance.Sign() < 0 {
		panic(address.String())
	}
	key := append([]byte(prefixLedgerBalance), address[:]...)
	return txn.Set(key, []byte(balance.String()))
}

func (bs *BadgerStore) creditBalance(txn *badger.Txn, address crypto.Hash, amount decimal.Decimal) error {
	old, err := bs.readBalance(txn, address)
	if err != nil {
		return err
	}
	return bs.writeBalance(txn, address, old.Add(amount))
}
