package store

import (
	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/mixin/crypto"
	"github.com/dgraph-io/badger/v3"
	"github.com/rentable/rental/metadata"
)

const (
	prefixMetaGroupPayload = "METADATA:GROUP:"
	prefixMetaTokenPayload = "METADATA:TOKEN:"
)

func (bs *BadgerStore) WriteMintToken(t *metadata.Token) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readMintToken(txn, t.Mint)
		if err != nil {
			return err
		}
		if old != nil {
			panic(t.Mint.String())
		}

		g, err := bs.readMintGroup(txn, t.Symbol)
		if err != nil {
			return err
		}
		if g == nil {
			g = &metadata.Group{
				Symbol:      t.Symbol,
				Creator:     t.Creator,
				Circulation: 0,
			}
		}
		if g.Creator != t.Creator {
			return metadata.ErrForeignCreator
		}
		g.Circulation += 1
		t.Edition = g.Circulation

		key := append([]byte(prefixMetaGroupPayload), t.Symbol...)
		err = txn.Set(key, common.MsgpackMarshalPanic(g))
		if err != nil {
			return err
		}
		key = append([]byte(prefixMetaTokenPayload), t.Mint[:]...)
		return txn.Set(key, common.MsgpackMarshalPanic(t))
	})
}

func (bs *BadgerStore) ReadMintToken(mint crypto.Hash) (*metadata.Token, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readMintToken(txn, mint)
}

func (bs *BadgerStore) ReadMintGroup(symbol string) (*metadata.Group, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readMintGroup(txn, symbol)
}

func (bs *BadgerStore) readMintToken(txn *badger.Txn, mint crypto.Hash) (*metadata.Token, error) {
	key := append([]byte(prefixMetaTokenPayload), mint[:]...)
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
	var t metadata.Token
	err = common.MsgpackUnmarshal(val, &t)
	return &t, err
}

func (bs *BadgerStore) readMintGroup(txn *badger.Txn, symbol string) (*metadata.Group, error) {
	key := append([]byte(prefixMetaGroupPayload), symbol...)
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
	var g metadata.Group
	err = common.MsgpackUnmarshal(val, &g)
	return &g, err
}
