package store

import (
	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/mixin/crypto"
	"github.com/dgraph-io/badger/v3"
	"github.com/rentable/rental/market"
)

const (
	prefixNftPayload    = "NFT:PAYLOAD:"
	prefixNftCollection = "NFT:COLLECTION:"
	prefixNftOwner      = "NFT:OWNER:"
)

func (bs *BadgerStore) CreateNft(n *market.Nft, deposit *market.Transfer) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readNft(txn, n.Address)
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
		key := append([]byte(prefixNftCollection), n.Collection[:]...)
		err = txn.Set(append(key, n.Address[:]...), []byte{1})
		if err != nil {
			return err
		}
		key = append([]byte(prefixNftOwner), n.Owner[:]...)
		err = txn.Set(append(key, n.Address[:]...), []byte{1})
		if err != nil {
			return err
		}
		return bs.writeNft(txn, n)
	})
}

func (bs *BadgerStore) UpdateNft(n *market.Nft) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readNft(txn, n.Address)
		if err != nil {
			return err
		}
		if old == nil {
			return market.ErrNotFound
		}
		return bs.writeNft(txn, n)
	})
}

// RentNft persists the new rental window and applies the payment in one
// transaction, an insufficient renter balance leaves the record unchanged.
func (bs *BadgerStore) RentNft(n *market.Nft, payment *market.Transfer) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readNft(txn, n.Address)
		if err != nil {
			return err
		}
		if old == nil {
			return market.ErrNotFound
		}
		err = bs.applyTransfer(txn, payment)
		if err != nil {
			return err
		}
		return bs.writeNft(txn, n)
	})
}

func (bs *BadgerStore) ReadNft(address crypto.Hash) (*market.Nft, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readNft(txn, address)
}

func (bs *BadgerStore) ListCollectionNfts(collection crypto.Hash, limit int) ([]*market.Nft, error) {
	prefix := append([]byte(prefixNftCollection), collection[:]...)
	return bs.listNfts(prefix, limit)
}

func (bs *BadgerStore) ListOwnerNfts(owner crypto.Hash, limit int) ([]*market.Nft, error) {
	prefix := append([]byte(prefixNftOwner), owner[:]...)
	return bs.listNfts(prefix, limit)
}

func (bs *BadgerStore) listNfts(prefix []byte, limit int) ([]*market.Nft, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var nfts []*market.Nft
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		key := it.Item().Key()
		var address crypto.Hash
		copy(address[:], key[len(prefix):])
		n, err := bs.readNft(txn, address)
		if err != nil {
			return nil, err
		}
		nfts = append(nfts, n)
		if len(nfts) == limit {
			break
		}
	}
	return nfts, nil
}

func (bs *BadgerStore) readNft(txn *badger.Txn, address crypto.Hash) (*market.Nft, error) {
	key := append([]byte(prefixNftPayload), address[:]...)
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
	var n market.Nft
	err = common.MsgpackUnmarshal(val, &n)
	return &n, err
}

func (bs *BadgerStore) writeNft(txn *badger.Txn, n *market.Nft) error {
	key := append([]byte(prefixNftPayload), n.Address[:]...)
	return txn.Set(key, common.MsgpackMarshalPanic(n))
}
