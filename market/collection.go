package market

import (
	"context"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/MixinNetwork/mixin/logger"
	"github.com/gofrs/uuid"
)

const (
	NameMaxLength   = 50
	SymbolMaxLength = 10
	URLMaxLength    = 100
)

// Collection groups NFTs under a symbol owned by one authority. Its address
// is derived from the pair, so the same authority can never register the
// same symbol twice.
type Collection struct {
	Address          crypto.Hash
	Salt             uint8
	Authority        crypto.Hash
	Symbol           string
	Name             string
	ImageURL         string
	WebsiteURL       string
	RoyaltiesPercent uint8
	AppCount         uint16
}

// Size is the reserved record footprint, discriminator plus length-prefixed
// fields at their maximum capacity. Records are not resizable after
// creation, the worst case is reserved and escrowed up front.
func (c *Collection) Size() int {
	return 8 +
		4 + 4*NameMaxLength +
		4 + 4*SymbolMaxLength +
		4 + 4*URLMaxLength +
		4 + 4*URLMaxLength +
		2
}

// CollectionApp is a storefront linked to a collection. The collection
// reference is immutable after creation.
type CollectionApp struct {
	Address    crypto.Hash
	Id         uuid.UUID
	Collection crypto.Hash
	Name       string
	ImageURL   string
	AppURL     string
	CreatedAt  time.Time
}

func (a *CollectionApp) Size() int {
	return 8 + 32 +
		4 + 4*NameMaxLength +
		4 + 4*URLMaxLength +
		4 + 4*URLMaxLength
}

func validateCollectionFields(name string, urls ...string) error {
	if len(name) > NameMaxLength {
		return ErrStringTooLong
	}
	for _, u := range urls {
		if len(u) > URLMaxLength {
			return ErrStringTooLong
		}
	}
	return nil
}

func (m *Marketplace) CreateCollection(ctx context.Context, authority crypto.Hash, symbol, name, imageURL, websiteURL string, royalties uint8) (*Collection, error) {
	if !authority.HasValue() {
		return nil, ErrMissingSignature
	}
	if len(symbol) == 0 || len(symbol) > SymbolMaxLength {
		return nil, ErrStringTooLong
	}
	err := validateCollectionFields(name, imageURL, websiteURL)
	if err != nil {
		return nil, err
	}
	if royalties > 100 {
		return nil, ErrInvalidRoyalty
	}

	address, salt := DeriveCollection(symbol, authority)
	unlock := m.guard.lock(address.String())
	defer unlock()

	c := &Collection{
		Address:          address,
		Salt:             salt,
		Authority:        authority,
		Symbol:           symbol,
		Name:             name,
		ImageURL:         imageURL,
		WebsiteURL:       websiteURL,
		RoyaltiesPercent: royalties,
		AppCount:         0,
	}
	err = m.store.CreateCollection(c, m.storageDeposit(authority, address, c.Size()))
	if err != nil {
		return nil, err
	}
	logger.Verbosef("CreateCollection(%s, %s) => %s\n", symbol, authority, address)
	return c, nil
}

func (m *Marketplace) UpdateCollection(ctx context.Context, authority crypto.Hash, symbol, name, imageURL, websiteURL string, royalties uint8) (*Collection, error) {
	if !authority.HasValue() {
		return nil, ErrMissingSignature
	}
	err := validateCollectionFields(name, imageURL, websiteURL)
	if err != nil {
		return nil, err
	}
	if royalties > 100 {
		return nil, ErrInvalidRoyalty
	}

	address, _ := DeriveCollection(symbol, authority)
	unlock := m.guard.lock(address.String())
	defer unlock()

	c, err := m.store.ReadCollection(address)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	c.Name = name
	c.ImageURL = imageURL
	c.WebsiteURL = websiteURL
	c.RoyaltiesPercent = royalties
	err = m.store.UpdateCollection(c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Marketplace) GetCollection(ctx context.Context, authority crypto.Hash, symbol string) (*Collection, error) {
	address, _ := DeriveCollection(symbol, authority)
	return m.store.ReadCollection(address)
}

func (m *Marketplace) CreateCollectionApp(ctx context.Context, authority crypto.Hash, symbol, name, imageURL, appURL string) (*CollectionApp, error) {
	if !authority.HasValue() {
		return nil, ErrMissingSignature
	}
	err := validateCollectionFields(name, imageURL, appURL)
	if err != nil {
		return nil, err
	}

	collection, _ := DeriveCollection(symbol, authority)
	unlock := m.guard.lock(collection.String())
	defer unlock()

	c, err := m.store.ReadCollection(collection)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	address, _ := DeriveCollectionApp(collection, id)
	app := &CollectionApp{
		Address:    address,
		Id:         id,
		Collection: collection,
		Name:       name,
		ImageURL:   imageURL,
		AppURL:     appURL,
		CreatedAt:  m.clock.Now(),
	}
	err = m.store.CreateCollectionApp(app, m.storageDeposit(authority, address, app.Size()))
	if err != nil {
		return nil, err
	}
	logger.Verbosef("CreateCollectionApp(%s, %s) => %s\n", symbol, name, address)
	return app, nil
}

func (m *Marketplace) UpdateCollectionApp(ctx context.Context, authority crypto.Hash, symbol string, id uuid.UUID, name, imageURL, appURL string) (*CollectionApp, error) {
	if !authority.HasValue() {
		return nil, ErrMissingSignature
	}
	err := validateCollectionFields(name, imageURL, appURL)
	if err != nil {
		return nil, err
	}

	collection, _ := DeriveCollection(symbol, authority)
	address, _ := DeriveCollectionApp(collection, id)
	unlock := m.guard.lock(address.String())
	defer unlock()

	app, err := m.store.ReadCollectionApp(address)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	if app.Collection != collection {
		return nil, ErrInvalidCollection
	}
	app.Name = name
	app.ImageURL = imageURL
	app.AppURL = appURL
	err = m.store.UpdateCollectionApp(app)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// RemoveCollectionApp destroys the app record, refunds its reserved storage
// deposit to the authority and decrements the collection's app count.
func (m *Marketplace) RemoveCollectionApp(ctx context.Context, authority crypto.Hash, symbol string, id uuid.UUID) error {
	if !authority.HasValue() {
		return ErrMissingSignature
	}

	collection, _ := DeriveCollection(symbol, authority)
	unlock := m.guard.lock(collection.String())
	defer unlock()

	address, _ := DeriveCollectionApp(collection, id)
	app, err := m.store.ReadCollectionApp(address)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrNotFound
	}
	if app.Collection != collection {
		return ErrInvalidCollection
	}
	return m.store.RemoveCollectionApp(address, authority)
}

func (m *Marketplace) ListCollectionApps(ctx context.Context, collection crypto.Hash) ([]*CollectionApp, error) {
	return m.store.ListCollectionApps(collection)
}
