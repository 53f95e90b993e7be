// Package redis keeps customer carts in Redis. A cart is three keys per
// session, written together in one MULTI/EXEC:
//
//	cart:{session}:items     JSON array of lines
//	cart:{session}:supplier  JSON supplier, absent while the cart is unbound
//	cart:{session}:pending   JSON candidate of an unresolved supplier conflict
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

type CartStorage struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewCartStorage returns a storage whose keys expire ttl after the last
// write. A zero ttl keeps carts forever.
func NewCartStorage(client *goredis.Client, ttl time.Duration) *CartStorage {
	return &CartStorage{client: client, ttl: ttl}
}

func itemsKey(session string) string    { return "cart:" + session + ":items" }
func supplierKey(session string) string { return "cart:" + session + ":supplier" }
func pendingKey(session string) string  { return "cart:" + session + ":pending" }

// Load reads the three keys in one round trip. A session with no keys is an
// empty cart.
func (s *CartStorage) Load(ctx context.Context, session string) (*cart.Cart, error) {
	values, err := s.client.MGet(ctx, itemsKey(session), supplierKey(session), pendingKey(session)).Result()
	if err != nil {
		return nil, err
	}

	var items []itemDTO
	if raw, ok := values[0].(string); ok {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("decode cart items: %w", err)
		}
	}

	var supplier *catalog.Supplier
	if raw, ok := values[1].(string); ok {
		var dto supplierDTO
		if err := json.Unmarshal([]byte(raw), &dto); err != nil {
			return nil, fmt.Errorf("decode cart supplier: %w", err)
		}
		restored, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		supplier = &restored
	}

	var pending *cart.Item
	if raw, ok := values[2].(string); ok {
		var dto itemDTO
		if err := json.Unmarshal([]byte(raw), &dto); err != nil {
			return nil, fmt.Errorf("decode cart pending item: %w", err)
		}
		restored, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		pending = &restored
	}

	lines := make([]cart.Item, 0, len(items))
	for _, dto := range items {
		item, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		lines = append(lines, item)
	}

	return cart.RestoreCart(lines, supplier, pending)
}

// Save replaces the stored cart. Either every key changes or none does.
func (s *CartStorage) Save(ctx context.Context, session string, c *cart.Cart) error {
	items := make([]itemDTO, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, itemFromDomain(item))
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}

	var supplierJSON []byte
	if supplier := c.BoundSupplier(); supplier != nil {
		if supplierJSON, err = json.Marshal(supplierFromDomain(*supplier)); err != nil {
			return err
		}
	}

	var pendingJSON []byte
	if pending, ok := c.PendingConflict(); ok {
		if pendingJSON, err = json.Marshal(itemFromDomain(pending)); err != nil {
			return err
		}
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, itemsKey(session), itemsJSON, s.ttl)

		if supplierJSON != nil {
			pipe.Set(ctx, supplierKey(session), supplierJSON, s.ttl)
		} else {
			pipe.Del(ctx, supplierKey(session))
		}

		if pendingJSON != nil {
			pipe.Set(ctx, pendingKey(session), pendingJSON, s.ttl)
		} else {
			pipe.Del(ctx, pendingKey(session))
		}
		return nil
	})
	return err
}

type supplierDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type itemDTO struct {
	DishID     string      `json:"dishId"`
	Name       string      `json:"name"`
	PriceCents int64       `json:"priceCents"`
	ImageURL   string      `json:"imageUrl,omitempty"`
	Supplier   supplierDTO `json:"supplier"`
	Quantity   int         `json:"quantity"`
}

func supplierFromDomain(s catalog.Supplier) supplierDTO {
	return supplierDTO{ID: s.ID().String(), Name: s.Name()}
}

func (dto supplierDTO) toDomain() (catalog.Supplier, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return catalog.Supplier{}, err
	}
	return catalog.NewSupplier(id, dto.Name)
}

func itemFromDomain(item cart.Item) itemDTO {
	dish := item.Dish()
	return itemDTO{
		DishID:     dish.ID().String(),
		Name:       dish.Name(),
		PriceCents: dish.Price().Cents(),
		ImageURL:   dish.ImageURL(),
		Supplier:   supplierFromDomain(dish.Supplier()),
		Quantity:   item.Quantity(),
	}
}

func (dto itemDTO) toDomain() (cart.Item, error) {
	supplier, err := dto.Supplier.toDomain()
	if err != nil {
		return cart.Item{}, err
	}
	id, err := kernel.UUIDFromString(dto.DishID)
	if err != nil {
		return cart.Item{}, err
	}
	price, err := kernel.NewMoney(dto.PriceCents)
	if err != nil {
		return cart.Item{}, err
	}
	dish, err := catalog.NewDish(id, dto.Name, price, dto.ImageURL, supplier)
	if err != nil {
		return cart.Item{}, err
	}
	return cart.NewItem(dish, dto.Quantity)
}
