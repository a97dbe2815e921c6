package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// Store persists carts in Redis keyed by user id so a session survives
// reconnects. A missing key reads as an empty cart.
type Store struct {
	store sessionStore
	ttl   time.Duration
}

// NewStore builds a cart store with the configured session TTL.
func NewStore(store sessionStore, ttl time.Duration) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("cart session store required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart session ttl must be positive")
	}
	return &Store{store: store, ttl: ttl}, nil
}

// Load returns the persisted cart for the user, or an empty cart when none
// exists.
func (s *Store) Load(ctx context.Context, userID string) (Cart, error) {
	if userID == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	raw, err := s.store.Get(ctx, s.store.CartKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(), nil
		}
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart")
	}
	if cart.Items == nil {
		cart.Items = []types.CartItem{}
	}
	return cart, nil
}

// Save writes the cart back with the session TTL refreshed.
func (s *Store) Save(ctx context.Context, userID string, cart Cart) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(userID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// Clear removes the persisted cart entirely.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := s.store.Del(ctx, s.store.CartKey(userID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
