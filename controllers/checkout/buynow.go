package checkoutControllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alok9064/CarveLane/models"
)

const (
	buyNowTTL       = 30 * time.Minute
	checkoutLockTTL = 30 * time.Second
)

// Store keeps the transient checkout state in Redis: the buy-now
// selection (an explicit short-lived record with its own expiry, not
// ambient session state) and the per-user checkout lock.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func buyNowKey(userID uint) string {
	return fmt.Sprintf("buynow:user:%d", userID)
}

func lockKey(userID uint) string {
	return fmt.Sprintf("checkout:lock:%d", userID)
}

func (s *Store) SaveSelection(ctx context.Context, userID uint, sel *models.BuyNowSelection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, buyNowKey(userID), data, buyNowTTL).Err()
}

// GetSelection returns the current buy-now selection, or nil if the user
// has none (or it expired).
func (s *Store) GetSelection(ctx context.Context, userID uint) (*models.BuyNowSelection, error) {
	data, err := s.rdb.Get(ctx, buyNowKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var sel models.BuyNowSelection
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

func (s *Store) ClearSelection(ctx context.Context, userID uint) error {
	return s.rdb.Del(ctx, buyNowKey(userID)).Err()
}

// AcquireLock serializes checkouts per user so two concurrent place-order
// requests cannot both consume the same cart. The TTL guards against a
// crashed request holding the lock forever.
func (s *Store) AcquireLock(ctx context.Context, userID uint) (bool, error) {
	return s.rdb.SetNX(ctx, lockKey(userID), 1, checkoutLockTTL).Result()
}

func (s *Store) ReleaseLock(ctx context.Context, userID uint) {
	s.rdb.Del(ctx, lockKey(userID))
}
