package credstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/posadmin/internal/client/config"
	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/common"
	"github.com/dmitrijs2005/posadmin/internal/logging"
)

// Store saves, loads and clears the credential record.
type Store struct {
	kv  KV
	log logging.Logger
}

func New(kv KV, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{kv: kv, log: log.With("component", "credstore")}
}

// Open builds the Store selected by cfg.StoreMode. The returned close
// function releases the medium and is never nil.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*Store, func() error, error) {
	switch cfg.StoreMode {
	case config.StoreSession:
		return New(NewMemoryKV(), log), func() error { return nil }, nil
	case config.StoreDurable:
		db, err := OpenDB(ctx, cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open credential store: %w", err)
		}
		return New(NewSQLiteKV(db), log), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store mode %q", cfg.StoreMode)
	}
}

// Save writes user, token included, under the "user" key.
func (s *Store) Save(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("save credentials: nil user")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.kv.Set(ctx, common.StorageKeyUser, data); err != nil {
		return err
	}
	s.log.Debug(ctx, "credentials saved", "email", user.Email)
	return nil
}

// Load returns the saved user, or nil when nothing usable is stored.
// Read failures and malformed records are logged and treated as absent.
func (s *Store) Load(ctx context.Context) *models.User {
	data, err := s.kv.Get(ctx, common.StorageKeyUser)
	if err != nil {
		s.log.Warn(ctx, "credentials unreadable", "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Warn(ctx, "malformed persisted credentials", "error", err)
		return nil
	}
	return &user
}

// Clear removes the record and any legacy keys.
func (s *Store) Clear(ctx context.Context) error {
	keys := append([]string{common.StorageKeyUser}, common.LegacyStorageKeys...)
	if err := s.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
