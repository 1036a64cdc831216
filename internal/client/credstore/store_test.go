package credstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/posadmin/internal/client/config"
	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mediums(t *testing.T) map[string]func(t *testing.T) KV {
	return map[string]func(t *testing.T) KV{
		"memory": func(t *testing.T) KV { return NewMemoryKV() },
		"sqlite": func(t *testing.T) KV {
			db, err := OpenDB(context.Background(), filepath.Join(t.TempDir(), "creds.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			return NewSQLiteKV(db)
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	users := map[string]*models.User{
		"with token": {ID: "1", FirstName: "Ada", Email: "admin@x.com", Role: "admin", Token: "t1"},
		"no token":   {ID: "2", Email: "clerk@x.com", Role: "clerk"},
		"padded id":  {ID: "007", Email: "bond@x.com", Role: "admin", Token: "t7"},
		"string id":  {ID: "u-42", Email: "u@x.com", Token: "t42"},
	}

	for medium, newKV := range mediums(t) {
		for name, u := range users {
			t.Run(medium+"/"+name, func(t *testing.T) {
				ctx := context.Background()
				s := New(newKV(t), nil)

				require.NoError(t, s.Save(ctx, u))
				got := s.Load(ctx)
				require.NotNil(t, got)
				assert.Empty(t, cmp.Diff(u, got))
			})
		}
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	for medium, newKV := range mediums(t) {
		t.Run(medium, func(t *testing.T) {
			s := New(newKV(t), nil)
			assert.Nil(t, s.Load(context.Background()))
		})
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	for medium, newKV := range mediums(t) {
		t.Run(medium, func(t *testing.T) {
			ctx := context.Background()
			kv := newKV(t)
			require.NoError(t, kv.Set(ctx, common.StorageKeyUser, []byte(`{"id":`)))

			s := New(kv, nil)
			assert.Nil(t, s.Load(ctx))
		})
	}
}

func TestStore_ClearRemovesRecordAndLegacyKeys(t *testing.T) {
	for medium, newKV := range mediums(t) {
		t.Run(medium, func(t *testing.T) {
			ctx := context.Background()
			kv := newKV(t)
			s := New(kv, nil)

			require.NoError(t, s.Save(ctx, &models.User{Email: "admin@x.com", Token: "t"}))
			require.NoError(t, kv.Set(ctx, common.StorageKeyToken, []byte("old")))
			require.NoError(t, kv.Set(ctx, common.StorageKeyAuthenticated, []byte("true")))

			require.NoError(t, s.Clear(ctx))
			assert.Nil(t, s.Load(ctx))

			for _, k := range common.LegacyStorageKeys {
				v, err := kv.Get(ctx, k)
				require.NoError(t, err)
				assert.Nil(t, v, "key %s", k)
			}

			require.NoError(t, s.Clear(ctx), "clear is idempotent")
		})
	}
}

func TestStore_SaveNil(t *testing.T) {
	s := New(NewMemoryKV(), nil)
	require.Error(t, s.Save(context.Background(), nil))
}

func TestStore_DurableSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StoreMode: config.StoreDurable, StorePath: filepath.Join(t.TempDir(), "nested", "creds.db")}

	s, closeFn, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, &models.User{Email: "admin@x.com", Role: "admin", Token: "abc"}))
	require.NoError(t, closeFn())

	s, closeFn, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer closeFn()

	got := s.Load(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.Token)
}

func TestOpen_SessionMode(t *testing.T) {
	s, closeFn, err := Open(context.Background(), &config.Config{StoreMode: config.StoreSession}, nil)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NoError(t, closeFn())
}

func TestOpen_UnknownMode(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StoreMode: "cloud"}, nil)
	require.Error(t, err)
}
