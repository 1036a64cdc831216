// Package common holds constants and small helpers shared across the client.
package common

const (
	// StorageKeyUser is the key the signed-in user record, token included,
	// is stored under.
	StorageKeyUser = "user"

	// StorageKeyToken and StorageKeyAuthenticated are written by older
	// clients. They are never read, only removed on sign out.
	StorageKeyToken         = "token"
	StorageKeyAuthenticated = "authenticated"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// LegacyStorageKeys lists every key a sign out must remove.
var LegacyStorageKeys = []string{StorageKeyToken, StorageKeyAuthenticated}

// WipeByteArray overwrites b with zeros.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
