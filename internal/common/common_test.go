package common

import "testing"

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestLegacyStorageKeys_ExcludeUser(t *testing.T) {
	for _, k := range LegacyStorageKeys {
		if k == StorageKeyUser {
			t.Fatalf("legacy keys must not include %q", StorageKeyUser)
		}
	}
}
