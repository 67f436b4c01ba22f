package util

import "testing"

func TestOwnerKey(t *testing.T) {
	id := "guest:12345"
	got := OwnerKey(id)
	if got != OwnerKey(id) {
		t.Fatalf("expected stable key, got %s", got)
	}
	if got == OwnerKey("guest:12346") {
		t.Fatalf("expected distinct owners to get distinct keys")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("key contains non-hex character: %c", ch)
		}
	}
	if len(got) != ownerKeyLen {
		t.Fatalf("expected %d hex characters, got %d", ownerKeyLen, len(got))
	}
}
