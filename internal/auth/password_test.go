package auth

import "testing"

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(4) // low cost keeps the test fast

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "pw1" || hash == "" {
		t.Fatalf("hash must not be empty or equal to the password: %q", hash)
	}
	if !h.Verify(hash, "pw1") {
		t.Error("Verify failed for the correct password")
	}
	if h.Verify(hash, "pw1x") {
		t.Error("Verify succeeded for a wrong password")
	}
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewHasher(4)

	h1, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (per-hash salt)")
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	// Should not panic and should still produce verifiable hashes.
	h := NewHasher(99)
	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash with fallback cost: %v", err)
	}
	if !h.Verify(hash, "pw") {
		t.Error("Verify failed after cost fallback")
	}
}
