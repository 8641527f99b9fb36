package password

import "testing"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(4) // low cost keeps the test fast

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !h.Verify("secret1", hash) {
		t.Fatalf("expected verify to succeed for matching password")
	}
	if h.Verify("secret2", hash) {
		t.Fatalf("expected verify to fail for wrong password")
	}
}

func TestBcryptHasher_UniqueSaltPerCall(t *testing.T) {
	h := NewBcryptHasher(4)

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(4)

	if h.Verify("whatever", "not-a-bcrypt-hash") {
		t.Fatalf("expected verify to report false for malformed hash")
	}
	if h.Verify("whatever", "") {
		t.Fatalf("expected verify to report false for empty hash")
	}
}
