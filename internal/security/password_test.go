package security_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/geocoder89/userhub/internal/security"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashIsVerifiableNotPlaintext(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if digest == "correct horse" {
		t.Fatalf("digest must not equal the plaintext")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte("correct horse")); err != nil {
		t.Fatalf("digest should verify against its plaintext: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte("wrong horse")); err == nil {
		t.Fatalf("digest should not verify against a different plaintext")
	}
}

func TestBcryptHasher_SaltsEachDigest(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if a == b {
		t.Fatalf("expected distinct salted digests")
	}
}

func TestBcryptHasher_RejectsOverlongInput(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("é", 40)) // 80 bytes
	if !errors.Is(err, security.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestNewBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	h := security.NewBcryptHasher(0)

	digest, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("got cost %d, want %d", cost, bcrypt.DefaultCost)
	}
}
