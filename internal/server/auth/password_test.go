package auth

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerkeeper/ledgerkeeper/internal/logging"
)

func newTestHasher(t *testing.T) (*PasswordHasher, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return NewPasswordHasher(bcrypt.MinCost, log), &buf
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()
	h, _ := newTestHasher(t)

	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash equals the plaintext")
	}
	if !h.Verify("s3cret-pass", hash) {
		t.Fatalf("Verify rejected the original secret")
	}
	if h.Verify("other-pass", hash) {
		t.Fatalf("Verify accepted a different secret")
	}
}

func TestPasswordHasher_FreshSaltPerCall(t *testing.T) {
	t.Parallel()
	h, _ := newTestHasher(t)

	h1, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input are identical: %q", h1)
	}
	if !h.Verify("same-input", h1) || !h.Verify("same-input", h2) {
		t.Fatalf("both hashes must verify the original input")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	t.Parallel()
	h, buf := newTestHasher(t)

	if h.Verify("whatever", "not-a-bcrypt-hash") {
		t.Fatalf("Verify accepted a malformed hash")
	}
	if !strings.Contains(buf.String(), "not comparable") {
		t.Fatalf("expected a warning about the malformed hash, got:\n%s", buf.String())
	}
}

func TestPasswordHasher_EmptyHash(t *testing.T) {
	t.Parallel()
	h, _ := newTestHasher(t)

	if h.Verify("whatever", "") {
		t.Fatalf("Verify accepted an empty hash")
	}
}

func TestPasswordHasher_LongSecretsAreConsistent(t *testing.T) {
	t.Parallel()
	h, _ := newTestHasher(t)

	long := strings.Repeat("a", 100)
	hash, err := h.Hash(long)
	if err != nil {
		t.Fatalf("Hash error for long secret: %v", err)
	}
	if !h.Verify(long, hash) {
		t.Fatalf("Verify rejected the long secret it was hashed from")
	}
}

func TestNewPasswordHasher_DefaultCost(t *testing.T) {
	t.Parallel()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	h := NewPasswordHasher(0, log)
	if h.cost != DefaultHashCost {
		t.Fatalf("expected default cost %d, got %d", DefaultHashCost, h.cost)
	}
	if DefaultHashCost < 12 {
		t.Fatalf("default cost %d is below the minimum work factor", DefaultHashCost)
	}
}
