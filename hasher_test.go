package porridge

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestDigestHashers(t *testing.T) {
	tests := []struct {
		name   string
		hasher Hasher
		want   string
	}{
		{"sha256", SHA256Hasher(), "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{"sha512", SHA512Hasher(), "9b71d224bd62f3785d96d46ad3ea3d73319bfbc2890caadae2dff72519673ca72323c3d99ba5c11d7c7acc6e14b8c5da0c4663475c2e5c3adef46f73bcdec043"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.hasher.Hash([]byte("hello"))
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Hash(hello) = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestArgon2_Format(t *testing.T) {
	h := Argon2WithParams(Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8})

	a, err := h.Hash([]byte("password"))
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	b, err := h.Hash([]byte("password"))
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	if !strings.HasPrefix(a, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Errorf("Hash() = %s, want argon2id PHC string", a)
	}
	if a == b {
		t.Error("salted hashes of the same input should differ")
	}
}

func TestBcrypt_Verifies(t *testing.T) {
	h := BcryptWithCost(BcryptMinCost)

	out, err := h.Hash([]byte("password"))
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(out), []byte("password")); err != nil {
		t.Errorf("CompareHashAndPassword() error: %v", err)
	}
}

func TestHasherFor(t *testing.T) {
	for _, algo := range []HashAlgo{HashArgon2, HashBcrypt, HashSHA256, HashSHA512} {
		if _, ok := HasherFor(algo); !ok {
			t.Errorf("HasherFor(%q) not found", algo)
		}
	}
	if _, ok := HasherFor("md5"); ok {
		t.Error("HasherFor(md5) should not be found")
	}
}
