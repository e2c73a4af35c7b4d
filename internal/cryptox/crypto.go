// Package cryptox implements the crypto primitives behind the diary's
// password gate and at-rest content protection: argon2id for password
// hashing and key derivation, AES-GCM for authenticated encryption.
//
// All functions are pure; keys are derived per call and never cached.
// The login hash and per-entry encryption keys use independent random
// salts, so neither secret can be recovered from the other even when the
// same password string backs both.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/guncedev/gunce/internal/common"
	"golang.org/x/crypto/argon2"
)

// argon2id work factors. Changing these does not invalidate stored hashes
// or packages: both formats embed the parameters they were produced with.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLen       = 32

	saltLen  = 16
	nonceLen = 12
	tagLen   = 16
)

func deriveKey(password, salt []byte, time, memory uint32, threads uint8) []byte {
	return argon2.IDKey(password, salt, time, memory, threads, keyLen)
}

func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// HashPassword derives a salted argon2id hash of password and encodes it as
// a self-describing PHC-style string:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<b64 salt>$<b64 hash>
//
// Verification needs no side-channel storage; salt and work factors travel
// inside the string. Fails with common.ErrHashing only on internal entropy
// failure, never on attacker-controlled input.
func HashPassword(password string) (string, error) {
	salt, err := randBytes(saltLen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	hash := deriveKey([]byte(password), salt, argonTime, argonMemory, argonThreads)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword recomputes the hash with the parameters embedded in
// encoded and compares in constant time. A malformed encoded value is
// treated as a mismatch, not an error.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// Package is the self-contained ciphertext bundle stored in an entry's
// encrypted_content column. It carries everything DecryptText needs besides
// the password itself. The JSON encoding (base64 text fields) is a stable
// storage format: packages written today must stay decryptable by future
// versions.
type Package struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Tag        []byte `json:"tag"`
	Ciphertext []byte `json:"ciphertext"`
}

// Marshal serializes the package to its canonical JSON form.
func (p *Package) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalPackage parses a stored package. Corrupt input surfaces as
// common.ErrDecryption so callers see the same failure as a bad tag.
func UnmarshalPackage(data []byte) (*Package, error) {
	var p Package
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, common.ErrDecryption
	}
	return &p, nil
}

// EncryptText seals plaintext under a key derived from password. Every call
// draws a fresh random salt and a fresh random nonce; neither is ever
// reused, even for identical inputs. The GCM authentication tag is split
// off the sealed output so the package format names all four components
// explicitly.
func EncryptText(plaintext, password string) (*Package, error) {
	salt, err := randBytes(saltLen)
	if err != nil {
		return nil, fmt.Errorf("salt generation failed: %w", err)
	}
	nonce, err := randBytes(nonceLen)
	if err != nil {
		return nil, fmt.Errorf("nonce generation failed: %w", err)
	}

	key := deriveKey([]byte(password), salt, argonTime, argonMemory, argonThreads)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	sealed := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)

	return &Package{
		Salt:       salt,
		Nonce:      nonce,
		Tag:        sealed[len(sealed)-tagLen:],
		Ciphertext: sealed[:len(sealed)-tagLen],
	}, nil
}

// DecryptText re-derives the key from password and the package's salt, then
// opens and authenticates the ciphertext. A failed tag check means either a
// wrong password or corrupted data; both surface as common.ErrDecryption
// and callers must not try to tell them apart. Decryption failure is always
// an error, never empty content.
func DecryptText(pkg *Package, password string) (string, error) {
	if pkg == nil || len(pkg.Nonce) != nonceLen || len(pkg.Tag) != tagLen {
		return "", common.ErrDecryption
	}

	key := deriveKey([]byte(password), pkg.Salt, argonTime, argonMemory, argonThreads)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", common.ErrDecryption
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", common.ErrDecryption
	}

	sealed := make([]byte, 0, len(pkg.Ciphertext)+len(pkg.Tag))
	sealed = append(sealed, pkg.Ciphertext...)
	sealed = append(sealed, pkg.Tag...)

	plaintext, err := aesgcm.Open(nil, pkg.Nonce, sealed, nil)
	if err != nil {
		return "", common.ErrDecryption
	}
	return string(plaintext), nil
}
