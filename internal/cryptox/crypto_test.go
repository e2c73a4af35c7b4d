package cryptox

import (
	"strings"
	"testing"

	"github.com/guncedev/gunce/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("gizli")
	require.NoError(t, err)
	h2, err := HashPassword("gizli")
	require.NoError(t, err)

	// same password, fresh salt, different encodings
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("gizli", h1))
	assert.True(t, VerifyPassword("gizli", h2))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad params", "$argon2id$v=19$m=abc,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad base64 salt", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad base64 hash", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("whatever", tt.encoded))
		})
	}
}

func TestEncryptText_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{"ascii", "dear diary"},
		{"turkish", "Bugün çok güzel bir gündü, yarını iple çekiyorum."},
		{"multiline", "line one\nline two\n\nline four"},
		{"long", strings.Repeat("kelime ", 5000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := EncryptText(tt.plaintext, "p@ssw0rd")
			require.NoError(t, err)

			got, err := DecryptText(pkg, "p@ssw0rd")
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, got)
		})
	}
}

func TestDecryptText_WrongPassword(t *testing.T) {
	pkg, err := EncryptText("çok gizli itiraflar", "password-one")
	require.NoError(t, err)

	_, err = DecryptText(pkg, "password-two")
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestDecryptText_TamperedCiphertext(t *testing.T) {
	pkg, err := EncryptText("sealed text", "pw")
	require.NoError(t, err)

	pkg.Ciphertext[0] ^= 0xff
	_, err = DecryptText(pkg, "pw")
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestDecryptText_TamperedTag(t *testing.T) {
	pkg, err := EncryptText("sealed text", "pw")
	require.NoError(t, err)

	pkg.Tag[0] ^= 0xff
	_, err = DecryptText(pkg, "pw")
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestEncryptText_FreshSaltAndNonce(t *testing.T) {
	p1, err := EncryptText("same text", "same password")
	require.NoError(t, err)
	p2, err := EncryptText("same text", "same password")
	require.NoError(t, err)

	assert.NotEqual(t, p1.Nonce, p2.Nonce)
	assert.NotEqual(t, p1.Salt, p2.Salt)
	assert.NotEqual(t, p1.Ciphertext, p2.Ciphertext)
}

func TestPackage_JSONRoundTrip(t *testing.T) {
	pkg, err := EncryptText("serialize me", "pw")
	require.NoError(t, err)

	raw, err := pkg.Marshal()
	require.NoError(t, err)

	// stored format is a single JSON object with the four named fields
	assert.Contains(t, string(raw), `"salt"`)
	assert.Contains(t, string(raw), `"nonce"`)
	assert.Contains(t, string(raw), `"tag"`)
	assert.Contains(t, string(raw), `"ciphertext"`)

	restored, err := UnmarshalPackage(raw)
	require.NoError(t, err)

	got, err := DecryptText(restored, "pw")
	require.NoError(t, err)
	assert.Equal(t, "serialize me", got)
}

func TestUnmarshalPackage_Corrupt(t *testing.T) {
	_, err := UnmarshalPackage([]byte("{not json"))
	require.ErrorIs(t, err, common.ErrDecryption)
}

// The login hash and entry encryption are independent derivations: checking
// a password never touches a package, and opening a package never needs the
// stored hash.
func TestLoginHashAndEntryKeyIndependent(t *testing.T) {
	const password = "shared secret"

	hash, err := HashPassword(password)
	require.NoError(t, err)
	pkg, err := EncryptText("entry body", password)
	require.NoError(t, err)

	// decrypt succeeds with the password alone
	got, err := DecryptText(pkg, password)
	require.NoError(t, err)
	assert.Equal(t, "entry body", got)

	// verify succeeds with the hash alone
	assert.True(t, VerifyPassword(password, hash))
}
