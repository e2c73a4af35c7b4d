package diary

import (
	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/cryptox"
)

// ApplyEncryption seals e.Content into EncryptedContent under password and
// clears the persisted plaintext. Derived fields must already be computed
// from the plaintext; ApplyEncryption does not touch them.
//
// Plaintext retention policy: protected entries never store plaintext. The
// content survives only in memory on the caller's side until the next
// decrypt.
func (e *Entry) ApplyEncryption(password string) error {
	pkg, err := cryptox.EncryptText(e.Content, password)
	if err != nil {
		return err
	}
	raw, err := pkg.Marshal()
	if err != nil {
		return err
	}
	e.EncryptedContent = raw
	e.IsEncrypted = true
	e.Content = ""
	return nil
}

// DecryptContent returns the plaintext of e. For unprotected entries this
// is simply Content; for protected entries the stored package is opened
// with password. Failure surfaces as common.ErrDecryption, never as empty
// content.
func (e *Entry) DecryptContent(password string) (string, error) {
	if !e.IsEncrypted {
		return e.Content, nil
	}
	if len(e.EncryptedContent) == 0 {
		return "", common.ErrDecryption
	}
	pkg, err := cryptox.UnmarshalPackage(e.EncryptedContent)
	if err != nil {
		return "", err
	}
	return cryptox.DecryptText(pkg, password)
}
