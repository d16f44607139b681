// Package gpg provides GPG signature verification capabilities.
package gpg

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier implements GPG signature verification using ProtonMail's go-crypto
// A maintained, modern fork of golang.org/x/crypto/openpgp
// This is in external-adapters to isolate the external dependency
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyFromFile imports a GPG public key from a file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Try reading as binary
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifyDetached verifies a detached signature for a local file.
// Armored signatures (.asc) are tried first, then binary (.sig).
func (v *Verifier) VerifyDetached(filePath, sigPath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, call ImportKeyFromFile first")
	}

	//nolint:gosec // G304: filePath names the artifact being verified
	signed, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open signed file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer signed.Close()

	//nolint:gosec // G304: sigPath is the signature sidecar of filePath
	sig, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sig.Close()

	if _, err := openpgp.CheckArmoredDetachedSignature(v.keyring, signed, sig, nil); err == nil {
		return nil
	}

	// Rewind and retry as a binary signature
	if _, err := signed.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to reset signed file: %w", err)
	}
	if _, err := sig.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to reset signature: %w", err)
	}

	if _, err := openpgp.CheckDetachedSignature(v.keyring, signed, sig, nil); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}
