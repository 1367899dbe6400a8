package sshd

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// HostKeyInfo describes the state of one configured host key file.
type HostKeyInfo struct {
	Path        string
	Exists      bool
	Encrypted   bool
	Type        string
	Fingerprint string
	Err         error
}

// InspectHostKeys parses each configured host key file and reports its
// algorithm and SHA256 fingerprint. Missing or unparseable keys are reported
// per entry, never as a hard failure; the caller decides what matters.
func InspectHostKeys(paths []string) []HostKeyInfo {
	infos := make([]HostKeyInfo, 0, len(paths))

	for _, path := range paths {
		info := HostKeyInfo{Path: path}

		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				info.Err = err
			}
			infos = append(infos, info)
			continue
		}
		info.Exists = true

		signer, err := ssh.ParsePrivateKey(data)
		if err != nil {
			var passErr *ssh.PassphraseMissingError
			if errors.As(err, &passErr) {
				// Encrypted host keys are unusual but valid; sshd prompts
				// for the passphrase at startup.
				info.Encrypted = true
			} else {
				info.Err = fmt.Errorf("failed to parse key: %w", err)
			}
			infos = append(infos, info)
			continue
		}

		pub := signer.PublicKey()
		info.Type = pub.Type()
		info.Fingerprint = ssh.FingerprintSHA256(pub)
		infos = append(infos, info)
	}

	return infos
}

// GenerateHostKey creates a new ed25519 host key at path (OpenSSH format,
// mode 0600) plus the matching .pub file. Refuses to overwrite an existing
// key.
func GenerateHostKey(path, comment string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing key %s", path)
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(priv, comment)
	if err != nil {
		return fmt.Errorf("failed to marshal private key: %w", err)
	}

	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return fmt.Errorf("failed to derive public key: %w", err)
	}
	if err := os.WriteFile(path+".pub", ssh.MarshalAuthorizedKey(sshPub), 0644); err != nil {
		return fmt.Errorf("failed to write %s.pub: %w", path, err)
	}

	return nil
}
