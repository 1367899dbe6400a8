package sshd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndInspectHostKey(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "ssh_host_ed25519_key")

	require.NoError(t, GenerateHostKey(keyPath, "bastion-test"))

	infos := InspectHostKeys([]string{keyPath})
	require.Len(t, infos, 1)

	info := infos[0]
	assert.True(t, info.Exists)
	assert.NoError(t, info.Err)
	assert.Equal(t, "ssh-ed25519", info.Type)
	assert.True(t, strings.HasPrefix(info.Fingerprint, "SHA256:"), "fingerprint: %s", info.Fingerprint)

	// The .pub companion exists and is an authorized_keys style line.
	pub, err := os.ReadFile(keyPath + ".pub")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pub), "ssh-ed25519 "))
}

func TestGenerateHostKeyRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "ssh_host_ed25519_key")

	require.NoError(t, GenerateHostKey(keyPath, ""))
	err := GenerateHostKey(keyPath, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")
}

func TestInspectMissingHostKey(t *testing.T) {
	infos := InspectHostKeys([]string{filepath.Join(t.TempDir(), "nope")})
	require.Len(t, infos, 1)
	assert.False(t, infos[0].Exists)
	assert.NoError(t, infos[0].Err)
	assert.Empty(t, infos[0].Fingerprint)
}

func TestInspectGarbageHostKey(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "garbage")
	require.NoError(t, os.WriteFile(keyPath, []byte("not a key at all"), 0600))

	infos := InspectHostKeys([]string{keyPath})
	require.Len(t, infos, 1)
	assert.True(t, infos[0].Exists)
	assert.Error(t, infos[0].Err)
}
