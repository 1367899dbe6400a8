package sshd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"grimm.is/bastion/internal/policy"
)

func TestSerialize(t *testing.T) {
	in := policy.DefaultInput()
	in.Ports = []int{22, 2222}
	out := Serialize(policy.Render(in))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "#"), "output should start with the managed-by header")

	// Multi-valued directives become one line per value.
	assert.Contains(t, out, "Port 22\n")
	assert.Contains(t, out, "Port 2222\n")
	assert.NotContains(t, out, "Port 22,2222")

	assert.Contains(t, out, "PermitRootLogin no\n")
	assert.Contains(t, out, "Ciphers aes256-ctr,aes192-ctr,aes128-ctr\n")

	// Each non-comment line is `Name value`.
	for _, line := range lines[1:] {
		parts := strings.SplitN(line, " ", 2)
		assert.Len(t, parts, 2, "malformed line: %q", line)
		assert.NotEmpty(t, parts[1], "empty value in line: %q", line)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	in := policy.DefaultInput()
	in.CBCRequired = true
	m := policy.Render(in)

	assert.Equal(t, Serialize(m), Serialize(m))
}

func TestSerializeWithHostKeys(t *testing.T) {
	in := policy.DefaultInput()
	out := SerializeWithHostKeys(policy.Render(in), in.HostKeyFiles)

	assert.Contains(t, out, "HostKey /etc/ssh/ssh_host_rsa_key\n")
	assert.Contains(t, out, "HostKey /etc/ssh/ssh_host_dsa_key\n")
	assert.Contains(t, out, "HostKey /etc/ssh/ssh_host_ecdsa_key\n")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
