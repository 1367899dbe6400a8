package policy

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(t *testing.T, m Mapping, name string) string {
	t.Helper()
	vals := m.Get(name)
	require.NotNil(t, vals, "directive %s missing", name)
	require.Len(t, vals, 1, "directive %s should have one value", name)
	return vals[0]
}

func TestRenderDeterministic(t *testing.T) {
	in := DefaultInput()
	in.CBCRequired = true
	in.Ports = []int{22, 2222}

	a := Render(in)
	b := Render(in)
	assert.True(t, reflect.DeepEqual(a, b), "identical input must yield identical output")
}

func TestRenderDefaults(t *testing.T) {
	m := Render(DefaultInput())

	assert.Equal(t, []string{"22"}, m.Get("Port"))
	assert.Equal(t, []string{"0.0.0.0"}, m.Get("ListenAddress"))
	assert.Equal(t, "no", single(t, m, "PermitRootLogin"))
	assert.Equal(t, "aes256-ctr,aes192-ctr,aes128-ctr", single(t, m, "Ciphers"))
	assert.Equal(t, "no", single(t, m, "UsePAM"))
	assert.Equal(t, "600", single(t, m, "ClientAliveInterval"))
	assert.Equal(t, "3", single(t, m, "ClientAliveCountMax"))
	assert.Equal(t, "inet", single(t, m, "AddressFamily"))
}

func TestRenderAddressFamily(t *testing.T) {
	in := DefaultInput()
	assert.Equal(t, "inet", single(t, Render(in), "AddressFamily"))

	in.IPv6Enabled = true
	assert.Equal(t, "any", single(t, Render(in), "AddressFamily"))
}

func TestRenderCipherSelection(t *testing.T) {
	in := DefaultInput()
	ciphers := single(t, Render(in), "Ciphers")
	assert.NotContains(t, ciphers, "cbc", "hardened default must exclude CBC modes")

	in.CBCRequired = true
	ciphers = single(t, Render(in), "Ciphers")
	assert.Equal(t, "aes256-ctr,aes192-ctr,aes128-ctr,aes256-cbc,aes192-cbc,aes128-cbc", ciphers)
}

func TestRenderMACSelection(t *testing.T) {
	in := DefaultInput()
	macs := single(t, Render(in), "MACs")
	assert.Equal(t, "hmac-sha2-512,hmac-sha2-256,hmac-ripemd160", macs)
	assert.NotContains(t, macs, "hmac-sha1")

	in.WeakHMACAllowed = true
	macs = single(t, Render(in), "MACs")
	assert.Equal(t, "hmac-sha2-512,hmac-sha2-256,hmac-ripemd160,hmac-sha1", macs)
}

func TestRenderKexSelection(t *testing.T) {
	in := DefaultInput()
	kex := single(t, Render(in), "KexAlgorithms")
	assert.Equal(t, "diffie-hellman-group-exchange-sha256,diffie-hellman-group14-sha1,diffie-hellman-group-exchange-sha1", kex)

	in.WeakKexAllowed = true
	kex = single(t, Render(in), "KexAlgorithms")
	assert.True(t, strings.HasSuffix(kex, ",diffie-hellman-group1-exchange-sha1"))
}

func TestRenderRootLogin(t *testing.T) {
	in := DefaultInput()
	assert.Equal(t, "no", single(t, Render(in), "PermitRootLogin"))

	in.AllowRootWithKey = true
	assert.Equal(t, "without-password", single(t, Render(in), "PermitRootLogin"))
}

func TestRenderScenarioLegacyRootIPv6(t *testing.T) {
	in := DefaultInput()
	in.CBCRequired = true
	in.AllowRootWithKey = true
	in.IPv6Enabled = true

	m := Render(in)
	assert.True(t, strings.HasSuffix(single(t, m, "Ciphers"), "aes128-cbc"))
	assert.Equal(t, "without-password", single(t, m, "PermitRootLogin"))
	assert.Equal(t, "any", single(t, m, "AddressFamily"))
}

func TestRenderFixedConstants(t *testing.T) {
	// These are not controlled by any input parameter.
	inputs := []Input{
		DefaultInput(),
		{
			CBCRequired:                true,
			WeakHMACAllowed:            true,
			WeakKexAllowed:             true,
			Ports:                      []int{2022},
			ListenAddresses:            []string{"::"},
			ClientAliveIntervalSeconds: 0,
			ClientAliveCountMax:        0,
			AllowRootWithKey:           true,
			IPv6Enabled:                true,
			UsePAM:                     true,
		},
	}

	for _, in := range inputs {
		m := Render(in)
		assert.Equal(t, "no", single(t, m, "PasswordAuthentication"))
		assert.Equal(t, "no", single(t, m, "PermitEmptyPasswords"))
		assert.Equal(t, "no", single(t, m, "X11Forwarding"))
		assert.Equal(t, "2", single(t, m, "Protocol"))
		assert.Equal(t, "yes", single(t, m, "StrictModes"))
		assert.Equal(t, "30s", single(t, m, "LoginGraceTime"))
		assert.Equal(t, "2", single(t, m, "MaxAuthTries"))
		assert.Equal(t, "10", single(t, m, "MaxSessions"))
		assert.Equal(t, "10:30:100", single(t, m, "MaxStartups"))
		assert.Equal(t, "no", single(t, m, "TCPKeepAlive"))
		assert.Equal(t, "no", single(t, m, "PrintMotd"))
	}
}

func TestRenderPassthrough(t *testing.T) {
	in := DefaultInput()
	in.Ports = []int{22, 2222}
	in.ListenAddresses = []string{"10.0.0.1", "192.168.1.1"}

	m := Render(in)
	assert.Equal(t, []string{"22", "2222"}, m.Get("Port"))
	assert.Equal(t, []string{"10.0.0.1", "192.168.1.1"}, m.Get("ListenAddress"))
}

func TestRenderNoHostKeyDirective(t *testing.T) {
	// Host key files ride alongside to the applier; they are not part of
	// the rendered mapping.
	m := Render(DefaultInput())
	assert.Nil(t, m.Get("HostKey"))
}

func TestRenderUsePAM(t *testing.T) {
	in := DefaultInput()
	assert.Equal(t, "no", single(t, Render(in), "UsePAM"))
	in.UsePAM = true
	assert.Equal(t, "yes", single(t, Render(in), "UsePAM"))
}

func TestDefaultInputHostKeys(t *testing.T) {
	in := DefaultInput()
	require.Len(t, in.HostKeyFiles, 3)
	assert.Equal(t, "/etc/ssh/ssh_host_rsa_key", in.HostKeyFiles[0])
}
