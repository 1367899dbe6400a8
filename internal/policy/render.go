// Package policy renders a hardened sshd_config directive set from a small
// number of high-level toggles. Rendering is a pure function: the same input
// always produces the same ordered directive mapping, which keeps repeated
// applies idempotent.
package policy

import "strconv"

// Input holds the policy parameters. All fields must be populated before
// calling Render; DefaultInput returns the hardened baseline and callers
// (normally the config layer) override individual fields from there.
type Input struct {
	// CBCRequired appends legacy CBC ciphers for clients that cannot do CTR.
	CBCRequired bool
	// WeakHMACAllowed appends hmac-sha1 for legacy clients.
	WeakHMACAllowed bool
	// WeakKexAllowed appends legacy group1 key exchange.
	WeakKexAllowed bool

	Ports           []int
	ListenAddresses []string

	// HostKeyFiles is passed through to the applier; it is not emitted as a
	// directive by Render.
	HostKeyFiles []string

	ClientAliveIntervalSeconds int
	ClientAliveCountMax        int

	// AllowRootWithKey permits root login with public key auth only
	// (without-password). Default is no root login at all.
	AllowRootWithKey bool

	IPv6Enabled bool
	UsePAM      bool
}

// DefaultInput returns the fully-populated hardened defaults.
func DefaultInput() Input {
	return Input{
		Ports:           []int{22},
		ListenAddresses: []string{"0.0.0.0"},
		HostKeyFiles: []string{
			"/etc/ssh/ssh_host_rsa_key",
			"/etc/ssh/ssh_host_dsa_key",
			"/etc/ssh/ssh_host_ecdsa_key",
		},
		ClientAliveIntervalSeconds: 600,
		ClientAliveCountMax:        3,
	}
}

// Directive is a single sshd_config setting. Most directives carry exactly
// one value; Port and ListenAddress may carry several, which the serializer
// emits as one line per value.
type Directive struct {
	Name   string
	Values []string
}

// Value returns the single value of a directive, or its first value.
func (d Directive) Value() string {
	if len(d.Values) == 0 {
		return ""
	}
	return d.Values[0]
}

// Mapping is an ordered set of directives, produced fresh by every Render
// call and never mutated afterwards.
type Mapping []Directive

// Get returns the values for a directive name, or nil if absent.
func (m Mapping) Get(name string) []string {
	for _, d := range m {
		if d.Name == name {
			return d.Values
		}
	}
	return nil
}

// Algorithm suites. The weak variants extend the strong ones; order matters
// because sshd honors client preference within the server list.
const (
	ciphersStrong  = "aes256-ctr,aes192-ctr,aes128-ctr"
	ciphersWithCBC = ciphersStrong + ",aes256-cbc,aes192-cbc,aes128-cbc"

	macsStrong   = "hmac-sha2-512,hmac-sha2-256,hmac-ripemd160"
	macsWithSHA1 = macsStrong + ",hmac-sha1"

	kexStrong   = "diffie-hellman-group-exchange-sha256,diffie-hellman-group14-sha1,diffie-hellman-group-exchange-sha1"
	kexWithWeak = kexStrong + ",diffie-hellman-group1-exchange-sha1"
)

// Render maps the policy input onto the full directive set. It is total over
// any well-typed Input: no error conditions, no side effects.
func Render(in Input) Mapping {
	addressFamily := "inet"
	if in.IPv6Enabled {
		addressFamily = "any"
	}

	ciphers := ciphersStrong
	if in.CBCRequired {
		ciphers = ciphersWithCBC
	}

	macs := macsStrong
	if in.WeakHMACAllowed {
		macs = macsWithSHA1
	}

	kex := kexStrong
	if in.WeakKexAllowed {
		kex = kexWithWeak
	}

	permitRootLogin := "no"
	if in.AllowRootWithKey {
		permitRootLogin = "without-password"
	}

	usePAM := "no"
	if in.UsePAM {
		usePAM = "yes"
	}

	m := make(Mapping, 0, 48)
	add := func(name string, values ...string) {
		m = append(m, Directive{Name: name, Values: values})
	}

	// Network
	add("Port", intStrings(in.Ports)...)
	add("AddressFamily", addressFamily)
	add("ListenAddress", in.ListenAddresses...)

	// Protocol and crypto
	add("Protocol", "2")
	add("Ciphers", ciphers)
	add("MACs", macs)
	add("KexAlgorithms", kex)

	// Logging
	add("SyslogFacility", "AUTH")
	add("LogLevel", "VERBOSE")

	// Authentication
	add("LoginGraceTime", "30s")
	add("PermitRootLogin", permitRootLogin)
	add("StrictModes", "yes")
	add("MaxAuthTries", "2")
	add("MaxSessions", "10")
	add("MaxStartups", "10:30:100")
	add("PubkeyAuthentication", "yes")
	add("IgnoreRhosts", "yes")
	add("IgnoreUserKnownHosts", "yes")
	add("RhostsRSAAuthentication", "no")
	add("HostbasedAuthentication", "no")
	add("RSAAuthentication", "yes")
	add("PasswordAuthentication", "no")
	add("PermitEmptyPasswords", "no")
	add("ChallengeResponseAuthentication", "no")

	// Kerberos / GSSAPI: off, clean up what we can
	add("KerberosAuthentication", "no")
	add("KerberosOrLocalPasswd", "no")
	add("KerberosTicketCleanup", "yes")
	add("GSSAPIAuthentication", "no")
	add("GSSAPICleanupCredentials", "yes")

	add("UsePAM", usePAM)
	add("UseLogin", "no")
	add("UsePrivilegeSeparation", "yes")
	add("PermitUserEnvironment", "no")
	add("Compression", "delayed")

	// Session keep-alive via the protocol, not TCP
	add("TCPKeepAlive", "no")
	add("ClientAliveInterval", strconv.Itoa(in.ClientAliveIntervalSeconds))
	add("ClientAliveCountMax", strconv.Itoa(in.ClientAliveCountMax))

	// Tunnels and forwarding
	add("PermitTunnel", "no")
	add("AllowTcpForwarding", "no")
	add("AllowAgentForwarding", "no")
	add("GatewayPorts", "no")
	add("X11Forwarding", "no")
	add("X11UseLocalhost", "yes")

	// Misc
	add("PrintMotd", "no")
	add("PrintLastLog", "no")
	add("Banner", "none")
	add("DebianBanner", "no")
	add("UseDNS", "no")

	return m
}

func intStrings(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}
