// Package sshd installs rendered policy mappings into the daemon's native
// configuration file and keeps the service in sync: serialize, back up,
// validate, atomically swap, reload.
package sshd

import (
	"strings"

	"grimm.is/bastion/internal/brand"
	"grimm.is/bastion/internal/policy"
)

// Serialize converts a directive mapping into sshd_config syntax: one
// directive per line, `Name value`. Multi-valued directives (Port,
// ListenAddress) emit one line per value, which is what the daemon parses.
// Output is deterministic for a given mapping.
func Serialize(m policy.Mapping) string {
	var sb strings.Builder

	sb.WriteString("# Managed by " + brand.Name + ". Manual edits will be overwritten.\n")

	for _, d := range m {
		if len(d.Values) == 0 {
			continue
		}
		for _, v := range d.Values {
			sb.WriteString(d.Name)
			sb.WriteByte(' ')
			sb.WriteString(v)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// SerializeWithHostKeys emits the mapping plus one HostKey line per key
// file. The renderer keeps host keys out of the mapping; they join the file
// here, after the network directives.
func SerializeWithHostKeys(m policy.Mapping, hostKeyFiles []string) string {
	var sb strings.Builder
	sb.WriteString(Serialize(m))

	for _, path := range hostKeyFiles {
		sb.WriteString("HostKey ")
		sb.WriteString(path)
		sb.WriteByte('\n')
	}

	return sb.String()
}
