// Package config defines the tool configuration schema and its HCL/JSON
// loaders. The ssh_policy block carries the high-level hardening toggles;
// the apply block tells the applier where the rendered file goes and which
// service to notify.
package config

import (
	"fmt"

	"grimm.is/bastion/internal/brand"
	"grimm.is/bastion/internal/policy"
	"grimm.is/bastion/internal/validation"
)

// Config is the root of the tool configuration.
type Config struct {
	SSHPolicy *SSHPolicy   `hcl:"ssh_policy,block" json:"ssh_policy,omitempty"`
	Apply     *ApplyConfig `hcl:"apply,block" json:"apply,omitempty"`
}

// SSHPolicy mirrors the policy renderer input. Every field is optional;
// unset fields take the hardened defaults.
type SSHPolicy struct {
	CBCRequired     bool `hcl:"cbc_required,optional" json:"cbc_required"`
	WeakHMACAllowed bool `hcl:"weak_hmac_allowed,optional" json:"weak_hmac_allowed"`
	WeakKexAllowed  bool `hcl:"weak_kex_allowed,optional" json:"weak_kex_allowed"`

	Ports           []int    `hcl:"ports,optional" json:"ports,omitempty"`
	ListenAddresses []string `hcl:"listen_addresses,optional" json:"listen_addresses,omitempty"`
	HostKeyFiles    []string `hcl:"host_key_files,optional" json:"host_key_files,omitempty"`

	// Pointers so an explicit zero is distinguishable from unset.
	ClientAliveInterval *int `hcl:"client_alive_interval,optional" json:"client_alive_interval,omitempty"`
	ClientAliveCountMax *int `hcl:"client_alive_count_max,optional" json:"client_alive_count_max,omitempty"`

	AllowRootWithKey bool `hcl:"allow_root_with_key,optional" json:"allow_root_with_key"`
	IPv6Enabled      bool `hcl:"ipv6_enabled,optional" json:"ipv6_enabled"`
	UsePAM           bool `hcl:"use_pam,optional" json:"use_pam"`
}

// ApplyConfig controls where and how the rendered file is installed.
type ApplyConfig struct {
	// Path of the managed sshd_config. Default: /etc/ssh/sshd_config.
	Path string `hcl:"path,optional" json:"path,omitempty"`
	// Service to reload on change. Default: ssh.
	Service string `hcl:"service,optional" json:"service,omitempty"`
	// Validate runs `sshd -t` against the staged file before install.
	// Default: true.
	Validate *bool `hcl:"validate,optional" json:"validate,omitempty"`
	// MaxBackups limits retained copies of replaced files. Default: 20.
	MaxBackups int `hcl:"max_backups,optional" json:"max_backups,omitempty"`
}

// Normalize fills missing blocks and default values in place. It runs at the
// load boundary so the renderer never sees an unresolved field.
func (c *Config) Normalize() {
	if c.SSHPolicy == nil {
		c.SSHPolicy = &SSHPolicy{}
	}
	if c.Apply == nil {
		c.Apply = &ApplyConfig{}
	}

	if c.Apply.Path == "" {
		c.Apply.Path = brand.DefaultTargetPath
	}
	if c.Apply.Service == "" {
		c.Apply.Service = brand.DefaultServiceName
	}
	if c.Apply.Validate == nil {
		v := true
		c.Apply.Validate = &v
	}
	if c.Apply.MaxBackups <= 0 {
		c.Apply.MaxBackups = 20
	}
}

// Validate checks the normalized config for values that would render a
// broken file or leak into a command line.
func (c *Config) Validate() error {
	in := c.PolicyInput()

	for _, port := range in.Ports {
		if err := validation.ValidatePort(port); err != nil {
			return fmt.Errorf("ssh_policy: %w", err)
		}
	}
	for _, addr := range in.ListenAddresses {
		if err := validation.ValidateListenAddress(addr); err != nil {
			return fmt.Errorf("ssh_policy: %w", err)
		}
	}
	for _, keyFile := range in.HostKeyFiles {
		if err := validation.ValidateFilePath(keyFile); err != nil {
			return fmt.Errorf("ssh_policy: %w", err)
		}
	}
	if in.ClientAliveIntervalSeconds < 0 {
		return fmt.Errorf("ssh_policy: client_alive_interval cannot be negative")
	}
	if in.ClientAliveCountMax < 0 {
		return fmt.Errorf("ssh_policy: client_alive_count_max cannot be negative")
	}

	if err := validation.ValidateFilePath(c.Apply.Path); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	if err := validation.ValidateServiceName(c.Apply.Service); err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	return nil
}

// PolicyInput resolves the policy block against the hardened defaults and
// returns a fully-populated renderer input.
func (c *Config) PolicyInput() policy.Input {
	in := policy.DefaultInput()

	p := c.SSHPolicy
	if p == nil {
		return in
	}

	in.CBCRequired = p.CBCRequired
	in.WeakHMACAllowed = p.WeakHMACAllowed
	in.WeakKexAllowed = p.WeakKexAllowed
	in.AllowRootWithKey = p.AllowRootWithKey
	in.IPv6Enabled = p.IPv6Enabled
	in.UsePAM = p.UsePAM

	if len(p.Ports) > 0 {
		in.Ports = p.Ports
	}
	if len(p.ListenAddresses) > 0 {
		in.ListenAddresses = p.ListenAddresses
	}
	if len(p.HostKeyFiles) > 0 {
		in.HostKeyFiles = p.HostKeyFiles
	}
	if p.ClientAliveInterval != nil {
		in.ClientAliveIntervalSeconds = *p.ClientAliveInterval
	}
	if p.ClientAliveCountMax != nil {
		in.ClientAliveCountMax = *p.ClientAliveCountMax
	}

	return in
}
