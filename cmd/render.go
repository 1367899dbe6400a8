package cmd

import (
	"fmt"

	"grimm.is/bastion/internal/config"
	"grimm.is/bastion/internal/policy"
	"grimm.is/bastion/internal/sshd"
)

// RunRender prints the generated sshd_config for a policy file to stdout.
// Useful for piping into review tooling or building configs for other hosts.
func RunRender(configFile string) error {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return err
	}

	in := cfg.PolicyInput()
	fmt.Print(sshd.SerializeWithHostKeys(policy.Render(in), in.HostKeyFiles))
	return nil
}
