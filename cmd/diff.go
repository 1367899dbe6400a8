package cmd

import (
	"fmt"

	"grimm.is/bastion/internal/config"
	"grimm.is/bastion/internal/policy"
	"grimm.is/bastion/internal/sshd"
)

// RunDiff shows a unified diff between the installed sshd_config and what
// the policy file would render. No output means no changes.
func RunDiff(configFile string) error {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return err
	}

	in := cfg.PolicyInput()
	diff, err := sshd.Diff(cfg.Apply.Path, policy.Render(in), in.HostKeyFiles)
	if err != nil {
		return err
	}

	if diff == "" {
		fmt.Printf("%s is up to date\n", cfg.Apply.Path)
		return nil
	}
	fmt.Print(diff)
	return nil
}
