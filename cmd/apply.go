package cmd

import (
	"fmt"

	"grimm.is/bastion/internal/config"
	"grimm.is/bastion/internal/logging"
	"grimm.is/bastion/internal/policy"
	"grimm.is/bastion/internal/sshd"
)

// RunApply renders the policy file and installs the result, backing up and
// validating along the way. With dryRun it only reports what would change.
func RunApply(configFile string, dryRun bool) error {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	in := cfg.PolicyInput()
	m := policy.Render(in)

	applier := sshd.NewApplier(cfg.Apply, logging.Default())
	applier.SetDryRun(dryRun)

	result, err := applier.Apply(m, in.HostKeyFiles)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}

	switch {
	case !result.Changed:
		fmt.Printf("%s is up to date\n", cfg.Apply.Path)
	case result.DryRun:
		fmt.Printf("dry run: %s would be updated\n", cfg.Apply.Path)
	default:
		fmt.Printf("Applied %s", cfg.Apply.Path)
		if result.BackupPath != "" {
			fmt.Printf(" (previous config saved to %s)", result.BackupPath)
		}
		fmt.Println()
		if result.Reloaded {
			fmt.Printf("Service %s reloaded\n", cfg.Apply.Service)
		}
	}

	return nil
}
