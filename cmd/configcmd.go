package cmd

import (
	"flag"
	"fmt"
	"os"

	"grimm.is/bastion/internal/brand"
	"grimm.is/bastion/internal/config"
)

// RunConfig handles configuration file management subcommands.
func RunConfig(args []string) error {
	if len(args) == 0 {
		return configUsage()
	}

	switch args[0] {
	case "init":
		flags := flag.NewFlagSet("config init", flag.ExitOnError)
		force := flags.Bool("force", false, "Overwrite an existing file")
		flags.Parse(args[1:])

		path := brand.DefaultConfigFile()
		if len(flags.Args()) > 0 {
			path = flags.Arg(0)
		}
		return configInit(path, *force)

	case "show":
		path := brand.DefaultConfigFile()
		if len(args) > 1 {
			path = args[1]
		}
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		data, err := config.GenerateHCL(cfg)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		return nil

	case "help":
		return configUsage()

	default:
		fmt.Printf("Unknown config subcommand: %s\n\n", args[0])
		return configUsage()
	}
}

// configInit writes a starter policy file with the apply defaults filled in,
// so operators edit values instead of discovering block names.
func configInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := &config.Config{}
	cfg.Normalize()

	if err := config.SaveFile(cfg, path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func configUsage() error {
	fmt.Printf(`Usage: %s config <subcommand>

Subcommands:
  init [path]   Write a starter policy file (default %s)
                Options: --force
  show [path]   Parse a policy file and print its normalized form
  help          Show this help
`, brand.BinaryName, brand.DefaultConfigFile())
	return nil
}
