package main

import (
	"flag"
	"fmt"
	"os"

	"grimm.is/bastion/cmd"
	"grimm.is/bastion/internal/brand"
	"grimm.is/bastion/internal/logging"
)

func main() {
	if level := os.Getenv(brand.ConfigEnvPrefix + "_LOG_LEVEL"); level != "" {
		logging.Default().SetLevel(logging.ParseLevel(level))
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		verbose := checkFlags.Bool("verbose", false, "Verbose output")
		checkFlags.BoolVar(verbose, "v", false, "Verbose output (short)")
		checkFlags.Parse(os.Args[2:])

		configFile := brand.DefaultConfigFile()
		if len(checkFlags.Args()) > 0 {
			configFile = checkFlags.Arg(0)
		}

		if err := cmd.RunCheck(configFile, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "render":
		configFile := brand.DefaultConfigFile()
		if len(os.Args) > 2 {
			configFile = os.Args[2]
		}
		if err := cmd.RunRender(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
			os.Exit(1)
		}

	case "diff":
		configFile := brand.DefaultConfigFile()
		if len(os.Args) > 2 {
			configFile = os.Args[2]
		}
		if err := cmd.RunDiff(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Diff failed: %v\n", err)
			os.Exit(1)
		}

	case "apply":
		applyFlags := flag.NewFlagSet("apply", flag.ExitOnError)
		dryRun := applyFlags.Bool("dry-run", false, "Report changes without applying")
		applyFlags.BoolVar(dryRun, "n", false, "Dry run (short)")
		applyFlags.Parse(os.Args[2:])

		configFile := brand.DefaultConfigFile()
		if len(applyFlags.Args()) > 0 {
			configFile = applyFlags.Arg(0)
		}

		if err := cmd.RunApply(configFile, *dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Apply failed: %v\n", err)
			os.Exit(1)
		}

	case "hostkeys":
		if err := cmd.RunHostKeys(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Hostkeys failed: %v\n", err)
			os.Exit(1)
		}

	case "backups":
		configFile := brand.DefaultConfigFile()
		if len(os.Args) > 2 {
			configFile = os.Args[2]
		}
		if err := cmd.RunBackups(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Backups failed: %v\n", err)
			os.Exit(1)
		}

	case "config":
		if err := cmd.RunConfig(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("%s version %s\n", brand.Name, brand.Version)
		fmt.Printf("Build: %s\n", brand.BuildTime)

	case "help", "-h", "--help":
		if len(os.Args) > 2 && os.Args[2] == "config" {
			cmd.RunConfig([]string{"help"})
		} else {
			printUsage()
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - %s

Usage:
  %s <command> [options]

Core Commands:
  check     Validate a policy file and summarize what it renders to
            Options: --verbose (-v)
  render    Print the generated sshd_config to stdout
  diff      Show a unified diff against the installed sshd_config
  apply     Render, validate and install the configuration
            Options: --dry-run (-n)

Utility Commands:
  hostkeys  Inspect configured host keys
            Options: --config (-c) <file>, --generate <path>
  backups   List retained copies of the managed file
  config    Manage policy files
            Subcommands: init, show, help
  version   Print version information

Examples:
  %s check -v /etc/bastion/bastion.hcl
  %s diff
  %s apply --dry-run
  %s apply
  %s hostkeys --generate /etc/ssh/ssh_host_ed25519_key

For command-specific help: %s help <command>
`,
		brand.Name, brand.Description,
		brand.LowerName,
		brand.LowerName, brand.LowerName, brand.LowerName, brand.LowerName,
		brand.LowerName, brand.LowerName)
}
