package cmd

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"grimm.is/bastion/internal/brand"
	"grimm.is/bastion/internal/config"
	"grimm.is/bastion/internal/sshd"
)

// RunHostKeys inspects the host keys named by the policy file, optionally
// generating a new ed25519 key.
func RunHostKeys(args []string) error {
	flags := flag.NewFlagSet("hostkeys", flag.ExitOnError)
	configFile := flags.String("config", brand.DefaultConfigFile(), "Configuration file")
	flags.StringVar(configFile, "c", brand.DefaultConfigFile(), "Configuration file (short)")
	generate := flags.String("generate", "", "Generate a new ed25519 key at the given path")
	flags.Parse(args)

	if *generate != "" {
		hostname, _ := os.Hostname()
		if err := sshd.GenerateHostKey(*generate, "root@"+hostname); err != nil {
			return err
		}
		fmt.Printf("Generated %s and %s.pub\n", *generate, *generate)
		return nil
	}

	cfg, err := config.LoadFile(*configFile)
	if err != nil {
		return err
	}

	infos := sshd.InspectHostKeys(cfg.PolicyInput().HostKeyFiles)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PATH\tSTATUS\tTYPE\tFINGERPRINT")
	for _, info := range infos {
		status := "ok"
		switch {
		case !info.Exists:
			status = "missing"
		case info.Encrypted:
			status = "encrypted"
		case info.Err != nil:
			status = "error: " + info.Err.Error()
		}
		keyType := info.Type
		if keyType == "" {
			keyType = "-"
		}
		fingerprint := info.Fingerprint
		if fingerprint == "" {
			fingerprint = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Path, status, keyType, fingerprint)
	}
	w.Flush()

	return nil
}
