package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"grimm.is/bastion/internal/brand"
	"grimm.is/bastion/internal/config"
	"grimm.is/bastion/internal/policy"
	"grimm.is/bastion/internal/sshd"
)

// RunCheck validates the configuration file and reports what it renders to.
func RunCheck(configFile string, verbose bool) error {
	if len(configFile) == 0 {
		return fmt.Errorf("usage: %s check [-v] <config-file>\nExample: %s check -v %s", brand.BinaryName, brand.BinaryName, brand.DefaultConfigFile())
	}

	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	in := cfg.PolicyInput()
	m := policy.Render(in)

	fmt.Printf("Configuration valid!\n")
	fmt.Printf("Target: %s\n", cfg.Apply.Path)
	fmt.Printf("Service: %s\n", cfg.Apply.Service)
	fmt.Printf("Directives: %d\n", len(m))

	printSummary(in, m)

	if verbose {
		fmt.Println("\n--- Generated Configuration ---")
		fmt.Print(sshd.SerializeWithHostKeys(m, in.HostKeyFiles))
	}

	return nil
}

func printSummary(in policy.Input, m policy.Mapping) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)

	fmt.Fprintln(w, "\nSETTING\tVALUE")
	fmt.Fprintf(w, "Ports\t%s\n", joinInts(in.Ports))
	fmt.Fprintf(w, "Listen\t%s\n", strings.Join(in.ListenAddresses, ", "))
	fmt.Fprintf(w, "AddressFamily\t%s\n", directive(m, "AddressFamily"))
	fmt.Fprintf(w, "Root login\t%s\n", directive(m, "PermitRootLogin"))
	fmt.Fprintf(w, "Passwords\t%s\n", directive(m, "PasswordAuthentication"))
	fmt.Fprintf(w, "PAM\t%s\n", directive(m, "UsePAM"))
	fmt.Fprintf(w, "Ciphers\t%s\n", directive(m, "Ciphers"))
	fmt.Fprintf(w, "MACs\t%s\n", directive(m, "MACs"))
	fmt.Fprintf(w, "Kex\t%s\n", directive(m, "KexAlgorithms"))
	fmt.Fprintf(w, "Host keys\t%s\n", strings.Join(in.HostKeyFiles, ", "))
	w.Flush()
}

func directive(m policy.Mapping, name string) string {
	if values := m.Get(name); len(values) > 0 {
		return values[0]
	}
	return "-"
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
