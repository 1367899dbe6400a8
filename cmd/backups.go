package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"grimm.is/bastion/internal/config"
	"grimm.is/bastion/internal/sshd"
)

// RunBackups lists the retained copies of the managed file, newest first.
func RunBackups(configFile string) error {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return err
	}

	manager := sshd.NewBackupManager(cfg.Apply.Path, cfg.Apply.MaxBackups)
	backups, err := manager.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Printf("No backups in %s\n", manager.Dir())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tSIZE\tPATH")
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%d\t%s\n", b.Timestamp, b.Size, b.Path)
	}
	w.Flush()

	return nil
}
