package sshd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"grimm.is/bastion/internal/config"
	"grimm.is/bastion/internal/logging"
	"grimm.is/bastion/internal/policy"
)

// Applier installs a rendered mapping into the daemon's configuration file.
// The lifecycle per apply: serialize, compare, back up, stage, validate,
// atomic rename, reload. A no-op when the file already matches, which keeps
// repeated applies idempotent.
type Applier struct {
	path     string
	service  string
	validate bool
	dryRun   bool

	runner  CommandRunner
	backups *BackupManager
	log     *logging.Logger
}

// Result reports what an apply run did.
type Result struct {
	RunID      string
	Changed    bool
	DryRun     bool
	Validated  bool
	Reloaded   bool
	BackupPath string
	Warnings   []string
}

// NewApplier creates an applier from the apply config block.
func NewApplier(cfg *config.ApplyConfig, log *logging.Logger) *Applier {
	return NewApplierWithRunner(cfg, log, &RealCommandRunner{})
}

// NewApplierWithRunner creates an applier with an injected command runner.
func NewApplierWithRunner(cfg *config.ApplyConfig, log *logging.Logger, runner CommandRunner) *Applier {
	if log == nil {
		log = logging.Default()
	}
	validate := true
	if cfg.Validate != nil {
		validate = *cfg.Validate
	}
	return &Applier{
		path:     cfg.Path,
		service:  cfg.Service,
		validate: validate,
		runner:   runner,
		backups:  NewBackupManager(cfg.Path, cfg.MaxBackups),
		log:      log.WithComponent("applier"),
	}
}

// SetDryRun toggles dry-run mode: report what would change, touch nothing.
func (a *Applier) SetDryRun(dryRun bool) {
	a.dryRun = dryRun
}

// Path returns the managed file path.
func (a *Applier) Path() string {
	return a.path
}

// Backups returns the backup manager for the managed file.
func (a *Applier) Backups() *BackupManager {
	return a.backups
}

// Apply installs the mapping plus host key lines into the managed file and
// reloads the service if the content changed.
func (a *Applier) Apply(m policy.Mapping, hostKeyFiles []string) (*Result, error) {
	result := &Result{
		RunID:  uuid.NewString(),
		DryRun: a.dryRun,
	}

	rendered := SerializeWithHostKeys(m, hostKeyFiles)

	current, err := os.ReadFile(a.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", a.path, err)
	}

	if string(current) == rendered {
		a.log.Info("no changes", "path", a.path, "run_id", result.RunID)
		return result, nil
	}
	result.Changed = true

	// Missing host keys don't block the apply; sshd skips absent HostKey
	// entries. Surface them so the operator can generate keys.
	for _, keyFile := range hostKeyFiles {
		if _, err := os.Stat(keyFile); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("host key %s is not readable: %v", keyFile, err))
		}
	}

	if a.dryRun {
		a.log.Info("dry run, not writing", "path", a.path, "run_id", result.RunID)
		return result, nil
	}

	backupPath, err := a.backups.Create()
	if err != nil {
		return nil, fmt.Errorf("backup failed: %w", err)
	}
	result.BackupPath = backupPath

	staged, err := a.stage(rendered)
	if err != nil {
		return nil, err
	}

	if a.validate {
		if err := a.validateStaged(staged, result); err != nil {
			os.Remove(staged)
			return nil, err
		}
	}

	if err := os.Rename(staged, a.path); err != nil {
		os.Remove(staged)
		return nil, fmt.Errorf("failed to install %s: %w", a.path, err)
	}

	if err := a.reload(result); err != nil {
		// The file is installed at this point; report the reload failure
		// without rolling back.
		return result, err
	}

	a.log.Audit("apply", a.path, map[string]any{
		"run_id":    result.RunID,
		"service":   a.service,
		"backup":    result.BackupPath,
		"validated": result.Validated,
		"reloaded":  result.Reloaded,
	})

	return result, nil
}

// stage writes the rendered content to a temp file next to the target so the
// final rename is atomic on the same filesystem.
func (a *Applier) stage(rendered string) (string, error) {
	dir := filepath.Dir(a.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(a.path)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	if _, err := tmp.WriteString(rendered); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write staging file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to chmod staging file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close staging file: %w", err)
	}

	return tmp.Name(), nil
}

// validateStaged runs `sshd -t` against the staged file. Skipped with a
// warning when sshd is not installed (e.g. building a config for another
// host).
func (a *Applier) validateStaged(staged string, result *Result) error {
	if _, err := a.runner.LookPath("sshd"); err != nil {
		result.Warnings = append(result.Warnings, "sshd not found, skipping validation")
		a.log.Warn("sshd not found, skipping validation", "run_id", result.RunID)
		return nil
	}

	if err := a.runner.Run("sshd", "-t", "-f", staged); err != nil {
		return fmt.Errorf("generated config failed validation: %w", err)
	}
	result.Validated = true
	return nil
}

// reload notifies the service of the new configuration.
func (a *Applier) reload(result *Result) error {
	if _, err := a.runner.LookPath("systemctl"); err != nil {
		result.Warnings = append(result.Warnings, "systemctl not found, service not reloaded")
		a.log.Warn("systemctl not found, service not reloaded", "service", a.service)
		return nil
	}

	if err := a.runner.Run("systemctl", "reload-or-restart", a.service); err != nil {
		return fmt.Errorf("failed to reload service %s: %w", a.service, err)
	}
	result.Reloaded = true
	return nil
}
