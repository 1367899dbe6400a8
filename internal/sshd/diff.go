package sshd

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"grimm.is/bastion/internal/policy"
)

// Diff returns a unified diff between the current managed file and what the
// mapping would render. Empty string means no changes.
func Diff(currentPath string, m policy.Mapping, hostKeyFiles []string) (string, error) {
	current, err := os.ReadFile(currentPath)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read %s: %w", currentPath, err)
	}

	rendered := SerializeWithHostKeys(m, hostKeyFiles)
	if string(current) == rendered {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(rendered),
		FromFile: "Current",
		ToFile:   "Generated",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
