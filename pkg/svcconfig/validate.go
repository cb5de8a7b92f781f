// pkg/svcconfig/validate.go

package svcconfig

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckScript reports whether path exists and is a regular file. Both checks
// are advisory: the caller may proceed past a failure after confirmation.
func CheckScript(path string) (bool, string) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Sprintf("Script %s does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Sprintf("%s is not a file", path)
	}
	return true, "Script is valid"
}

// CheckVenv reports whether root contains a virtual environment, identified
// by its bin/activate script.
func CheckVenv(root string) (bool, string) {
	activate := filepath.Join(root, "bin", "activate")
	if _, err := os.Stat(activate); err != nil {
		return false, fmt.Sprintf("Virtual environment not found at %s", root)
	}
	return true, "Virtual environment is valid"
}
