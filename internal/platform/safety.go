package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// SandboxPath re-roots an application data directory under the system temp
// dir so development runs never touch the real user data. Paths already
// inside the temp dir are trusted as-is.
func SandboxPath(dataDir, appID string) string {
	tempRoot := os.TempDir()
	if dataDir != "" {
		clean := filepath.Clean(dataDir)
		if rel, err := filepath.Rel(tempRoot, clean); err == nil && !strings.HasPrefix(rel, "..") {
			return clean
		}
	}
	if appID == "" || appID == "." {
		appID = "default"
	}
	return filepath.Join(tempRoot, "scribe-dev", filepath.Base(appID))
}
