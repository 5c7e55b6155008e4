package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/aretw0/scribe/pkg/core"
)

// AppDataDir returns the per-user application data directory for appID on
// the running platform.
func AppDataDir(appID string) (string, error) {
	return appDataDir(runtime.GOOS, appID, os.Getenv, os.UserHomeDir)
}

func appDataDir(goos, appID string, getenv func(string) string, home func() (string, error)) (string, error) {
	if appID == "" {
		return "", errors.New("application identifier is empty")
	}

	var base string
	switch goos {
	case "windows":
		base = getenv("APPDATA")
		if base == "" {
			return "", errors.New("%APPDATA% is not defined")
		}
	case "darwin", "ios":
		h, err := home()
		if err != nil {
			return "", err
		}
		base = filepath.Join(h, "Library", "Application Support")
	default:
		base = getenv("XDG_DATA_HOME")
		if base == "" || !filepath.IsAbs(base) {
			h, err := home()
			if err != nil {
				return "", err
			}
			base = filepath.Join(h, ".local", "share")
		}
	}
	return filepath.Join(base, appID), nil
}

// resolveStorageDir computes the storage directory without touching disk.
func resolveStorageDir(o *options) (string, error) {
	dataDir := o.dataDir
	sandbox := o.forceTemp || (dataDir == "" && o.devSafety && IsDevRun())

	switch {
	case sandbox:
		resolved := SandboxPath(dataDir, o.appID)
		if o.logger != nil {
			o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", dataDir, "resolved_path", resolved)
		}
		dataDir = resolved
	case dataDir == "":
		d, err := AppDataDir(o.appID)
		if err != nil {
			return "", core.Tag(core.ErrStorageUnavailable, fmt.Errorf("resolve application data directory: %w", err))
		}
		dataDir = d
	}

	abs, err := filepath.Abs(filepath.Join(dataDir, StorageSubdir))
	if err != nil {
		return "", core.Tag(core.ErrStorageUnavailable, err)
	}
	return abs, nil
}

// ResolveStorageDir returns the storage directory, creating every missing
// intermediate directory.
func ResolveStorageDir(opts ...Option) (string, error) {
	o := parseOptions(opts)
	dir, err := resolveStorageDir(o)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", core.Tag(core.ErrStorageUnavailable, err)
	}
	return dir, nil
}
