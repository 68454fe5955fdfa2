// Package paths computes the per-user directories wsup reads and writes.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vvka-141/wsup/pkg/wsup"
)

// Paths holds the process-wide directories. It is computed once at startup
// and passed by pointer; nothing mutates it afterwards.
type Paths struct {
	// ConfigDir holds config.toml.
	ConfigDir string
	// CacheDir holds temporary staging directories.
	CacheDir string
	// LogDir holds wsup.log.
	LogDir string
	// ExecutableDir is where the local override config (wsup.toml) is looked up.
	// Empty when the executable path cannot be determined.
	ExecutableDir string
}

// Resolver supplies the platform directories. The zero value uses the os
// package.
type Resolver struct {
	UserConfigDir func() (string, error)
	UserCacheDir  func() (string, error)
	Executable    func() (string, error)
}

// Resolve computes Paths using the os package.
func Resolve() (*Paths, error) {
	return Resolver{}.Resolve()
}

// Resolve computes Paths. Missing config or cache locations are an error;
// a missing executable path only disables the local override lookup.
func (r Resolver) Resolve() (*Paths, error) {
	userConfigDir := r.UserConfigDir
	if userConfigDir == nil {
		userConfigDir = os.UserConfigDir
	}
	userCacheDir := r.UserCacheDir
	if userCacheDir == nil {
		userCacheDir = os.UserCacheDir
	}
	executable := r.Executable
	if executable == nil {
		executable = os.Executable
	}

	configBase, err := userConfigDir()
	if err != nil {
		return nil, fmt.Errorf("%w: config directory: %v", wsup.ErrInvalidConfig, err)
	}
	cacheBase, err := userCacheDir()
	if err != nil {
		return nil, fmt.Errorf("%w: cache directory: %v", wsup.ErrInvalidConfig, err)
	}

	p := &Paths{
		ConfigDir: filepath.Join(configBase, wsup.ApplicationID),
		CacheDir:  filepath.Join(cacheBase, wsup.ApplicationID),
	}
	p.LogDir = filepath.Join(p.CacheDir, "logs")

	if exe, err := executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		p.ExecutableDir = filepath.Dir(exe)
	}

	return p, nil
}

// ConfigFile is the per-user application config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, wsup.ConfigFileName)
}

// LocalConfigFile is the override config beside the executable, or "" when
// the executable directory is unknown.
func (p *Paths) LocalConfigFile() string {
	if p.ExecutableDir == "" {
		return ""
	}
	return filepath.Join(p.ExecutableDir, wsup.LocalConfigFileName)
}

// LogFile is the file sink used when file logging is enabled.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogDir, wsup.LogFileName)
}

// StagingDir is the parent of temporary staging directories.
func (p *Paths) StagingDir() string {
	return filepath.Join(p.CacheDir, "staging")
}
