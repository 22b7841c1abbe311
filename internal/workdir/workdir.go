// Package workdir finds the directory holding .empdesk/ and .env, so the
// CLI works from any subdirectory of a project.
package workdir

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	rootFile  = ".empdesk-root"
	configDir = ".empdesk"
)

// ResolveBaseDir walks up from baseDir looking for a project marker. At each
// level a .empdesk-root file wins (its content names the root), then a
// .empdesk directory. The walk stops at the git top level when baseDir is in
// a repository, else at the filesystem root. With no marker found baseDir is
// returned unchanged.
func ResolveBaseDir(baseDir string) string {
	if baseDir == "" {
		return baseDir
	}
	baseDir = filepath.Clean(baseDir)
	stop := gitTopLevel(baseDir)

	for dir := baseDir; ; {
		if resolved, ok := readRootFile(dir); ok {
			return resolved
		}
		if hasConfigDir(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if dir == stop || parent == dir {
			return baseDir
		}
		dir = parent
	}
}

func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	resolved := strings.TrimSpace(string(content))
	if resolved == "" {
		return "", false
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	return filepath.Clean(resolved), true
}

func hasConfigDir(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, configDir))
	return err == nil && fi.IsDir()
}

// gitTopLevel returns the repository root, or "" outside git
func gitTopLevel(dir string) string {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return ""
	}
	return filepath.Clean(strings.TrimSpace(string(out)))
}
