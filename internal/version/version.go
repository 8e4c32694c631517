// Package version reports which build of notas is running.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
)

// InstallMethod represents how notas was installed.
type InstallMethod string

const (
	InstallMethodGo     InstallMethod = "go"
	InstallMethodBinary InstallMethod = "binary"
)

var (
	detectedMethod     InstallMethod
	detectedMethodOnce sync.Once
)

// Effective returns v, falling back to the module version or VCS revision
// recorded in the build info.
func Effective(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) string {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}

	ver := "devel+" + shortRevision(revision)
	if dirty {
		ver += "+dirty"
	}
	return ver
}

// shortRevision returns the first 12 chars of a revision.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// DetectInstallMethod reports whether the running binary sits in a Go bin
// directory. The result is cached for the lifetime of the process.
func DetectInstallMethod() InstallMethod {
	detectedMethodOnce.Do(func() {
		detectedMethod = InstallMethodBinary
		exe, err := os.Executable()
		if err != nil {
			return
		}
		if exe, err = filepath.EvalSymlinks(exe); err != nil {
			return
		}
		if isGoBin(exe, os.Getenv("GOBIN"), os.Getenv("GOPATH")) {
			detectedMethod = InstallMethodGo
		}
	})
	return detectedMethod
}

func isGoBin(exe, gobin, gopath string) bool {
	dir := filepath.Dir(exe)
	if gobin != "" && dir == gobin {
		return true
	}
	if gopath != "" && dir == filepath.Join(gopath, "bin") {
		return true
	}
	if home, err := os.UserHomeDir(); err == nil && dir == filepath.Join(home, "go", "bin") {
		return true
	}

	// Heuristic: path contains /go/bin/
	sep := string(filepath.Separator)
	return strings.Contains(exe, sep+"go"+sep+"bin"+sep)
}

// UpdateCommand returns how to install version v for the given method.
func UpdateCommand(v string, method InstallMethod) string {
	if method == InstallMethodBinary {
		return fmt.Sprintf("https://github.com/marcus/notas/releases/tag/%s", v)
	}
	return fmt.Sprintf(
		"go install -ldflags \"-X main.Version=%s\" github.com/marcus/notas/cmd/notas@%s",
		v, v,
	)
}
