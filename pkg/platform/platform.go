package platform

import (
	"runtime"
	"strings"

	"github.com/aretw0/venvstrap/pkg/domain"
)

var posixShell = []string{"sh", "-c"}

var table = map[string]domain.Platform{
	"darwin": {
		Name:               "darwin",
		Interpreter:        "python3",
		Pip:                "pip3",
		InstallInterpreter: "brew install python3",
		Shell:              posixShell,
	},
	"linux": {
		Name:               "linux",
		Interpreter:        "python3",
		Pip:                "pip3",
		InstallInterpreter: "sudo apt-get install python3",
		Shell:              posixShell,
	},
	"windows": {
		Name:               "windows",
		Interpreter:        "python",
		Pip:                "pip",
		InstallInterpreter: "choco install python3",
		Shell:              []string{"cmd", "/C"},
		NeedsBinAlias:      true,
	},
}

// Unknown is used for operating systems without a table entry.
// It has no package manager, so a missing interpreter is only reported.
var Unknown = domain.Platform{
	Name:        "unknown",
	Interpreter: "python3",
	Pip:         "pip3",
	Shell:       posixShell,
}

// Lookup returns the table entry for a GOOS value.
func Lookup(goos string) (domain.Platform, bool) {
	p, ok := table[goos]
	if !ok {
		return domain.Platform{}, false
	}
	return p.Clone(), true
}

// Detect returns the platform for goos, defaulting to the running OS when goos is empty.
func Detect(goos string) domain.Platform {
	if goos == "" {
		goos = runtime.GOOS
	}
	if p, ok := Lookup(goos); ok {
		return p
	}
	return Unknown.Clone()
}

// Names lists the platforms that have a table entry.
func Names() []string {
	return []string{"darwin", "linux", "windows"}
}

// IsPOSIXShell reports whether the caller runs under a POSIX-compatible shell on Windows.
// Git bash sets ComSpec to its bash.exe; MSYS and Cygwin shells export OSTYPE.
func IsPOSIXShell(env domain.Env) bool {
	if strings.HasSuffix(strings.ToLower(env.ComSpec), "bash.exe") {
		return true
	}
	ostype := strings.ToLower(env.OSType)
	return strings.HasPrefix(ostype, "msys") || strings.HasPrefix(ostype, "cygwin")
}

// WithInstallCommand returns p with its package manager command replaced when cmd is not empty.
func WithInstallCommand(p domain.Platform, cmd string) domain.Platform {
	if cmd != "" {
		p.InstallInterpreter = cmd
	}
	return p
}
