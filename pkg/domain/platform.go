package domain

import "slices"

// Platform describes how to bootstrap Python on one operating system.
type Platform struct {
	// Name is the GOOS-style identifier ("darwin", "linux", "windows") or "unknown".
	Name string
	// Interpreter is the base interpreter executable ("python3", "python" on Windows).
	Interpreter string
	// Pip is the global pip executable used to install virtualenv.
	Pip string
	// InstallInterpreter is the package manager command line that installs the interpreter.
	// Empty when the platform has no known package manager.
	InstallInterpreter string
	// Shell is the argv prefix used to run a command line through the system shell.
	Shell []string
	// NeedsBinAlias is set when the environment keeps executables outside "bin"
	// and a directory alias must be created.
	NeedsBinAlias bool
}

// IsWindows reports whether the platform is Windows.
func (p Platform) IsWindows() bool {
	return p.Name == "windows"
}

// Clone returns a copy that shares no slices with p.
func (p Platform) Clone() Platform {
	p.Shell = slices.Clone(p.Shell)
	return p
}
