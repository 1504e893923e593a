package domain

import "errors"

// ErrActivatedEnv is returned when the installer runs inside an activated environment.
var ErrActivatedEnv = errors.New("already inside an activated environment")

// ErrUnsupportedShell is returned on Windows when no POSIX-compatible shell is detected.
var ErrUnsupportedShell = errors.New("unsupported shell: git bash is required on windows")

// ErrInterpreterInstall is returned when the package manager fails to install the interpreter.
var ErrInterpreterInstall = errors.New("failed to install python interpreter")

// ErrEnvironmentCreation is returned when both virtualenv and the built-in venv module fail.
var ErrEnvironmentCreation = errors.New("failed to create virtual environment")

// ErrActivateScriptMissing is returned when the activation script is absent after install.
var ErrActivateScriptMissing = errors.New("activation script does not exist")

// IsGuardViolation reports whether err was raised by a pre-flight guard.
// Guard violations are already reported to the user when they are returned.
func IsGuardViolation(err error) bool {
	return errors.Is(err, ErrActivatedEnv) || errors.Is(err, ErrUnsupportedShell)
}
