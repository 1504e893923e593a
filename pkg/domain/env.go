package domain

// Env is the part of the caller's environment the installer depends on.
// It is read once at process start and passed into the installer explicitly.
type Env struct {
	// InActivatedEnv is true when IN_ACTIVATED_ENV is "1".
	InActivatedEnv bool
	// OSType mirrors $OSTYPE when the calling shell exports it.
	OSType string
	// ComSpec mirrors %ComSpec%, used to detect a POSIX shell on Windows.
	ComSpec string
}
