package domain

// State is the installation state of a project directory.
// It is derived from the filesystem and never persisted.
type State string

const (
	StateUninstalled State = "uninstalled"
	StateInstalled   State = "installed"
)

func (s State) String() string {
	return string(s)
}
