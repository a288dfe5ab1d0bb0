package ports

import "os/exec"

// EditorOpener opens the novel file in the user's editor
type EditorOpener interface {
	// OpenFile runs $EDITOR (or a fallback) on path and waits for it
	OpenFile(path string) error

	// Command returns the editor command without running it, for bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// CommandAt is Command positioned at the first match of search, when the editor supports it
	CommandAt(path, search string) (*exec.Cmd, error)
}
