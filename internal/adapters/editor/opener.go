package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"novella/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookPath func(string) (string, error)
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening the novel file, for use with
// bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	return o.CommandAt(path, "")
}

// CommandAt opens path with the cursor on the first match of search when the
// editor understands vi-style "+/pattern" arguments
func (o *Opener) CommandAt(path, search string) (*exec.Cmd, error) {
	argv := o.findEditor()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	args := slices.Clone(argv[1:])
	if search != "" && isViLike(argv[0]) {
		args = append(args, "+/"+search)
	}
	args = append(args, path)

	cmd := exec.Command(argv[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor command split into fields, so values such as
// "code --wait" work
func (o *Opener) findEditor() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}

func isViLike(editor string) bool {
	switch filepath.Base(editor) {
	case "vi", "vim", "nvim", "nano":
		return true
	}
	return false
}
