package editor

import (
	"errors"
	"slices"
	"testing"
)

func TestCommandAt(t *testing.T) {
	tests := []struct {
		name     string
		editor   string
		search   string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "vim jumps to the paragraph",
			editor:   "vim",
			search:   `"id": "c"`,
			wantArgs: []string{"vim", `+/"id": "c"`, "novel.json"},
		},
		{
			name:     "editor with flags",
			editor:   "code --wait",
			search:   "ignored",
			wantArgs: []string{"code", "--wait", "novel.json"},
		},
		{
			name:     "no search",
			editor:   "/usr/bin/nvim",
			wantArgs: []string{"/usr/bin/nvim", "novel.json"},
		},
		{
			name:    "nothing available",
			editor:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", "")
			o := &Opener{lookPath: func(string) (string, error) { return "", errors.New("not found") }}

			cmd, err := o.CommandAt("novel.json", tt.search)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(cmd.Args, tt.wantArgs) {
				t.Errorf("expected args %q, got %q", tt.wantArgs, cmd.Args)
			}
		})
	}
}

func TestFindEditor_FallsBackToPath(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	o := &Opener{lookPath: func(name string) (string, error) {
		if name == "nano" {
			return "/bin/nano", nil
		}
		return "", errors.New("not found")
	}}

	if got := o.findEditor(); !slices.Equal(got, []string{"/bin/nano"}) {
		t.Errorf("expected /bin/nano, got %q", got)
	}
}
