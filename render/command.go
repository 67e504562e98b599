package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/soypat/slab/form2"
)

// Command renders documents with an external program. The document's SVG
// is written to the program's standard input and its standard output is
// the result. The placeholders {width} and {height} in Args are replaced
// with the document size in millimetres.
type Command struct {
	Name string
	Args []string
}

var _ Renderer = Command{}

// Render runs the command. A non-zero exit status fails the render and
// carries the program's standard error.
func (c Command) Render(ctx context.Context, doc Document) ([]byte, error) {
	if c.Name == "" {
		return nil, errors.New("render: command: no program")
	}
	repl := strings.NewReplacer(
		"{width}", form2.FormatFloat(doc.Width),
		"{height}", form2.FormatFloat(doc.Height),
	)
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = repl.Replace(arg)
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdin = bytes.NewReader(doc.SVG)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("render: command %s: %w: %s", c.Name, err, msg)
		}
		return nil, fmt.Errorf("render: command %s: %w", c.Name, err)
	}
	return stdout.Bytes(), nil
}
