package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// pagerCommand shows text in the ov pager. It satisfies tea.ExecCommand so
// the program releases the terminal while ov runs.
type pagerCommand struct {
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newPagerCommand(content string) *pagerCommand {
	return &pagerCommand{content: content}
}

func (p *pagerCommand) SetStdin(r io.Reader)  { p.stdin = r }
func (p *pagerCommand) SetStdout(w io.Writer) { p.stdout = w }
func (p *pagerCommand) SetStderr(w io.Writer) { p.stderr = w }

// Run blocks until the user leaves the pager
func (p *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if err := root.Run(); err != nil {
		return fmt.Errorf("pager failed: %w", err)
	}
	return nil
}

// openPager returns a command that runs the pager and reports back with a pagerMsg
func openPager(content string) tea.Cmd {
	return tea.Exec(newPagerCommand(content), func(err error) tea.Msg {
		return pagerMsg{err: err}
	})
}
