package ui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager shows long content outside the picker
type Pager interface {
	Show(content string) tea.Cmd
}

// OVPager pages content with ov, suspending the bubbletea renderer meanwhile
type OVPager struct{}

// Show returns a command that runs ov and reports back with pagerDoneMsg
func (OVPager) Show(content string) tea.Cmd {
	return tea.Exec(&ovCommand{content: content}, func(err error) tea.Msg {
		return pagerDoneMsg{err: err}
	})
}

// ovCommand adapts an oviewer session to tea.ExecCommand. ov opens the
// terminal itself, so the stdio setters are ignored.
type ovCommand struct {
	content string
}

func (c *ovCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (c *ovCommand) SetStdin(io.Reader)  {}
func (c *ovCommand) SetStdout(io.Writer) {}
func (c *ovCommand) SetStderr(io.Writer) {}
