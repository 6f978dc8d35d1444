package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cratewalk/cratewalk/pkg/depgraph"
	"github.com/cratewalk/cratewalk/pkg/deps"
)

// Messages driving the resolve progress model.
type (
	fetchedMsg  string
	frameMsg    struct{}
	resolvedMsg struct {
		graph *depgraph.Graph
		err   error
	}
)

// resolveModel is the bubbletea model displaying live crawl progress while a
// resolver walks the dependency graph of a crate.
type resolveModel struct {
	crate   string
	events  chan tea.Msg
	frames  []string
	frame   int
	count   int
	current string
	result  *resolvedMsg
}

func newResolveModel(crate string, events chan tea.Msg) resolveModel {
	return resolveModel{
		crate:  crate,
		events: events,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

func (m resolveModel) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), tick())
}

func (m resolveModel) waitForEvent() tea.Cmd {
	return func() tea.Msg { return <-m.events }
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m resolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case frameMsg:
		m.frame++
		return m, tick()
	case fetchedMsg:
		m.count++
		m.current = string(msg)
		return m, m.waitForEvent()
	case resolvedMsg:
		m.result = &msg
		return m, tea.Quit
	}
	return m, nil
}

func (m resolveModel) View() string {
	if m.result != nil {
		return ""
	}

	var b strings.Builder
	frame := m.frames[m.frame%len(m.frames)]
	b.WriteString(styleIconSpinner.Render(frame))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("Resolving %s", m.crate)))
	if m.count > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d crates", m.count)))
	}
	if m.current != "" {
		b.WriteString(" ")
		b.WriteString(StyleDim.Render(m.current))
	}
	return b.String()
}

// resolveWithProgress runs resolver.Resolve while showing live progress on
// stderr. The crawl runs in the background; fetch events stream into the
// model through a channel.
func resolveWithProgress(ctx context.Context, resolver deps.Resolver, crate string, opts deps.Options) (*depgraph.Graph, error) {
	events := make(chan tea.Msg, 64)
	opts.OnFetch = func(name string) {
		select {
		case events <- fetchedMsg(name):
		default:
		}
	}

	go func() {
		g, err := resolver.Resolve(ctx, crate, opts)
		events <- resolvedMsg{graph: g, err: err}
	}()

	p := tea.NewProgram(
		newResolveModel(crate, events),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	m, ok := final.(resolveModel)
	if !ok || m.result == nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, context.Canceled
	}
	return m.result.graph, m.result.err
}
