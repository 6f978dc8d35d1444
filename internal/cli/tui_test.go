package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cratewalk/cratewalk/pkg/depgraph"
)

func TestResolveModel_FetchedAdvancesCount(t *testing.T) {
	m := newResolveModel("serde", make(chan tea.Msg, 1))

	next, _ := m.Update(fetchedMsg("serde_derive"))
	model := next.(resolveModel)

	if model.count != 1 {
		t.Errorf("count = %d, want 1", model.count)
	}
	if model.current != "serde_derive" {
		t.Errorf("current = %q, want serde_derive", model.current)
	}
}

func TestResolveModel_ResolvedQuits(t *testing.T) {
	m := newResolveModel("serde", make(chan tea.Msg, 1))

	next, cmd := m.Update(resolvedMsg{graph: depgraph.New()})
	model := next.(resolveModel)

	if model.result == nil {
		t.Fatal("result should be recorded")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if model.View() != "" {
		t.Errorf("View() after completion = %q, want empty", model.View())
	}
}

func TestResolveModel_View(t *testing.T) {
	m := newResolveModel("tokio", make(chan tea.Msg, 1))
	m.count = 3
	m.current = "mio"

	view := m.View()
	if !strings.Contains(view, "tokio") {
		t.Errorf("View() = %q, should name the crate being resolved", view)
	}
	if !strings.Contains(view, "3 crates") {
		t.Errorf("View() = %q, should show the fetch count", view)
	}
	if !strings.Contains(view, "mio") {
		t.Errorf("View() = %q, should show the crate last fetched", view)
	}
}
