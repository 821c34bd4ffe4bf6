package dashboard

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ASoldo/jarvisctl/internal/namespace"
)

// nopRunner satisfies tmux.Runner; dashboard tests drive the model with
// messages directly and never let the returned commands run.
type nopRunner struct{}

func (nopRunner) Run(args ...string) error              { return nil }
func (nopRunner) Output(args ...string) (string, error) { return "", nil }

func testModel(names ...namespace.Name) Model {
	m := New(nopRunner{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	listing := &namespace.Listing{}
	for _, n := range names {
		listing.Namespaces = append(listing.Namespaces, namespace.Summary{Name: n})
	}
	next, _ := m.Update(refreshMsg{listing: listing})
	return next.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorMovement(t *testing.T) {
	m := testModel("alpha", "beta", "gamma")

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	if ns, _ := m.current(); ns != "gamma" {
		t.Fatalf("cursor at %q, want gamma", ns)
	}

	// Down at the bottom stays put.
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	if ns, _ := m.current(); ns != "gamma" {
		t.Fatalf("cursor moved past the end, at %q", ns)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	if ns, _ := m.current(); ns != "beta" {
		t.Fatalf("cursor at %q, want beta", ns)
	}
}

func TestAttachSelectsAndQuits(t *testing.T) {
	m := testModel("alpha", "beta")

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	if m.Selected() != "alpha" {
		t.Fatalf("Selected = %q, want alpha", m.Selected())
	}
	if cmd == nil {
		t.Fatal("attach did not quit")
	}
}

func TestAttachOnEmptyListingIsNoop(t *testing.T) {
	m := testModel()

	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)
	if m.Selected() != "" {
		t.Fatalf("Selected = %q on an empty listing", m.Selected())
	}
}

func TestRefreshClampsCursor(t *testing.T) {
	m := testModel("alpha", "beta", "gamma")
	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)

	// The listing shrank under the cursor.
	next, _ = m.Update(refreshMsg{listing: &namespace.Listing{
		Namespaces: []namespace.Summary{{Name: "alpha"}},
	}})
	m = next.(Model)
	if ns, ok := m.current(); !ok || ns != "alpha" {
		t.Fatalf("current = %q, %v after shrink", ns, ok)
	}
}

func TestCurrentOnNilListing(t *testing.T) {
	m := New(nopRunner{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if _, ok := m.current(); ok {
		t.Fatal("current reported a namespace before the first refresh")
	}
}
