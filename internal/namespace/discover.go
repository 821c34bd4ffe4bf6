package namespace

import (
	"errors"

	"github.com/ASoldo/jarvisctl/internal/tmux"
)

// sessionSummaryFormat is the display-message format for the one-line
// namespace summary: name, window count, creation time (epoch seconds).
const sessionSummaryFormat = "#{session_name}: #{session_windows} windows (created #{session_created})"

// Summary is the one-line description of an owned namespace.
type Summary struct {
	Name    Name   `json:"name"`
	Info    string `json:"info"`    // rendered summary line from tmux
	Windows string `json:"windows"` // raw list-windows output for the namespace
}

// Listing is the result of unscoped discovery: every jarvisctl-owned
// namespace on the server, in the order the server reported them.
type Listing struct {
	Namespaces []Summary `json:"namespaces"`
}

// ListAgents enumerates the agents of one namespace and returns the raw
// tmux listing. No ownership check: an operator naming a session explicitly
// bypasses the marker filter.
func ListAgents(r tmux.Runner, ns Name) (string, error) {
	return r.Output("list-windows", "-t", string(ns))
}

// List performs unscoped discovery. It enumerates every session on the
// server, keeps the ones carrying the ownership marker, and fetches a summary
// and agent listing for each. The scan is linear and uncached: one marker
// read per session regardless of ownership, plus two calls per owned
// namespace. Server enumeration order is preserved.
func List(r tmux.Runner) (*Listing, error) {
	names, err := sessionNames(r)
	if err != nil {
		return nil, err
	}

	var owned []Name
	for _, name := range names {
		ok, err := IsOwned(r, name)
		if err != nil {
			return nil, err
		}
		if ok {
			owned = append(owned, name)
		}
	}

	listing := &Listing{}
	if len(owned) == 0 {
		return listing, nil
	}

	for _, ns := range owned {
		info, err := r.Output("display-message", "-p", "-t", string(ns), sessionSummaryFormat)
		if err != nil {
			return nil, err
		}
		listing.Namespaces = append(listing.Namespaces, Summary{Name: ns, Info: info})
	}
	for i, ns := range owned {
		windows, err := ListAgents(r, ns)
		if err != nil {
			return nil, err
		}
		listing.Namespaces[i].Windows = windows
	}

	return listing, nil
}

// sessionNames enumerates every session name on the server. A server that is
// not running has no sessions; that is not an error.
func sessionNames(r tmux.Runner) ([]Name, error) {
	out, err := r.Output("list-sessions", "-F", "#{session_name}")
	if err != nil {
		if errors.Is(err, tmux.ErrNoServer) {
			return nil, nil
		}
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var names []Name
	for _, line := range splitLines(out) {
		if line != "" {
			names = append(names, Name(line))
		}
	}
	return names, nil
}
