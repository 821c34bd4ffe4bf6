package namespace

import (
	"strings"

	"github.com/ASoldo/jarvisctl/internal/tmux"
)

// fakeRunner records every tmux invocation and serves scripted outputs.
type fakeRunner struct {
	calls   [][]string
	outputs map[string]string // keyed by the space-joined argv
	failAt  int               // 1-based call index that fails, 0 = never
	failErr error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: make(map[string]string)}
}

func (f *fakeRunner) invoke(args []string) (string, error) {
	f.calls = append(f.calls, args)
	if f.failAt != 0 && len(f.calls) == f.failAt {
		err := f.failErr
		if err == nil {
			err = &tmux.ExitError{Code: 1, Command: args[0]}
		}
		return "", err
	}
	return f.outputs[strings.Join(args, " ")], nil
}

func (f *fakeRunner) Run(args ...string) error {
	_, err := f.invoke(args)
	return err
}

func (f *fakeRunner) Output(args ...string) (string, error) {
	return f.invoke(args)
}

// countCalls returns how many recorded calls start with the given verb.
func (f *fakeRunner) countCalls(verb string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) > 0 && c[0] == verb {
			n++
		}
	}
	return n
}
