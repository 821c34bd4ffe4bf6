package namespace

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ASoldo/jarvisctl/internal/tmux"
)

func TestParseName(t *testing.T) {
	valid := []string{"build", "my-ns", "ns_2", "UPPER", "a b"}
	for _, s := range valid {
		if _, err := ParseName(s); err != nil {
			t.Errorf("ParseName(%q) failed: %v", s, err)
		}
	}

	invalid := []string{"", "a:b", "a.b", ":", "."}
	for _, s := range invalid {
		if _, err := ParseName(s); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ParseName(%q) = %v, want ErrInvalidName", s, err)
		}
	}
}

func TestWindowNameAndTarget(t *testing.T) {
	if got := WindowName(0); got != "agent0" {
		t.Fatalf("WindowName(0) = %q", got)
	}
	if got := WindowName(12); got != "agent12" {
		t.Fatalf("WindowName(12) = %q", got)
	}
	if got := Target("build", "agent3"); got != "build:agent3" {
		t.Fatalf("Target = %q", got)
	}
}

func TestMarkArgs(t *testing.T) {
	r := newFakeRunner()
	if err := Mark(r, "build"); err != nil {
		t.Fatalf("Mark failed: %v", err)
	}
	want := [][]string{{"set-option", "-t", "build", "@jarvisctl", "1"}}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
}

func TestIsOwned(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want bool
	}{
		{"marked", "1", true},
		{"marked with newline", "1\n", true},
		{"unset", "", false},
		{"other value", "0", false},
		{"foreign value", "yes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner()
			r.outputs["show-option -qv -t ns @jarvisctl"] = tt.out
			got, err := IsOwned(r, "ns")
			if err != nil {
				t.Fatalf("IsOwned failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("IsOwned = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOwnedMissingSession(t *testing.T) {
	r := newFakeRunner()
	r.failAt = 1 // fails with a default ExitError

	got, err := IsOwned(r, "gone")
	if err != nil {
		t.Fatalf("IsOwned failed: %v", err)
	}
	if got {
		t.Fatal("a missing session must not read as owned")
	}
}

func TestIsOwnedTransportError(t *testing.T) {
	r := newFakeRunner()
	r.failAt = 1
	r.failErr = errors.New("ssh: connection refused")

	if _, err := IsOwned(r, "ns"); err == nil {
		t.Fatal("transport errors must propagate")
	}
}

func TestDeleteArgs(t *testing.T) {
	r := newFakeRunner()
	if err := Delete(r, "build"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	want := [][]string{{"kill-session", "-t", "build"}}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
}

var _ tmux.Runner = (*fakeRunner)(nil)
