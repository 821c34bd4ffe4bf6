package procs

import (
	"reflect"
	"strings"
	"testing"
)

func TestEnterArgs(t *testing.T) {
	got := enterArgs(4242, "/bin/bash")
	want := []string{"nsenter", "-t", "4242", "-a", "/bin/bash"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("enterArgs = %v, want %v", got, want)
	}
}

func TestEnterShellCommand(t *testing.T) {
	cmd := EnterShellCommand(77)

	if base := cmd.Args[0]; !strings.HasSuffix(base, "sudo") {
		t.Fatalf("argv[0] = %q, want sudo", base)
	}
	if cmd.Args[1] != "nsenter" || cmd.Args[3] != "77" {
		t.Fatalf("args = %v", cmd.Args)
	}
	shell := cmd.Args[len(cmd.Args)-1]
	if shell != "/bin/bash" && shell != "/bin/sh" {
		t.Fatalf("shell = %q", shell)
	}
	if cmd.Stdin == nil || cmd.Stdout == nil {
		t.Fatal("terminal not attached")
	}
}
