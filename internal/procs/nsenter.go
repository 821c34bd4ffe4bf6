package procs

import (
	"os"
	"os/exec"
	"strconv"
)

// enterArgs builds the argv for the privileged namespace-entry command:
// nsenter joins every namespace of the target pid and execs a shell there.
func enterArgs(pid int, shell string) []string {
	return []string{"nsenter", "-t", strconv.Itoa(pid), "-a", shell}
}

// loginShell picks the shell to start inside the target namespaces.
func loginShell() string {
	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash"
	}
	return "/bin/sh"
}

// EnterShellCommand builds the sudo nsenter invocation for pid with the
// caller's terminal attached. Split from EnterShell so tests can verify the
// constructed command without entering anything.
func EnterShellCommand(pid int) *exec.Cmd {
	cmd := exec.Command("sudo", enterArgs(pid, loginShell())...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// EnterShell runs an interactive shell inside the namespaces of pid and
// returns the shell's exit code once the user leaves it. The caller is
// expected to exit with that code; nothing meaningful can continue after
// handing the terminal to another namespace's shell.
func EnterShell(pid int) (int, error) {
	cmd := EnterShellCommand(pid)
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 1, err
}
