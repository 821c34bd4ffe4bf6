package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ASoldo/jarvisctl/internal/output"
	"github.com/ASoldo/jarvisctl/internal/procs"
)

func newInspectCmd() *cobra.Command {
	var name string
	var pid int
	var execShell bool

	cmd := &cobra.Command{
		Use:   "inspect {--name NAME | --pid PID} [--exec-shell]",
		Short: "Inspect running processes by name or PID",
		Long: `Show process details (state, CPU, memory, runtime, command line) for a
process matched by name or PID.

With --exec-shell, open an interactive shell inside the first matched
process's namespaces via sudo nsenter. jarvisctl exits with that shell's
exit code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := procs.NewTable()
			var matches []*procs.Process

			if name != "" {
				found, err := table.ByName(name)
				if err != nil {
					return err
				}
				if len(found) == 0 {
					return fmt.Errorf("%w: name %q", procs.ErrProcessNotFound, name)
				}
				matches = found
			} else {
				p, err := table.ByPID(pid)
				if err != nil {
					return err
				}
				matches = []*procs.Process{p}
			}

			f := formatter()
			if f.JSONEnabled() && !execShell {
				return f.JSON(matches)
			}
			if len(matches) > 1 {
				printProcessTable(os.Stdout, matches)
			} else {
				printProcess(f, matches[0])
			}

			if execShell {
				code, err := procs.EnterShell(matches[0].PID)
				if err != nil {
					return err
				}
				// The shell's exit code becomes ours; nothing runs after it.
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "filter by process name")
	cmd.Flags().IntVarP(&pid, "pid", "p", 0, "filter by PID")
	cmd.Flags().BoolVar(&execShell, "exec-shell", false, "exec into the process namespaces via nsenter")
	cmd.MarkFlagsOneRequired("name", "pid")
	cmd.MarkFlagsMutuallyExclusive("name", "pid")
	return cmd
}

// printProcessTable renders one row per match, truncating the command line
// to what the terminal width leaves after the fixed columns.
func printProcessTable(w io.Writer, matches []*procs.Process) {
	cmdWidth := output.TermWidth() - 48
	if cmdWidth < 20 {
		cmdWidth = 20
	}

	table := output.NewTable(w, "PID", "NAME", "STATE", "CPU%", "RSS KB", "COMMAND")
	for _, p := range matches {
		table.AddRow(
			strconv.Itoa(p.PID),
			p.Name,
			p.State,
			fmt.Sprintf("%.2f", p.CPUPercent),
			strconv.FormatUint(p.ResidentKB, 10),
			output.Truncate(strings.Join(p.Cmdline, " "), cmdWidth),
		)
	}
	table.Render()
}

func printProcess(f *output.Formatter, p *procs.Process) {
	f.Textln("PID:             %d", p.PID)
	f.Textln("Name:            %s", p.Name)
	f.Textln("Status:          %s", p.State)
	f.Textln("CPU:             %.2f%%", p.CPUPercent)
	f.Textln("Memory RSS:      %d KB", p.ResidentKB)
	f.Textln("Virtual Mem:     %d KB", p.VirtualKB)
	f.Textln("Start (epoch):   %d", p.StartEpoch)
	f.Textln("Run time (sec):  %d", p.RunSeconds)
	f.Textln("Cmd line:        %s", strings.Join(p.Cmdline, " "))
	f.Textln("Parent PID:      %d", p.PPID)
	if p.Exe != "" {
		f.Textln("Exe path:        %s", p.Exe)
	}
	f.Dim("------------------------------------")
}
