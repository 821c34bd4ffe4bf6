// Package procs inspects running processes by reading the /proc filesystem
// directly. It is a read-only data source: one flat record per process, no
// polling, no caching.
package procs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrProcessNotFound reports a pid or name that matched nothing.
var ErrProcessNotFound = errors.New("process not found")

// userHz is the kernel USER_HZ clock-tick rate that /proc/<pid>/stat times
// are expressed in. It is 100 on every Linux architecture Go supports, and
// there is no way to query it without cgo.
const userHz = 100

// Process is a point-in-time snapshot of one process.
type Process struct {
	PID        int      `json:"pid"`
	Name       string   `json:"name"`
	State      string   `json:"state"`
	CPUPercent float64  `json:"cpu_percent"` // lifetime average
	ResidentKB uint64   `json:"resident_kb"`
	VirtualKB  uint64   `json:"virtual_kb"`
	StartEpoch int64    `json:"start_epoch"`
	RunSeconds int64    `json:"run_seconds"`
	Cmdline    []string `json:"cmdline"`
	PPID       int      `json:"ppid"`
	Exe        string   `json:"exe,omitempty"` // empty when unreadable

	// raw tick counters from stat; read converts them to seconds
	startTicks int64
	cpuTicks   int64
}

// Table reads process records from a proc filesystem root.
type Table struct {
	root string
}

// NewTable returns a Table over the live /proc.
func NewTable() *Table {
	return &Table{root: "/proc"}
}

// newTableAt is the test seam: a Table over a fake proc tree.
func newTableAt(root string) *Table {
	return &Table{root: root}
}

// ByPID returns the process with the given pid.
func (t *Table) ByPID(pid int) (*Process, error) {
	p, err := t.read(pid)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: pid %d", ErrProcessNotFound, pid)
		}
		return nil, err
	}
	return p, nil
}

// ByName returns every process whose name matches exactly, in pid order.
// Processes that disappear mid-scan are skipped, not errors.
func (t *Table) ByName(name string) ([]*Process, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.root, err)
	}

	var procs []*Process
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		p, err := t.read(pid)
		if err != nil {
			continue
		}
		if p.Name == name {
			procs = append(procs, p)
		}
	}
	return procs, nil
}

// read assembles a Process from the pid's proc entries.
func (t *Table) read(pid int) (*Process, error) {
	dir := filepath.Join(t.root, strconv.Itoa(pid))

	stat, err := os.ReadFile(filepath.Join(dir, "stat"))
	if err != nil {
		return nil, err
	}
	p, err := parseStat(string(stat))
	if err != nil {
		return nil, fmt.Errorf("parse %s/stat: %w", dir, err)
	}

	if data, err := os.ReadFile(filepath.Join(dir, "cmdline")); err == nil {
		p.Cmdline = splitCmdline(data)
	}
	if exe, err := os.Readlink(filepath.Join(dir, "exe")); err == nil {
		p.Exe = exe
	}

	bootEpoch, err := t.bootTime()
	if err != nil {
		return nil, err
	}
	uptime, err := t.uptime()
	if err != nil {
		return nil, err
	}

	startSec := p.startTicks / userHz
	p.StartEpoch = bootEpoch + startSec
	p.RunSeconds = int64(uptime) - startSec
	if p.RunSeconds < 0 {
		p.RunSeconds = 0
	}
	if p.RunSeconds > 0 {
		cpuSec := float64(p.cpuTicks) / userHz
		p.CPUPercent = cpuSec / float64(p.RunSeconds) * 100
	}

	return p, nil
}

// stateNames maps /proc stat state letters to readable names.
var stateNames = map[string]string{
	"R": "Running",
	"S": "Sleeping",
	"D": "DiskSleep",
	"Z": "Zombie",
	"T": "Stopped",
	"t": "TracingStop",
	"X": "Dead",
	"I": "Idle",
}

// parseStat parses a /proc/<pid>/stat line. The comm field is wrapped in
// parentheses and may itself contain spaces or parentheses, so the line is
// split around the last ')'.
func parseStat(line string) (*Process, error) {
	open := strings.IndexByte(line, '(')
	close := strings.LastIndexByte(line, ')')
	if open < 0 || close < open {
		return nil, fmt.Errorf("malformed stat line")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(line[:open]))
	if err != nil {
		return nil, fmt.Errorf("pid field: %w", err)
	}

	// Fields after comm, numbered from 3 (state) per proc(5).
	rest := strings.Fields(line[close+1:])
	field := func(n int) string {
		i := n - 3
		if i < 0 || i >= len(rest) {
			return ""
		}
		return rest[i]
	}
	if len(rest) < 22 {
		return nil, fmt.Errorf("stat line has %d fields after comm, want >= 22", len(rest))
	}

	ppid, err := strconv.Atoi(field(4))
	if err != nil {
		return nil, fmt.Errorf("ppid field: %w", err)
	}
	utime, err := strconv.ParseInt(field(14), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("utime field: %w", err)
	}
	stime, err := strconv.ParseInt(field(15), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("stime field: %w", err)
	}
	startTicks, err := strconv.ParseInt(field(22), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("starttime field: %w", err)
	}
	vsize, err := strconv.ParseUint(field(23), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("vsize field: %w", err)
	}
	rssPages, err := strconv.ParseInt(field(24), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("rss field: %w", err)
	}

	state := field(3)
	if name, ok := stateNames[state]; ok {
		state = name
	}

	return &Process{
		PID:        pid,
		Name:       line[open+1 : close],
		State:      state,
		PPID:       ppid,
		VirtualKB:  vsize / 1024,
		ResidentKB: uint64(rssPages) * uint64(os.Getpagesize()) / 1024,
		startTicks: startTicks,
		cpuTicks:   utime + stime,
	}, nil
}

// bootTime reads the boot epoch from the btime line of /proc/stat.
func (t *Table) bootTime() (int64, error) {
	data, err := os.ReadFile(filepath.Join(t.root, "stat"))
	if err != nil {
		return 0, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "btime "); ok {
			return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		}
	}
	return 0, fmt.Errorf("no btime in %s/stat", t.root)
}

// uptime reads system uptime in seconds from /proc/uptime.
func (t *Table) uptime() (float64, error) {
	data, err := os.ReadFile(filepath.Join(t.root, "uptime"))
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty %s/uptime", t.root)
	}
	return strconv.ParseFloat(fields[0], 64)
}

// splitCmdline splits the NUL-separated /proc cmdline format.
func splitCmdline(data []byte) []string {
	s := strings.TrimRight(string(data), "\x00")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\x00")
}
