package input

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/softquake/sm64bridge/internal/logger"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

// Reader runs an external controller-reader executable and speaks its
// line protocol: the reader emits one "stickX stickY a b z" line of raw
// integers per newline written to its stdin. A goroutine owns the
// blocking read/handshake cycle; Sample only drains its channel.
//
// The child has no cancellation path of its own, so Stop kills it.
type Reader struct {
	exePath string
	args    []string

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	lines   chan string
	dead    atomic.Bool
	started bool

	held sm64.MarioInputs
}

// NewReader wraps the controller reader executable at exePath.
func NewReader(exePath string, args ...string) *Reader {
	return &Reader{exePath: exePath, args: args}
}

// Start launches the child process and the handshake goroutine.
func (r *Reader) Start() error {
	if r.started {
		return nil
	}

	cmd := exec.Command(r.exePath, r.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("controller reader stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("controller reader stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting controller reader %s: %w", r.exePath, err)
	}

	r.cmd = cmd
	r.stdin = stdin
	r.lines = make(chan string, 8)
	r.dead.Store(false)
	r.started = true

	go r.pump(stdout, stdin)
	return nil
}

// Stop kills the child process. Idempotent; orphaning the child is the
// one failure mode this must prevent.
func (r *Reader) Stop() {
	if !r.started {
		return
	}
	r.started = false
	if r.stdin != nil {
		_ = r.stdin.Close()
	}
	if r.cmd != nil && r.cmd.Process != nil {
		_ = r.cmd.Process.Kill()
		// Reap without blocking the caller.
		go func(c *exec.Cmd) { _ = c.Wait() }(r.cmd)
	}
	r.cmd = nil
	r.stdin = nil
}

// Sample parses the freshest pending line. No pending line keeps the
// previous values; a terminated child or short line zeroes everything.
func (r *Reader) Sample(in *sm64.MarioInputs) {
	if r.dead.Load() {
		in.Zero()
		return
	}

	line, fresh := "", false
	for {
		select {
		case l := <-r.lines:
			line, fresh = l, true
			continue
		default:
		}
		break
	}

	if fresh {
		r.parseLine(line)
	}
	in.StickX = r.held.StickX
	in.StickY = r.held.StickY
	in.ButtonA = r.held.ButtonA
	in.ButtonB = r.held.ButtonB
	in.ButtonZ = r.held.ButtonZ
}

// parseLine applies one protocol line to the held state.
func (r *Reader) parseLine(line string) {
	vals := parseInts(line)
	if len(vals) < 5 {
		r.held.Zero()
		return
	}
	r.held.StickX = NormalizeAxis(float32(vals[0]), DivisorShort)
	r.held.StickY = NormalizeAxis(float32(vals[1]), DivisorShort)
	r.held.ButtonA = vals[2] != 0
	r.held.ButtonB = vals[3] != 0
	r.held.ButtonZ = vals[4] != 0
}

// pump drives the newline handshake: prompt, read one line, repeat.
func (r *Reader) pump(stdout io.Reader, stdin io.Writer) {
	scanner := bufio.NewScanner(stdout)
	for {
		if _, err := io.WriteString(stdin, "\n"); err != nil {
			break
		}
		if !scanner.Scan() {
			break
		}
		select {
		case r.lines <- scanner.Text():
		default:
			// Queue full; drop the line.
		}
	}
	r.dead.Store(true)
	logger.Debug("controller reader exited", zap.String("exe", r.exePath))
}

func parseInts(line string) []int {
	fields := strings.Fields(line)
	vals := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		vals = append(vals, v)
	}
	return vals
}
