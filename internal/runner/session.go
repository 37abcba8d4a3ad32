package runner

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fjglira/tutorialcheck/internal/domain"
)

// Sentinel bytes framing the end of each submission's output on a stream.
// Control characters keep them out of the way of ordinary command output.
const (
	frameMark  = "\x01"
	statusMark = "\x02"
)

// Options configures a shell session.
type Options struct {
	Shell   string        // shell binary, e.g. /bin/bash
	Args    []string      // extra arguments to the shell
	Timeout time.Duration // per-command timeout, 0 = none
}

// frame is one sentinel-delimited chunk read from a pipe.
type frame struct {
	data   string
	status int // exit status, stdout frames only
	err    error
}

// ShellSession owns one persistent shell process. All submissions in a
// verification run go through the same session, so variable assignments,
// working-directory changes and other side effects carry across blocks.
//
// Not safe for concurrent use; the verifier drives it strictly
// sequentially.
type ShellSession struct {
	opts Options

	cmd   *exec.Cmd
	stdin io.WriteCloser

	outFrames chan frame
	errFrames chan frame

	// Frames belonging to timed-out submissions that have not been read
	// yet. The next Run discards them before taking its own frame.
	staleOut int
	staleErr int

	stopped bool
}

// NewShellSession creates a session with the given options. The shell
// process is not launched until Start.
func NewShellSession(opts Options) *ShellSession {
	if opts.Shell == "" {
		opts.Shell = "/bin/bash"
	}
	return &ShellSession{opts: opts}
}

// Start launches the shell process with piped stdin/stdout/stderr and
// begins the pipe readers. A failure here is fatal for the whole run.
func (s *ShellSession) Start() error {
	cmd := exec.Command(s.opts.Shell, s.opts.Args...)
	// Own process group, so Stop can reap background children the
	// tutorial's commands may have left behind.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return domain.NewError("session", "", 0, "failed to open shell stdin", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return domain.NewError("session", "", 0, "failed to open shell stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return domain.NewError("session", "", 0, "failed to open shell stderr", err)
	}

	if err := cmd.Start(); err != nil {
		return domain.NewError("session", "", 0, "failed to start shell "+s.opts.Shell, err)
	}

	s.cmd = cmd
	s.stdin = stdin
	s.outFrames = make(chan frame, 4)
	s.errFrames = make(chan frame, 4)

	go readFrames(stdout, s.outFrames, true)
	go readFrames(stderr, s.errFrames, false)

	return nil
}

// Run executes one block's content as a single submission and returns its
// captured output and exit status. Multi-line content runs line by line
// within the same submission; the exit status is that of the last command.
// A nonzero exit status is returned as data, not as an error.
//
// If the session's per-command timeout or the context deadline expires,
// Run returns domain.ErrTimeout and leaves the shell running; the
// submission's late output is discarded by a later Run. A dead shell
// yields domain.ErrSessionClosed.
func (s *ShellSession) Run(ctx context.Context, command string) (domain.ExecutionResult, error) {
	if s.cmd == nil || s.stopped {
		return domain.ExecutionResult{}, domain.ErrSessionClosed
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	if _, err := io.WriteString(s.stdin, submission(command)); err != nil {
		return domain.ExecutionResult{}, domain.ErrSessionClosed
	}

	outFrame, err := s.await(ctx, s.outFrames, &s.staleOut)
	if err != nil {
		// The stderr frame for this submission is pending too.
		s.staleErr++
		return domain.ExecutionResult{}, err
	}
	errFrame, err := s.await(ctx, s.errFrames, &s.staleErr)
	if err != nil {
		return domain.ExecutionResult{}, err
	}

	return domain.ExecutionResult{
		Stdout:   outFrame.data,
		Stderr:   errFrame.data,
		ExitCode: outFrame.status,
		Duration: time.Since(start),
	}, nil
}

// Stop terminates the session, releasing the shell process. Idempotent;
// safe to defer on every exit path.
func (s *ShellSession) Stop() {
	if s.cmd == nil || s.stopped {
		return
	}
	s.stopped = true
	s.stdin.Close()

	done := make(chan struct{})
	go func() {
		s.cmd.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		syscall.Kill(-s.cmd.Process.Pid, syscall.SIGKILL)
		<-done
	}

	// The shell is gone; sweep the group for stragglers it spawned.
	syscall.Kill(-s.cmd.Process.Pid, syscall.SIGKILL)
}

// await takes the next frame for the current submission, discarding any
// frames left over from timed-out submissions first.
func (s *ShellSession) await(ctx context.Context, ch chan frame, stale *int) (frame, error) {
	for {
		select {
		case f := <-ch:
			if f.err != nil {
				return frame{}, domain.ErrSessionClosed
			}
			if *stale > 0 {
				*stale--
				continue
			}
			return f, nil
		case <-ctx.Done():
			*stale++
			if ctx.Err() == context.DeadlineExceeded {
				return frame{}, domain.ErrTimeout
			}
			return frame{}, ctx.Err()
		}
	}
}

// submission wraps block content with the sentinel printfs that frame the
// end of its stdout and stderr and carry the exit status. The status is
// captured immediately after the content so the sentinels cannot clobber
// it.
func submission(command string) string {
	var b strings.Builder
	b.WriteString(command)
	if !strings.HasSuffix(command, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("__tutorialcheck_rc=$?\n")
	b.WriteString("printf '" + frameMark + "%d" + statusMark + "' \"$__tutorialcheck_rc\"\n")
	b.WriteString("printf '" + frameMark + statusMark + "' >&2\n")
	return b.String()
}

// readFrames reads sentinel-delimited chunks from a pipe until EOF. The
// stdout reader additionally parses the exit status between the frame and
// status marks.
func readFrames(r io.Reader, ch chan<- frame, withStatus bool) {
	br := bufio.NewReader(r)
	for {
		data, err := br.ReadString(frameMark[0])
		if err != nil {
			ch <- frame{err: err}
			return
		}
		data = strings.TrimSuffix(data, frameMark)

		trailer, err := br.ReadString(statusMark[0])
		if err != nil {
			ch <- frame{err: err}
			return
		}
		trailer = strings.TrimSuffix(trailer, statusMark)

		f := frame{data: data}
		if withStatus {
			status, convErr := strconv.Atoi(trailer)
			if convErr != nil {
				ch <- frame{err: convErr}
				return
			}
			f.status = status
		}
		ch <- f
	}
}
