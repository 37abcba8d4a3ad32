package domain

import "time"

// Fence-info tags recognized in tutorial markdown. Matching is exact and
// case-sensitive; any other info string is inert.
const (
	TagEnv    = "bash-env"
	TagExec   = "bash-exec"
	TagOutput = "bash-output"
)

// BlockKind identifies the role of a recognized fenced block.
type BlockKind int

const (
	KindEnv BlockKind = iota
	KindExec
	KindOutput
)

// KindForTag maps a fence-info tag to its BlockKind. The second return
// value is false for unrecognized tags.
func KindForTag(tag string) (BlockKind, bool) {
	switch tag {
	case TagEnv:
		return KindEnv, true
	case TagExec:
		return KindExec, true
	case TagOutput:
		return KindOutput, true
	}
	return 0, false
}

func (k BlockKind) String() string {
	switch k {
	case KindEnv:
		return "env"
	case KindExec:
		return "exec"
	case KindOutput:
		return "output"
	}
	return "unknown"
}

// Block is one recognized fenced region of the tutorial source.
// Blocks are immutable once parsed; slice order equals document order.
type Block struct {
	Kind    BlockKind
	Content string // literal text between the fence lines
	Line    int    // 1-based line number of the opening fence
}

// ExecutionResult captures what a single submission to the shell session
// produced. A nonzero exit code is data, not an error.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Status is the per-block verdict.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASS"
	case StatusFailed:
		return "FAIL"
	case StatusSkipped:
		return "SKIP"
	}
	return "unknown"
}

// Outcome is the verdict for one block. The verifier produces exactly one
// Outcome per Block, in document order.
type Outcome struct {
	Block  Block
	Status Status
	Reason string // set for Failed and Skipped
}
