package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/tutorialcheck/internal/domain"
)

// Session executes one block's content against the persistent shell.
// *runner.ShellSession satisfies this; tests substitute a scripted fake.
type Session interface {
	Run(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// Verifier drives the block sequence through the session and accumulates
// one outcome per block.
type Verifier struct {
	session Session
	log     *logrus.Logger
}

// New creates a Verifier bound to a session.
func New(session Session, log *logrus.Logger) *Verifier {
	if log == nil {
		log = logrus.New()
	}
	return &Verifier{session: session, log: log}
}

// Run processes the blocks in document order against the single session.
// Env and Exec blocks are both submitted to the shell, but only Exec
// blocks update the current-result slot — an Env block's output is
// discarded, only its side effects matter. Output blocks compare their
// declared content against the most recent Exec's stdout. Failed outcomes
// do not stop the run. Only a session-fatal error aborts: the offending block is
// Failed and every later block is Skipped, so the outcome slice always
// covers all blocks.
//
// The returned error is non-nil only when the context was canceled.
func (v *Verifier) Run(ctx context.Context, blocks []domain.Block) ([]domain.Outcome, error) {
	outcomes := make([]domain.Outcome, 0, len(blocks))
	var current *domain.ExecutionResult

	for i, block := range blocks {
		if err := ctx.Err(); err != nil {
			return skipRemaining(outcomes, blocks[i:], "run canceled"), err
		}

		switch block.Kind {
		case domain.KindEnv, domain.KindExec:
			v.log.WithFields(logrus.Fields{
				"line": block.Line,
				"kind": block.Kind.String(),
			}).Debug("Submitting block to shell session")

			result, err := v.session.Run(ctx, block.Content)
			switch {
			case err == nil:
				if block.Kind == domain.KindExec {
					current = &result
				}
				outcomes = append(outcomes, domain.Outcome{Block: block, Status: domain.StatusPassed})
			case errors.Is(err, domain.ErrTimeout):
				// Recovered locally; the session stays up best effort.
				outcomes = append(outcomes, domain.Outcome{
					Block:  block,
					Status: domain.StatusFailed,
					Reason: "timeout",
				})
			case errors.Is(err, context.Canceled):
				outcomes = append(outcomes, domain.Outcome{
					Block:  block,
					Status: domain.StatusSkipped,
					Reason: "run canceled",
				})
				return skipRemaining(outcomes, blocks[i+1:], "run canceled"), err
			default:
				// The shell itself is gone. Nothing later can execute, so
				// the rest of the document is skipped rather than failed.
				outcomes = append(outcomes, domain.Outcome{
					Block:  block,
					Status: domain.StatusFailed,
					Reason: fmt.Sprintf("session error: %v", err),
				})
				return skipRemaining(outcomes, blocks[i+1:], "aborted by earlier session failure"), nil
			}

		case domain.KindOutput:
			if current == nil {
				outcomes = append(outcomes, domain.Outcome{
					Block:  block,
					Status: domain.StatusFailed,
					Reason: "no prior command",
				})
				continue
			}
			if reason, ok := CompareOutput(block.Content, current.Stdout); !ok {
				outcomes = append(outcomes, domain.Outcome{
					Block:  block,
					Status: domain.StatusFailed,
					Reason: reason,
				})
				continue
			}
			outcomes = append(outcomes, domain.Outcome{Block: block, Status: domain.StatusPassed})
		}
	}

	return outcomes, nil
}

func skipRemaining(outcomes []domain.Outcome, rest []domain.Block, reason string) []domain.Outcome {
	for _, block := range rest {
		outcomes = append(outcomes, domain.Outcome{
			Block:  block,
			Status: domain.StatusSkipped,
			Reason: reason,
		})
	}
	return outcomes
}
