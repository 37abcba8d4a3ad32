package reporter_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/tutorialcheck/internal/domain"
	"github.com/fjglira/tutorialcheck/internal/reporter"
)

var _ = Describe("Reporter", func() {
	var (
		buf *bytes.Buffer
		rep *reporter.Reporter
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		rep = reporter.New(buf, reporter.ColorNever)
	})

	It("should write one line per outcome with location, kind and verdict", func() {
		rep.Report("tutorial.md", []domain.Outcome{
			{Block: domain.Block{Kind: domain.KindExec, Line: 3}, Status: domain.StatusPassed},
			{Block: domain.Block{Kind: domain.KindOutput, Line: 7}, Status: domain.StatusFailed,
				Reason: `line 1: expected "a", actual "b"`},
			{Block: domain.Block{Kind: domain.KindEnv, Line: 12}, Status: domain.StatusSkipped,
				Reason: "aborted by earlier session failure"},
		})

		Expect(buf.String()).To(ContainSubstring("PASS  tutorial.md:3 exec\n"))
		Expect(buf.String()).To(ContainSubstring(`FAIL  tutorial.md:7 output: line 1: expected "a", actual "b"` + "\n"))
		Expect(buf.String()).To(ContainSubstring("SKIP  tutorial.md:12 env: aborted by earlier session failure\n"))
	})

	It("should accumulate counts across files into one summary", func() {
		rep.Report("a.md", []domain.Outcome{
			{Block: domain.Block{Kind: domain.KindExec, Line: 1}, Status: domain.StatusPassed},
		})
		rep.Report("b.md", []domain.Outcome{
			{Block: domain.Block{Kind: domain.KindOutput, Line: 1}, Status: domain.StatusFailed, Reason: "no prior command"},
			{Block: domain.Block{Kind: domain.KindExec, Line: 5}, Status: domain.StatusSkipped, Reason: "run canceled"},
		})
		rep.Summary()

		Expect(buf.String()).To(ContainSubstring("1 passed, 1 failed, 1 skipped\n"))
	})

	Describe("Failed", func() {
		It("should be false for a run with only passes", func() {
			rep.Report("a.md", []domain.Outcome{
				{Block: domain.Block{Kind: domain.KindExec, Line: 1}, Status: domain.StatusPassed},
			})
			Expect(rep.Failed()).To(BeFalse())
		})

		It("should be true when any outcome failed", func() {
			rep.Report("a.md", []domain.Outcome{
				{Block: domain.Block{Kind: domain.KindExec, Line: 1}, Status: domain.StatusFailed, Reason: "timeout"},
			})
			Expect(rep.Failed()).To(BeTrue())
		})

		It("should be true after a fatal file error even with zero outcomes", func() {
			rep.Fatal("broken.md", errors.New("unterminated code fence"))
			Expect(rep.Failed()).To(BeTrue())
			Expect(buf.String()).To(ContainSubstring("FAIL  broken.md: unterminated code fence\n"))
		})

		It("should be false for an empty run", func() {
			Expect(rep.Failed()).To(BeFalse())
		})
	})
})
