package verify_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/tutorialcheck/internal/domain"
	"github.com/fjglira/tutorialcheck/internal/parser"
	"github.com/fjglira/tutorialcheck/internal/runner"
	"github.com/fjglira/tutorialcheck/internal/verify"
)

// verifyFixture runs a testdata tutorial against a real shell session,
// exactly as the check command wires things up.
func verifyFixture(name string) []domain.Outcome {
	path := filepath.Join("..", "..", "testdata", "markdown", name)
	content, err := os.ReadFile(path)
	Expect(err).ToNot(HaveOccurred())

	blocks, err := parser.NewMarkdownParser().Parse(name, content)
	Expect(err).ToNot(HaveOccurred())

	session := runner.NewShellSession(runner.Options{})
	Expect(session.Start()).To(Succeed())
	DeferCleanup(session.Stop)

	outcomes, err := verify.New(session, nil).Run(context.Background(), blocks)
	Expect(err).ToNot(HaveOccurred())
	return outcomes
}

var _ = Describe("Tutorial verification end to end", func() {
	It("should pass hello.md, proving state persists across blocks", func() {
		outcomes := verifyFixture("hello.md")
		Expect(outcomes).To(HaveLen(3))
		for _, o := range outcomes {
			Expect(o.Status).To(Equal(domain.StatusPassed), o.Reason)
		}
	})

	It("should pass both pairs of two-pairs.md without result leakage", func() {
		outcomes := verifyFixture("two-pairs.md")
		Expect(outcomes).To(HaveLen(4))
		for _, o := range outcomes {
			Expect(o.Status).To(Equal(domain.StatusPassed), o.Reason)
		}
	})

	It("should fail only the output block of mismatch.md", func() {
		outcomes := verifyFixture("mismatch.md")
		Expect(outcomes).To(HaveLen(2))
		Expect(outcomes[0].Status).To(Equal(domain.StatusPassed))
		Expect(outcomes[1].Status).To(Equal(domain.StatusFailed))
		Expect(outcomes[1].Reason).To(Equal(`line 1: expected "expected", actual "actual"`))
	})

	It("should fail the orphan output block with no prior command", func() {
		outcomes := verifyFixture("orphan-output.md")
		Expect(outcomes).To(HaveLen(1))
		Expect(outcomes[0].Status).To(Equal(domain.StatusFailed))
		Expect(outcomes[0].Reason).To(Equal("no prior command"))
	})

	It("should produce no outcomes for a document without recognized fences", func() {
		Expect(verifyFixture("no-fences.md")).To(BeEmpty())
	})

	It("should run empty and multi-line blocks from shapes.md", func() {
		outcomes := verifyFixture("shapes.md")
		Expect(outcomes).To(HaveLen(4))
		for _, o := range outcomes {
			Expect(o.Status).To(Equal(domain.StatusPassed), o.Reason)
		}
	})
})
