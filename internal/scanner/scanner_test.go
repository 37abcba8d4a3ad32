package scanner_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/tutorialcheck/internal/scanner"
)

var _ = Describe("Scanner", func() {
	var (
		s   *scanner.Scanner
		dir string
	)

	write := func(relPath string) string {
		path := filepath.Join(dir, relPath)
		Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
		Expect(os.WriteFile(path, []byte("# doc\n"), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		s = scanner.NewScanner()
		dir = GinkgoT().TempDir()
	})

	It("should pass explicit file arguments through untouched", func() {
		file := write("notes.txt")
		files, err := s.Resolve([]string{file})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{file}))
	})

	It("should walk directories recursively for markdown files", func() {
		a := write("a.md")
		b := write("sub/b.markdown")
		write("sub/ignored.txt")

		files, err := s.Resolve([]string{dir})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{a, b}))
	})

	It("should sort directory results deterministically", func() {
		write("z.md")
		write("a.md")

		files, err := s.Resolve([]string{dir})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))
		Expect(filepath.Base(files[0])).To(Equal("a.md"))
		Expect(filepath.Base(files[1])).To(Equal("z.md"))
	})

	It("should keep the given order of multiple arguments", func() {
		first := write("one/x.md")
		second := write("two/y.md")

		files, err := s.Resolve([]string{filepath.Join(dir, "two"), first})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{second, first}))
	})

	It("should error on a path that does not exist", func() {
		_, err := s.Resolve([]string{filepath.Join(dir, "missing.md")})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("cannot access path"))
	})
})
