package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/fjglira/tutorialcheck/internal/domain"
)

// MarkdownParser parses Markdown tutorials using goldmark.
type MarkdownParser struct{}

// NewMarkdownParser creates a new MarkdownParser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *MarkdownParser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Parse extracts the recognized tutorial blocks from a markdown document,
// in document order. Fenced regions whose info string is not exactly one
// of the three tutorial tags are ignored, as is everything outside fences.
// An unterminated fence is a fatal parse error: goldmark silently closes
// dangling fences at end of document, so termination is validated against
// the raw source first.
func (p *MarkdownParser) Parse(filePath string, content []byte) ([]domain.Block, error) {
	if err := validateFences(filePath, content); err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(content)
	doc := md.Parser().Parse(reader)

	var blocks []domain.Block
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		node, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		kind, recognized := domain.KindForTag(fenceTag(node, content))
		if !recognized {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(content))
		}

		blocks = append(blocks, domain.Block{
			Kind:    kind,
			Content: buf.String(),
			Line:    lineNumber(content, node.Info.Segment.Start),
		})
		return ast.WalkContinue, nil
	})

	if err != nil {
		return nil, domain.NewError("parse", filePath, 0, "failed to walk markdown AST", err)
	}

	return blocks, nil
}

// fenceTag returns the full info string of a fenced code block. The whole
// string must match a tutorial tag: "bash-exec extra" is not recognized.
func fenceTag(node *ast.FencedCodeBlock, source []byte) string {
	if node.Info == nil {
		return ""
	}
	return strings.TrimSpace(string(node.Info.Segment.Value(source)))
}

// validateFences checks that every opening code fence has a matching
// closing fence before end of document. Follows the CommonMark rule: a
// closing fence uses the same character, at least the opening run length,
// at most three spaces of indentation, and nothing but whitespace after.
//
// Only top-level fences are tracked. Fences nested in containers
// (blockquotes, indented list items) carry a marker prefix this scan does
// not strip, so they are neither validated for termination nor mistaken
// for closing fences of a top-level block.
func validateFences(filePath string, content []byte) error {
	var (
		openChar byte
		openLen  int
		openLine int
		inFence  bool
	)

	lineNo := 0
	for _, raw := range strings.SplitAfter(string(content), "\n") {
		if raw == "" {
			continue
		}
		lineNo++
		line := strings.TrimRight(raw, "\n")

		char, runLen, rest, ok := fenceDelimiter(line)
		if !ok {
			continue
		}

		if !inFence {
			// Backtick fences may not contain backticks in the info string.
			if char == '`' && strings.ContainsRune(rest, '`') {
				continue
			}
			inFence = true
			openChar = char
			openLen = runLen
			openLine = lineNo
			continue
		}

		if char == openChar && runLen >= openLen && strings.TrimSpace(rest) == "" {
			inFence = false
		}
	}

	if inFence {
		return domain.NewError("parse", filePath, openLine, "unterminated code fence", nil)
	}
	return nil
}

// fenceDelimiter reports whether a line starts a fence delimiter run:
// up to three spaces of indentation followed by three or more backticks
// or tildes. It returns the delimiter character, the run length, and the
// remainder of the line.
func fenceDelimiter(line string) (byte, int, string, bool) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 || indent == len(line) {
		return 0, 0, "", false
	}

	char := line[indent]
	if char != '`' && char != '~' {
		return 0, 0, "", false
	}

	runLen := 0
	for i := indent; i < len(line) && line[i] == char; i++ {
		runLen++
	}
	if runLen < 3 {
		return 0, 0, "", false
	}

	return char, runLen, line[indent+runLen:], true
}

// lineNumber calculates the 1-based line number for a byte offset.
func lineNumber(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}
