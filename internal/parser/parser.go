package parser

import (
	"github.com/fjglira/tutorialcheck/internal/domain"
)

// BlockParser extracts tutorial blocks from a document.
type BlockParser interface {
	Parse(filePath string, content []byte) ([]domain.Block, error)
}
