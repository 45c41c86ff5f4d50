// Package extractor converts uploaded documents into plain text.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lex-ai/internal/domain"
	"go.uber.org/zap"
)

// Extractor converts a stored document into plain text.
type Extractor interface {
	// Extract reads the file at path and returns its plain text content.
	Extract(path string) (string, error)
}

// FileExtractor is the default Extractor. It dispatches on file extension.
type FileExtractor struct {
	logger *zap.Logger
}

// New creates the default extractor.
func New(logger *zap.Logger) *FileExtractor {
	return &FileExtractor{
		logger: logger.Named("extractor"),
	}
}

// Extract reads and converts the document at path. Unsupported or corrupt
// content yields an extraction error.
func (e *FileExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.E(domain.KindExtraction, "read_file", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	var text string
	switch ext {
	case "txt":
		text, err = extractTXT(data)
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDOCX(data)
	case "rtf":
		text, err = extractRTF(data)
	case "doc":
		// Legacy Word has no parser available; salvage printable runs.
		text, err = extractDOC(data)
	default:
		err = fmt.Errorf("unsupported file type: %s", ext)
	}

	if err != nil {
		e.logger.Warn("text extraction failed",
			zap.String("path", path),
			zap.String("type", ext),
			zap.Error(err),
		)
		return "", domain.E(domain.KindExtraction, "extract_"+ext, err)
	}

	e.logger.Debug("text extracted",
		zap.String("type", ext),
		zap.Int("length", len(text)),
	)

	return text, nil
}
