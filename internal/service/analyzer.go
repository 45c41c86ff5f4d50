// Package service contains the business logic layer.
package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lex-ai/internal/ai"
	"github.com/lex-ai/internal/compliance"
	"github.com/lex-ai/internal/domain"
	"github.com/lex-ai/internal/extractor"
	"github.com/lex-ai/pkg/textutil"
	"go.uber.org/zap"
)

const defaultAnalysisType = "summary"

// Analyzer orchestrates the document/text analysis pipeline.
type Analyzer struct {
	aiClient  ai.Client
	prompts   *ai.PromptBuilder
	extractor extractor.Extractor
	scorer    compliance.Scorer
	uploadDir string
	allowed   map[string]bool
	logger    *zap.Logger
}

// AnalyzerConfig contains configuration for the Analyzer.
type AnalyzerConfig struct {
	UploadDir         string
	AllowedExtensions []string
}

// NewAnalyzer creates a new Analyzer with all dependencies.
func NewAnalyzer(
	aiClient ai.Client,
	prompts *ai.PromptBuilder,
	ext extractor.Extractor,
	scorer compliance.Scorer,
	cfg AnalyzerConfig,
	logger *zap.Logger,
) *Analyzer {
	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, e := range cfg.AllowedExtensions {
		allowed[strings.ToLower(e)] = true
	}

	return &Analyzer{
		aiClient:  aiClient,
		prompts:   prompts,
		extractor: ext,
		scorer:    scorer,
		uploadDir: cfg.UploadDir,
		allowed:   allowed,
		logger:    logger.Named("analyzer"),
	}
}

// AnalyzeUpload validates and stores the uploaded document, extracts its
// text and runs the shared analysis tail. The stored file is kept after
// the request completes.
func (a *Analyzer) AnalyzeUpload(ctx context.Context, file *multipart.FileHeader, analysisType string) (*domain.AnalysisResult, error) {
	startTime := time.Now()

	if file == nil {
		return nil, domain.E(domain.KindInvalidInput, "analyze_upload", domain.ErrNoDocument)
	}
	if file.Filename == "" {
		return nil, domain.E(domain.KindInvalidInput, "analyze_upload", domain.ErrNoFileSelected)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if ext == "" || !a.allowed[ext] {
		return nil, domain.E(domain.KindInvalidInput, "analyze_upload",
			fmt.Errorf("file type not allowed. Please upload one of: %s", strings.Join(a.allowedList(), ", ")))
	}

	name := textutil.SanitizeFilename(file.Filename)
	path, err := a.saveUpload(file, name)
	if err != nil {
		return nil, domain.E(domain.KindInternal, "save_upload", err)
	}

	a.logger.Debug("upload stored",
		zap.String("path", path),
		zap.Int64("size", file.Size),
	)

	text, err := a.extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	return a.analyze(ctx, text, analysisType, name, ai.SourceDocument, startTime)
}

// AnalyzeText runs the analysis tail directly on inline legal text.
func (a *Analyzer) AnalyzeText(ctx context.Context, text, analysisType string) (*domain.AnalysisResult, error) {
	startTime := time.Now()

	if textutil.IsBlank(text) {
		return nil, domain.E(domain.KindInvalidInput, "analyze_text", domain.ErrEmptyText)
	}

	return a.analyze(ctx, text, analysisType, "Text Input", ai.SourceText, startTime)
}

// analyze is the shared tail: build the prompt, call the generative API,
// compute the compliance report and assemble the result envelope.
func (a *Analyzer) analyze(ctx context.Context, text, analysisType, documentName, source string, startTime time.Time) (*domain.AnalysisResult, error) {
	if analysisType == "" {
		analysisType = defaultAnalysisType
	}

	prompt := a.prompts.BuildAnalysisPrompt(text, analysisType, source)

	result, err := a.aiClient.Complete(ctx, prompt)
	if err != nil {
		a.logger.Error("analysis failed upstream",
			zap.String("analysis_type", analysisType),
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return nil, err
	}

	validation := a.scorer.Validate(text, analysisType)
	length := utf8.RuneCountInString(text)

	a.logger.Info("analysis completed",
		zap.String("document_name", documentName),
		zap.String("analysis_type", analysisType),
		zap.Int("document_length", length),
		zap.String("compliance_status", string(validation.ComplianceStatus)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &domain.AnalysisResult{
		Status:         "success",
		DocumentName:   documentName,
		DocumentLength: length,
		AnalysisType:   analysisType,
		Result:         result,
		Validation:     validation,
		Timestamp:      domain.Timestamp(),
	}, nil
}

// saveUpload writes the upload under a collision-resistant name so that
// concurrent uploads of the same filename never clash.
func (a *Analyzer) saveUpload(file *multipart.FileHeader, name string) (string, error) {
	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(a.uploadDir, fmt.Sprintf("%s_%s", uuid.NewString(), name))

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return path, nil
}

func (a *Analyzer) allowedList() []string {
	out := make([]string, 0, len(a.allowed))
	for _, e := range []string{"txt", "pdf", "doc", "docx", "rtf"} {
		if a.allowed[e] {
			out = append(out, e)
		}
	}
	// Extensions configured beyond the defaults
	for e := range a.allowed {
		switch e {
		case "txt", "pdf", "doc", "docx", "rtf":
		default:
			out = append(out, e)
		}
	}
	return out
}
