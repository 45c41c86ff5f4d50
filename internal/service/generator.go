package service

import (
	"context"
	"errors"
	"time"

	"github.com/lex-ai/internal/ai"
	"github.com/lex-ai/internal/domain"
	"go.uber.org/zap"
)

// Generator orchestrates legal document generation.
type Generator struct {
	aiClient ai.Client
	prompts  *ai.PromptBuilder
	logger   *zap.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(aiClient ai.Client, prompts *ai.PromptBuilder, logger *zap.Logger) *Generator {
	return &Generator{
		aiClient: aiClient,
		prompts:  prompts,
		logger:   logger.Named("generator"),
	}
}

// Generate builds the generation prompt for the document type and fields
// and returns the generated document verbatim.
func (g *Generator) Generate(ctx context.Context, documentType string, fields map[string]string) (*domain.GenerationResult, error) {
	startTime := time.Now()

	if documentType == "" || fields == nil {
		return nil, domain.E(domain.KindInvalidInput, "generate_document",
			errors.New("missing required data for document generation"))
	}

	prompt := g.prompts.BuildGenerationPrompt(documentType, fields)

	document, err := g.aiClient.Complete(ctx, prompt)
	if err != nil {
		g.logger.Error("document generation failed upstream",
			zap.String("document_type", documentType),
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return nil, err
	}

	g.logger.Info("document generated",
		zap.String("document_type", documentType),
		zap.Int("field_count", len(fields)),
		zap.Int("document_length", len(document)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &domain.GenerationResult{
		Status:       "success",
		DocumentType: documentType,
		Document:     document,
		Timestamp:    domain.Timestamp(),
	}, nil
}
