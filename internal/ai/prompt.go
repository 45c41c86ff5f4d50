// Package ai provides the generative-text client interface and implementations.
package ai

import (
	"bytes"
	"sort"
	"strings"
	"text/template"

	"github.com/lex-ai/pkg/textutil"
)

// Source kinds for the analysis prompt wording.
const (
	SourceDocument = "document"
	SourceText     = "legal text"
)

// analysisPromptTemplate is the fixed template for analysis requests.
const analysisPromptTemplate = `You are a legal document analyzer. Please provide a {{.AnalysisType}} of the following {{.Source}}:

{{.Text}}`

// generationPreamble opens every generation prompt.
const generationPreamble = "You are an expert legal document generator specialized in Indian law. Generate a professional %TYPE% with the following details:\n\n"

// generationInstructions maps a document type to its specific instruction
// block. Unknown types fall back to genericInstruction.
var generationInstructions = map[string]string{
	"employment":   "\nThis should be a comprehensive employment contract compliant with Indian labor laws. Include sections for compensation, working hours, confidentiality, intellectual property, termination conditions, and dispute resolution.",
	"nda":          "\nThis should be a detailed non-disclosure agreement that protects confidential information under Indian law. Include sections defining confidential information, obligations of the receiving party, exclusions, term of agreement, and remedies for breach.",
	"lease":        "\nThis should be a comprehensive lease agreement compliant with Indian property laws and Rent Control Acts. Include sections on rent, security deposit, maintenance responsibilities, term of lease, conditions for termination, and dispute resolution.",
	"service":      "\nThis should be a detailed service agreement compliant with Indian contract law. Include sections on scope of services, payment terms, intellectual property rights, confidentiality, term and termination, warranties, and limitations of liability.",
	"shareholders": "\nThis should be a comprehensive shareholders agreement compliant with the Indian Companies Act, 2013. Include sections on share ownership, transfer restrictions, management structure, dividend policy, reserved matters, dispute resolution, and exit provisions.",
}

const genericInstruction = "\nThis should be a professional legal document that addresses the specified requirements while ensuring compliance with relevant Indian laws and regulations."

const generationClosing = "\n\nFormat the document professionally with clear sections, numbering, and legal language. Ensure all provisions are legally sound and compliant with current Indian legislation."

// PromptBuilder constructs prompts for the generative-text service.
type PromptBuilder struct {
	analysisTmpl *template.Template
}

// NewPromptBuilder creates a prompt builder with the fixed templates.
func NewPromptBuilder() (*PromptBuilder, error) {
	tmpl, err := template.New("analysis_prompt").Parse(analysisPromptTemplate)
	if err != nil {
		return nil, err
	}

	return &PromptBuilder{analysisTmpl: tmpl}, nil
}

// BuildAnalysisPrompt constructs the analysis prompt for text extracted
// from an uploaded document (source SourceDocument) or inline text
// (source SourceText).
func (p *PromptBuilder) BuildAnalysisPrompt(text, analysisType, source string) string {
	var buf bytes.Buffer
	data := struct {
		AnalysisType string
		Source       string
		Text         string
	}{
		AnalysisType: analysisType,
		Source:       source,
		Text:         text,
	}

	if err := p.analysisTmpl.Execute(&buf, data); err != nil {
		// Fallback to simple format if template execution fails
		return "You are a legal document analyzer. Please provide a " + analysisType + " of the following " + source + ":\n\n" + text
	}

	return buf.String()
}

// BuildGenerationPrompt constructs the document generation prompt: the
// Indian-law preamble, one "Title Cased Field: value" line per field in
// sorted key order, the type-specific instruction block, and the fixed
// closing formatting instruction.
func (p *PromptBuilder) BuildGenerationPrompt(documentType string, fields map[string]string) string {
	var b strings.Builder
	b.WriteString(strings.Replace(generationPreamble, "%TYPE%", documentType, 1))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteString(textutil.HumanizeFieldName(k))
		b.WriteString(": ")
		b.WriteString(fields[k])
		b.WriteString("\n")
	}

	instruction, ok := generationInstructions[documentType]
	if !ok {
		instruction = genericInstruction
	}
	b.WriteString(instruction)
	b.WriteString(generationClosing)

	return b.String()
}
