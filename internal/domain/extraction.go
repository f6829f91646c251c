package domain

import "fmt"

// ExtractionModel selects the AI backend used to extract a document
type ExtractionModel string

const (
	ModelGemini ExtractionModel = "gemini"
	ModelGroq   ExtractionModel = "groq"
)

// ExtractionModels lists every accepted model in display order
var ExtractionModels = []ExtractionModel{ModelGemini, ModelGroq}

// ParseExtractionModel validates s against the closed set of models
func ParseExtractionModel(s string) (ExtractionModel, error) {
	switch ExtractionModel(s) {
	case ModelGemini, ModelGroq:
		return ExtractionModel(s), nil
	}
	return "", NewValidationError("model", fmt.Sprintf("model must be either %q or %q", ModelGemini, ModelGroq))
}

// String implements fmt.Stringer
func (m ExtractionModel) String() string {
	return string(m)
}

// ExtractedFileName is the fileName every extractor assigns to its result
func ExtractedFileName(fileID string) string {
	return "invoice-" + fileID + ".pdf"
}
