package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
)

// TextExtractionService layers structured-field parsing on top of a raw text
// extractor. The extractor is injected so that tests (and alternate OCR
// backends) can swap it without touching shared state.
type TextExtractionService struct {
	extractor ports.TextExtractor
	logger    zerolog.Logger
}

func NewTextExtractionService(extractor ports.TextExtractor, logger zerolog.Logger) *TextExtractionService {
	return &TextExtractionService{extractor: extractor, logger: logger}
}

var dateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)

// sentenceDelims covers French and Arabic sentence punctuation.
var sentenceDelims = func(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '؟' || r == '\n'
}

// keywordSet groups the per-language markers the parser scans for.
type keywordSet struct {
	incident    []string // words signalling the incident sentence
	location    []string // prepositions/labels preceding a location
	items       []string // labels preceding the stolen items list
	perpetrator []string // labels preceding perpetrator information
}

var keywordsByLanguage = map[string]keywordSet{
	domain.LanguageFrench: {
		incident:    []string{"vol", "vandalisme", "dégât", "degat", "eaux", "cambriolage"},
		location:    []string{"lieu:", "lieu :", "dans le", "dans la", "à "},
		items:       []string{"objets volés:", "objets voles:", "volé:", "vole:"},
		perpetrator: []string{"auteur:", "auteur :", "suspect:"},
	},
	domain.LanguageArabic: {
		incident:    []string{"سرقة", "تخريب", "مياه", "سطو"},
		location:    []string{"المكان:", "في "},
		items:       []string{"المسروقات:", "الأغراض المسروقة:"},
		perpetrator: []string{"الجاني:", "المشتبه به:"},
	},
}

// ProcessDocument extracts the raw text of a claim and parses the structured
// fields the generation stage depends on. Extraction failures and empty text
// propagate as typed errors; the pipeline never continues on silent emptiness.
func (s *TextExtractionService) ProcessDocument(ctx context.Context, doc *domain.Document) (*ports.ExtractionResult, error) {
	text, err := s.extractor.ExtractText(ctx, doc.FilePath, doc.FileType, doc.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text for document %s", domain.ErrExtractionFailed, doc.ID)
	}

	data := parseExtractedData(text, doc.IncidentType, doc.Language)

	s.logger.Debug().
		Str("document_id", doc.ID).
		Str("language", doc.Language).
		Int("text_len", len(text)).
		Msg("text extracted")

	return &ports.ExtractionResult{Text: text, Data: data}, nil
}

// parseExtractedData pulls structured fields out of the raw text. The shape
// depends on the incident type: theft claims always carry a description and,
// when present in the text, the stolen items and perpetrator fields.
func parseExtractedData(text string, incidentType domain.IncidentType, language string) *domain.ExtractedData {
	kw, ok := keywordsByLanguage[language]
	if !ok {
		kw = keywordsByLanguage[domain.LanguageFrench]
	}

	data := &domain.ExtractedData{
		Date:     dateRe.FindString(text),
		Location: afterAnyLabel(text, kw.location),
	}

	sentences := strings.FieldsFunc(text, sentenceDelims)
	for _, sentence := range sentences {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		if containsAnyFold(trimmed, kw.incident) {
			data.Description = trimmed
			break
		}
	}
	// A theft claim must never leave the description empty; fall back to the
	// full text when no sentence matched the incident keywords.
	if data.Description == "" {
		data.Description = text
	}

	if incidentType == domain.IncidentTheft {
		data.StolenItems = afterAnyLabel(text, kw.items)
	}
	if incidentType.RequiresComplaint() {
		data.PerpetratorInfo = afterAnyLabel(text, kw.perpetrator)
		if data.PerpetratorInfo == "" {
			data.PerpetratorInfo = "Unknown"
		}
	}

	return data
}

// afterAnyLabel returns the text fragment following the first matching label,
// cut at the end of the sentence.
func afterAnyLabel(text string, labels []string) string {
	lower := strings.ToLower(text)
	for _, label := range labels {
		idx := strings.Index(lower, strings.ToLower(label))
		if idx < 0 {
			continue
		}
		rest := text[idx+len(label):]
		if end := strings.IndexFunc(rest, sentenceDelims); end >= 0 {
			rest = rest[:end]
		}
		if fragment := strings.TrimSpace(rest); fragment != "" {
			return fragment
		}
	}
	return ""
}

func containsAnyFold(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
