package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

const frenchTheftText = `Déclaration de sinistre.
Le 12/03/2026 un vol a été commis dans mon appartement.
Lieu: 14 rue des Lilas, Alger.
Objets volés: un ordinateur portable, une montre.
Auteur: individu non identifié.`

const arabicTheftText = `تصريح بحادث.
بتاريخ 05/01/2026 وقعت سرقة في منزلي.
المكان: حي السلام، وهران.
المسروقات: هاتف محمول ومبلغ مالي.
الجاني: شخص مجهول.`

func fixedExtractor(text string) *stubExtractor {
	return &stubExtractor{
		extractFn: func(context.Context, string, string, string) (string, error) {
			return text, nil
		},
	}
}

func TestTextExtraction_FrenchTheft(t *testing.T) {
	svc := NewTextExtractionService(fixedExtractor(frenchTheftText), discardLogger)
	doc := pendingDocument("doc-1", "user-1", domain.LanguageFrench, domain.IncidentTheft, t.TempDir())

	result, err := svc.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text == "" {
		t.Fatal("raw text must be preserved")
	}
	data := result.Data
	if data.Date != "12/03/2026" {
		t.Errorf("date: got %q", data.Date)
	}
	if !strings.Contains(data.Location, "rue des Lilas") {
		t.Errorf("location: got %q", data.Location)
	}
	if !strings.Contains(strings.ToLower(data.Description), "vol") {
		t.Errorf("description must carry the incident sentence, got %q", data.Description)
	}
	if !strings.Contains(data.StolenItems, "ordinateur portable") {
		t.Errorf("stolen items: got %q", data.StolenItems)
	}
	if !strings.Contains(data.PerpetratorInfo, "individu non identifié") {
		t.Errorf("perpetrator: got %q", data.PerpetratorInfo)
	}
}

func TestTextExtraction_ArabicTheft(t *testing.T) {
	svc := NewTextExtractionService(fixedExtractor(arabicTheftText), discardLogger)
	doc := pendingDocument("doc-1", "user-1", domain.LanguageArabic, domain.IncidentTheft, t.TempDir())

	result, err := svc.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data := result.Data
	if data.Date != "05/01/2026" {
		t.Errorf("date: got %q", data.Date)
	}
	if !strings.Contains(data.Location, "حي السلام") {
		t.Errorf("location: got %q", data.Location)
	}
	if !strings.Contains(data.Description, "سرقة") {
		t.Errorf("description must carry the incident sentence, got %q", data.Description)
	}
	if !strings.Contains(data.StolenItems, "هاتف محمول") {
		t.Errorf("stolen items: got %q", data.StolenItems)
	}
	if !strings.Contains(data.PerpetratorInfo, "مجهول") {
		t.Errorf("perpetrator: got %q", data.PerpetratorInfo)
	}
}

func TestTextExtraction_TheftDescriptionNeverEmpty(t *testing.T) {
	// No sentence mentions an incident keyword; the full text becomes the
	// description rather than leaving a theft claim without one.
	svc := NewTextExtractionService(fixedExtractor("un texte sans rapport"), discardLogger)
	doc := pendingDocument("doc-1", "user-1", domain.LanguageFrench, domain.IncidentTheft, t.TempDir())

	result, err := svc.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Data.Description == "" {
		t.Fatal("theft description must never be empty")
	}
}

func TestTextExtraction_WaterDamageSkipsComplaintFields(t *testing.T) {
	text := "Le 02/02/2026 un dégât des eaux dans la cuisine. Lieu: Constantine."
	svc := NewTextExtractionService(fixedExtractor(text), discardLogger)
	doc := pendingDocument("doc-1", "user-1", domain.LanguageFrench, domain.IncidentWaterDamage, t.TempDir())

	result, err := svc.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := result.Data
	if data.StolenItems != "" {
		t.Errorf("water damage must not carry stolen items, got %q", data.StolenItems)
	}
	if data.PerpetratorInfo != "" {
		t.Errorf("water damage must not carry perpetrator info, got %q", data.PerpetratorInfo)
	}
}

func TestTextExtraction_VandalismDefaultsPerpetratorToUnknown(t *testing.T) {
	text := "Le 10/04/2026 un acte de vandalisme sur ma voiture. Lieu: Oran."
	svc := NewTextExtractionService(fixedExtractor(text), discardLogger)
	doc := pendingDocument("doc-1", "user-1", domain.LanguageFrench, domain.IncidentVandalism, t.TempDir())

	result, err := svc.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Data.PerpetratorInfo != "Unknown" {
		t.Errorf("perpetrator must default to Unknown, got %q", result.Data.PerpetratorInfo)
	}
}

func TestTextExtraction_ExtractorFailure(t *testing.T) {
	boom := errors.New("corrupt xref table")
	extractor := &stubExtractor{
		extractFn: func(context.Context, string, string, string) (string, error) {
			return "", boom
		},
	}
	svc := NewTextExtractionService(extractor, discardLogger)
	doc := pendingDocument("doc-1", "user-1", domain.LanguageFrench, domain.IncidentTheft, t.TempDir())

	_, err := svc.ProcessDocument(context.Background(), doc)
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "corrupt xref table") {
		t.Errorf("cause must be preserved in the message, got %q", err.Error())
	}
}

func TestTextExtraction_EmptyTextRejected(t *testing.T) {
	svc := NewTextExtractionService(fixedExtractor("   \n  "), discardLogger)
	doc := pendingDocument("doc-1", "user-1", domain.LanguageFrench, domain.IncidentTheft, t.TempDir())

	if _, err := svc.ProcessDocument(context.Background(), doc); !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed for empty text, got %v", err)
	}
}
