package service

import (
	"fmt"
	"html/template"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

// templateData is the view model every output template is rendered with.
type templateData struct {
	OriginalFilename string
	IncidentType     domain.IncidentType
	Date             string
	Location         string
	Description      string
	StolenItems      string
	PerpetratorInfo  string
}

const declarationFR = `<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>Déclaration de sinistre</title></head>
<body>
<h1>Déclaration de sinistre</h1>
<p>Type d'incident : {{.IncidentType}}</p>
<p>Date de l'incident : {{.Date}}</p>
<p>Lieu : {{.Location}}</p>
<h2>Description des faits</h2>
<p>{{.Description}}</p>
{{if .StolenItems}}<h2>Objets volés</h2><p>{{.StolenItems}}</p>{{end}}
<p>Document source : {{.OriginalFilename}}</p>
</body>
</html>`

const declarationAR = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head><meta charset="utf-8"><title>تصريح بالحادث</title></head>
<body>
<h1>تصريح بالحادث</h1>
<p>نوع الحادث: {{.IncidentType}}</p>
<p>تاريخ الحادث: {{.Date}}</p>
<p>المكان: {{.Location}}</p>
<h2>وصف الوقائع</h2>
<p>{{.Description}}</p>
{{if .StolenItems}}<h2>المسروقات</h2><p>{{.StolenItems}}</p>{{end}}
<p>الوثيقة الأصلية: {{.OriginalFilename}}</p>
</body>
</html>`

const complaintFR = `<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>Dépôt de plainte</title></head>
<body>
<h1>Dépôt de plainte</h1>
<p>Objet : plainte pour {{.IncidentType}}</p>
<p>Date des faits : {{.Date}}</p>
<p>Lieu des faits : {{.Location}}</p>
<h2>Exposé des faits</h2>
<p>{{.Description}}</p>
{{if .StolenItems}}<h2>Objets dérobés</h2><p>{{.StolenItems}}</p>{{end}}
<h2>Auteur présumé</h2>
<p>{{.PerpetratorInfo}}</p>
</body>
</html>`

const complaintAR = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head><meta charset="utf-8"><title>إيداع شكوى</title></head>
<body>
<h1>إيداع شكوى</h1>
<p>الموضوع: شكوى بخصوص {{.IncidentType}}</p>
<p>تاريخ الوقائع: {{.Date}}</p>
<p>مكان الوقائع: {{.Location}}</p>
<h2>عرض الوقائع</h2>
<p>{{.Description}}</p>
{{if .StolenItems}}<h2>المسروقات</h2><p>{{.StolenItems}}</p>{{end}}
<h2>الجاني المشتبه به</h2>
<p>{{.PerpetratorInfo}}</p>
</body>
</html>`

var outputTemplates = func() *template.Template {
	t := template.New("outputs")
	template.Must(t.New("declaration_fr").Parse(declarationFR))
	template.Must(t.New("declaration_ar").Parse(declarationAR))
	template.Must(t.New("depot_de_plainte_fr").Parse(complaintFR))
	template.Must(t.New("depot_de_plainte_ar").Parse(complaintAR))
	return t
}()

// templateName maps an artifact type and document language to a template.
// Unknown languages fall back to French, the default filing language.
func templateName(docType domain.GeneratedDocType, language string) string {
	if language != domain.LanguageArabic {
		language = domain.LanguageFrench
	}
	return fmt.Sprintf("%s_%s", docType, language)
}
