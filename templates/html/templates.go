// Package html holds the notification mail bodies. Templates are compiled once
// at startup so a malformed template fails fast rather than at send time.
package html

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names accepted by Render
const (
	TemplateProcessed    = "processed"
	TemplateIgnored      = "ignored"
	TemplateWeeklyReport = "weekly-report"
)

const processedBody = `<html>
<body style="font-family: Arial, sans-serif; color: #1e1e1e;">
  <h2>Votre signalement a été pris en compte</h2>
  <p>Bonjour,</p>
  <p>
    Le signalement que vous avez déposé le <b>{{.date}}</b> concernant
    <b>{{.locationType}} {{.location}}</b> sur la commune de
    <b>{{.commune}}</b> a été accepté par l'organisme en charge des adresses.
  </p>
  <p>
    La modification sera visible dans la Base Adresse Nationale lors de la
    prochaine publication de la commune.
  </p>
  <p>Merci pour votre contribution.</p>
  <p>L'équipe adresse</p>
</body>
</html>`

const ignoredBody = `<html>
<body style="font-family: Arial, sans-serif; color: #1e1e1e;">
  <h2>Votre signalement n'a pas été retenu</h2>
  <p>Bonjour,</p>
  <p>
    Le signalement que vous avez déposé le <b>{{.date}}</b> concernant
    <b>{{.locationType}} {{.location}}</b> sur la commune de
    <b>{{.commune}}</b> n'a pas été retenu par l'organisme en charge des
    adresses.
  </p>
  {{if .rejectionReason}}
  <p>Motif&nbsp;: <i>{{.rejectionReason}}</i></p>
  {{end}}
  <p>Merci pour votre contribution.</p>
  <p>L'équipe adresse</p>
</body>
</html>`

const weeklyReportBody = `<html>
<body style="font-family: Arial, sans-serif; color: #1e1e1e;">
  <h2>Signalements en attente</h2>
  <p>Bonjour,</p>
  <p>Signalements en attente de traitement au {{.date}}&nbsp;:</p>
  <ul>
    {{range .communes}}
    <li><b>{{.Nom}}</b> ({{.CodeCommune}})&nbsp;: {{.Count}}</li>
    {{end}}
  </ul>
  <p>Total&nbsp;: <b>{{.total}}</b></p>
</body>
</html>`

var templates = template.Must(template.New(TemplateProcessed).Parse(processedBody))

func init() {
	template.Must(templates.New(TemplateIgnored).Parse(ignoredBody))
	template.Must(templates.New(TemplateWeeklyReport).Parse(weeklyReportBody))
}

// Render executes the named template with the given context
func Render(name string, context map[string]interface{}) (string, error) {
	t := templates.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("unknown mail template %q", name)
	}
	buf := bytes.Buffer{}
	if err := t.Execute(&buf, context); err != nil {
		return "", err
	}
	return buf.String(), nil
}
