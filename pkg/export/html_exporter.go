package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// HTMLRow is one activity line in the generated report table.
type HTMLRow struct {
	Title         string
	Category      string
	Period        string
	Faculty       string
	StartDate     string
	EndDate       string
	ExecutionDate string
	Status        string
	EvidenceLinks []string
}

// KPI is an aggregate counter shown above the report table.
type KPI struct {
	Label string
	Value int
}

// HTMLReport carries everything the template needs.
type HTMLReport struct {
	Institution string
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	ShowExec    bool
	KPIs        []KPI
	Rows        []HTMLRow
}

// HTMLExporter renders a self-contained report document: inline styles,
// no external assets, suitable for offering as a download.
type HTMLExporter struct {
	tmpl *template.Template
}

// NewHTMLExporter parses the embedded report template.
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{tmpl: template.Must(template.New("report").Parse(reportTemplate))}
}

// Render produces the HTML document bytes.
func (e *HTMLExporter) Render(report HTMLReport) ([]byte, error) {
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}
	buf := &bytes.Buffer{}
	if err := e.tmpl.Execute(buf, report); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return buf.Bytes(), nil
}

const reportTemplate = `<!doctype html>
<html lang="pt-PT">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>{{.Title}}</title>
<style>
  body{ font-family: Arial, sans-serif; margin: 28px; color:#111; }
  .h1{ font-size: 18px; font-weight: 800; }
  .h2{ font-size: 14px; color:#333; margin-top:6px; }
  .meta{ margin-top: 10px; color:#444; }
  .kpis{ display:flex; gap:10px; margin: 14px 0 10px; flex-wrap:wrap; }
  .kpi{ border:1px solid #ddd; border-radius:10px; padding:10px 12px; min-width:140px; }
  .kpi small{ color:#666; display:block; }
  .kpi b{ font-size: 18px; }
  table{ width:100%; border-collapse:collapse; margin-top:10px; }
  th,td{ border-bottom:1px solid #e5e5e5; padding:10px; vertical-align:top; font-size: 13px; }
  th{ text-align:left; color:#333; background:#f7f7f7; }
  .muted{ color:#555; }
  .foot{ margin-top: 18px; color:#555; font-size: 12px; }
</style>
</head>
<body>
  <div class="h1">{{.Institution}}</div>
  <div class="h1">{{.Title}}</div>
  <div class="h2">{{.Subtitle}}</div>
  <div class="meta">Gerado automaticamente pelo SIGAC — {{.GeneratedAt.Format "2006-01-02 15:04"}}</div>

  <div class="kpis">
{{- range .KPIs}}
    <div class="kpi"><small>{{.Label}}</small><b>{{.Value}}</b></div>
{{- end}}
  </div>

  <table>
    <thead>
      <tr>
        <th>Actividade</th>
        <th>Início</th>
        <th>Fim</th>
{{- if .ShowExec}}
        <th>Execução</th>
{{- end}}
        <th>Estado</th>
        <th>Evidências</th>
      </tr>
    </thead>
    <tbody>
{{- range .Rows}}
      <tr>
        <td><b>{{.Title}}</b><br/><span class="muted">{{.Category}} • {{.Period}} • {{.Faculty}}</span></td>
        <td>{{if .StartDate}}{{.StartDate}}{{else}}&mdash;{{end}}</td>
        <td>{{if .EndDate}}{{.EndDate}}{{else}}&mdash;{{end}}</td>
{{- if $.ShowExec}}
        <td>{{if .ExecutionDate}}{{.ExecutionDate}}{{else}}&mdash;{{end}}</td>
{{- end}}
        <td>{{.Status}}</td>
        <td>{{if .EvidenceLinks}}{{range .EvidenceLinks}}<div><a href="{{.}}" target="_blank" rel="noopener">{{.}}</a></div>{{end}}{{else}}&mdash;{{end}}</td>
      </tr>
{{- else}}
      <tr><td colspan="{{if .ShowExec}}6{{else}}5{{end}}">Sem registos para os critérios seleccionados.</td></tr>
{{- end}}
    </tbody>
  </table>

  <div class="foot">Relatório de uso interno. Os totais reflectem o conteúdo do arquivo no momento da geração.</div>
</body>
</html>
`
