package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Title", "Period"},
		Rows: []map[string]string{
			{"Title": "Seminar X", "Period": "T1"},
			{"Title": "Workshop Y", "Period": "T2"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Title,Period", lines[0])
	assert.Equal(t, "Seminar X,T1", lines[1])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	data := Dataset{
		Headers: []string{"Title", "Status"},
		Rows:    []map[string]string{{"Title": "Seminar X", "Status": "Pendente"}},
	}

	out, err := exporter.Render(data, "Relatório Anual")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestHTMLExporterRender(t *testing.T) {
	exporter := NewHTMLExporter()
	report := HTMLReport{
		Institution: "Universidade — Direcção Científica",
		Title:       "Relatório Anual de Actividades Científicas — 2026",
		Subtitle:    "Consolidação institucional (todas as faculdades)",
		GeneratedAt: time.Date(2026, 12, 20, 10, 0, 0, 0, time.UTC),
		ShowExec:    true,
		KPIs:        []KPI{{Label: "Total", Value: 2}, {Label: "Planificadas", Value: 1}},
		Rows: []HTMLRow{
			{
				Title:         "Jornadas de Saúde Pública",
				Category:      "Evento Científico",
				Period:        "T2",
				Faculty:       "Faculdade de Ciências de Saúde",
				StartDate:     "2026-05-10",
				EndDate:       "2026-05-12",
				Status:        "Planificada",
				EvidenceLinks: []string{"https://exemplo.edu/eventos/jsp-2026"},
			},
		},
	}

	out, err := exporter.Render(report)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Jornadas de Saúde Pública")
	assert.Contains(t, html, `href="https://exemplo.edu/eventos/jsp-2026"`)
	assert.Contains(t, html, "<th>Execução</th>")
	assert.Contains(t, html, "<b>2</b>")
	assert.NotContains(t, html, "src=") // self-contained, no external assets
}

func TestHTMLExporterEmptyRows(t *testing.T) {
	out, err := NewHTMLExporter().Render(HTMLReport{Title: "Relatório"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Sem registos")
}
