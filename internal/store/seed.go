package store

import (
	"time"

	"github.com/ucm-dct/sigac-api/internal/models"
)

// seedFaculties is the fixed demo roster. IDs are referenced by
// activities and never change for the lifetime of a document.
var seedFaculties = []models.Faculty{
	{ID: "F01", Name: "Faculdade de Ciências Económicas e Empresariais"},
	{ID: "F02", Name: "Faculdade de Engenharia e Tecnologias"},
	{ID: "F03", Name: "Faculdade de Ciências de Saúde"},
	{ID: "F04", Name: "Faculdade de Ciências Agrárias"},
	{ID: "F05", Name: "Faculdade de Educação e Humanidades"},
	{ID: "F06", Name: "Faculdade de Direito e Governação"},
	{ID: "F07", Name: "Faculdade de Ciências Naturais"},
	{ID: "F08", Name: "Faculdade de Letras e Comunicação"},
	{ID: "F09", Name: "Faculdade de Arquitectura e Planeamento"},
}

func (s *Store) seedDocument() *models.Document {
	now := s.clock()
	faculties := make([]models.Faculty, len(seedFaculties))
	copy(faculties, seedFaculties)

	sample := func(facultyID string, category models.Category, period models.Period, title, description, start, end, evidence string, at time.Time) models.Activity {
		return models.Activity{
			ID:            s.newID(),
			Year:          2026,
			FacultyID:     facultyID,
			Category:      category,
			Period:        period,
			Title:         title,
			Description:   description,
			StartDate:     start,
			EndDate:       end,
			EvidenceLinks: []string{evidence},
			Status:        s.edition.NewStatus(""),
			CreatedAt:     at,
			UpdatedAt:     at,
		}
	}

	return &models.Document{
		Faculties: faculties,
		Activities: []models.Activity{
			sample("F01", models.CategoryScientificPublication, models.PeriodT1,
				"Artigo em revista indexada — Economia Regional",
				"Publicação sobre determinantes de produtividade e cadeias logísticas.",
				"2026-02-01", "2026-03-30",
				"https://exemplo.edu/publicacao/123", now),
			sample("F03", models.CategoryScientificEvent, models.PeriodT2,
				"Jornadas de Saúde Pública (edição anual)",
				"Sessões temáticas, posters e comunicações orais.",
				"2026-05-10", "2026-05-12",
				"https://exemplo.edu/eventos/jsp-2026", now),
		},
	}
}
