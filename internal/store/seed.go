package store

import "github.com/usm-dti/event-tracker-api/internal/models"

// SeedEvents returns the bundled default dataset, used whenever no persisted
// collection exists or the persisted payload fails to parse.
func SeedEvents() []models.Event {
	return []models.Event{
		{
			ID:                 "ev-seed-feria-software",
			Title:              "Feria de Software",
			Description:        "Presentación de los proyectos de título del Departamento de Informática, abierta a empresas y a toda la comunidad.",
			Campus:             "Campus San Joaquín",
			Category:           models.CategoryAcademico,
			Public:             models.AudienceComunidad,
			OrganizerUnit:      "Departamento de Informática",
			SpecificDepartment: "Área de Vinculación con el Medio",
			StartDate:          "2025-11-20",
			EndDate:            "2025-11-21",
			StartTime:          "10:00",
			EndTime:            "18:00",
			Status:             models.StatusProgramado,
		},
		{
			ID:            "ev-seed-semana-mechona",
			Title:         "Semana Mechona",
			Description:   "Actividades de bienvenida para las nuevas generaciones: stands, música en vivo y recorridos por el campus.",
			Campus:        "Casa Central Valparaíso",
			Category:      models.CategoryCultural,
			Public:        models.AudienceEstudiantes,
			OrganizerUnit: "Dirección de Asuntos Estudiantiles",
			StartDate:     "2025-03-10",
			EndDate:       "2025-03-14",
			StartTime:     "09:00",
			EndTime:       "19:00",
			Status:        models.StatusFinalizado,
		},
		{
			ID:                 "ev-seed-torneo-futbolito",
			Title:              "Torneo Interdepartamental de Futbolito",
			Description:        "Campeonato entre equipos de funcionarios y académicos. Inscripciones por unidad hasta completar los cupos.",
			Campus:             "Campus Vitacura",
			Category:           models.CategoryDeportivo,
			Public:             models.AudienceFuncionarios,
			OrganizerUnit:      "Dirección de Deportes",
			SpecificDepartment: "Coordinación de Recintos Deportivos",
			StartDate:          "2025-09-01",
			EndDate:            "2025-10-30",
			StartTime:          "18:00",
			EndTime:            "21:00",
			Status:             models.StatusEnCurso,
		},
		{
			ID:            "ev-seed-claustro",
			Title:         "Claustro Académico 2025",
			Description:   "Sesión plenaria anual del cuerpo académico para revisar el plan de desarrollo institucional.",
			Campus:        "Casa Central Valparaíso",
			Category:      models.CategoryAdministrativo,
			Public:        models.AudienceAcademicos,
			OrganizerUnit: "Rectoría",
			StartDate:     "2025-12-05",
			EndDate:       "2025-12-05",
			StartTime:     "09:30",
			EndTime:       "13:00",
			Status:        models.StatusProgramado,
		},
		{
			ID:                 "ev-seed-charla-ia",
			Title:              "Charla: Inteligencia Artificial en la Industria",
			Description:        "Charla abierta con egresados trabajando en aprendizaje de máquinas, seguida de una ronda de preguntas.",
			Campus:             "Sede Viña del Mar",
			Category:           models.CategoryAcademico,
			Public:             models.AudienceEstudiantes,
			OrganizerUnit:      "Departamento de Electrónica e Informática",
			SpecificDepartment: "Depto. de Informática",
			StartDate:          "2025-10-15",
			EndDate:            "2025-10-15",
			StartTime:          "15:00",
			EndTime:            "17:00",
			Status:             models.StatusProgramado,
		},
		{
			ID:            "ev-seed-concierto-primavera",
			Title:         "Concierto de Primavera",
			Description:   "Presentación de la orquesta y los talleres culturales en el patio central, entrada liberada.",
			Campus:        "Sede Concepción",
			Category:      models.CategoryCultural,
			Public:        models.AudienceComunidad,
			OrganizerUnit: "Dirección de Extensión Cultural",
			StartDate:     "2025-10-24",
			EndDate:       "2025-10-24",
			StartTime:     "19:00",
			EndTime:       "21:30",
			Status:        models.StatusProgramado,
		},
	}
}
