package models

// Fixed category taxonomy.
const (
	CategoryAcademico      = "Académico"
	CategoryCultural       = "Cultural"
	CategoryDeportivo      = "Deportivo"
	CategoryAdministrativo = "Administrativo"
)

// Audience values describe who an event targets.
const (
	AudienceEstudiantes  = "Estudiantes"
	AudienceAcademicos   = "Académicos"
	AudienceFuncionarios = "Funcionarios"
	AudienceComunidad    = "Toda la comunidad"
)

// Advisory status values; never derived from dates automatically.
const (
	StatusProgramado = "Programado"
	StatusEnCurso    = "En curso"
	StatusFinalizado = "Finalizado"
)

// FilterWildcard matches any category or audience.
const FilterWildcard = "Todos"

// Event is one calendar activity. JSON field names keep the camelCase of the
// persisted browser-era blob so stored collections round-trip unchanged.
// Calendar dates are ISO YYYY-MM-DD strings; ISO-8601 ordering makes plain
// string comparison sound, and format is validated at the CRUD boundary.
type Event struct {
	ID                 string `db:"id" json:"id"`
	Title              string `db:"title" json:"title"`
	Description        string `db:"description" json:"description"`
	Campus             string `db:"campus" json:"campus,omitempty"`
	Category           string `db:"category" json:"category"`
	Public             string `db:"public" json:"public"`
	OrganizerUnit      string `db:"organizer_unit" json:"organizerUnit"`
	SpecificDepartment string `db:"specific_department" json:"specificDepartment,omitempty"`
	StartDate          string `db:"start_date" json:"startDate"`
	EndDate            string `db:"end_date" json:"endDate"`
	StartTime          string `db:"start_time" json:"startTime,omitempty"`
	EndTime            string `db:"end_time" json:"endTime,omitempty"`
	Status             string `db:"status" json:"status,omitempty"`
	ImageURL           string `db:"image_url" json:"imageUrl,omitempty"`
}

// FilterCriteria is the value object driving the filter engine. Empty
// SelectedDate means no date constraint; FilterWildcard matches everything
// for the categorical fields.
type FilterCriteria struct {
	Query        string `json:"query" form:"query"`
	Category     string `json:"category" form:"category"`
	Public       string `json:"public" form:"public"`
	SelectedDate string `json:"selectedDate" form:"date"`
}

// EventOptions is the derived set of categorical filter choices.
type EventOptions struct {
	Categories []string `json:"categories"`
	Publics    []string `json:"publics"`
}

// CalendarDay summarizes one day of a month's event occupancy.
type CalendarDay struct {
	Date     string   `json:"date"`
	EventIDs []string `json:"eventIds"`
}
