package consultation

// Fixed category set. IDs match the seeded consultation_categories rows and
// never change; the classifier is prompted with exactly these names.
const (
	CategoryCitas        = "citas"
	CategoryResultados   = "resultados"
	CategoryEmergencias  = "emergencias"
	CategoryInformacion  = "informacion"
	CategoryFacturacion  = "facturacion"
	CategoryMedicamentos = "medicamentos"
	CategorySeguimiento  = "seguimiento"
	CategoryQuejas       = "quejas"
)

const informacionCategoryID uint64 = 4

var categoryIDs = map[string]uint64{
	CategoryCitas:        1,
	CategoryResultados:   2,
	CategoryEmergencias:  3,
	CategoryInformacion:  4,
	CategoryFacturacion:  5,
	CategoryMedicamentos: 6,
	CategorySeguimiento:  7,
	CategoryQuejas:       8,
}

// CategoryID maps a classifier category name to its reference-row id.
// Anything the classifier returns outside the fixed set falls back to the
// general-information category instead of failing the pipeline.
func CategoryID(name string) uint64 {
	if id, ok := categoryIDs[name]; ok {
		return id
	}
	return informacionCategoryID
}

// SeedCategories is the static reference data inserted at startup.
func SeedCategories() []Category {
	return []Category{
		{ID: 1, Name: CategoryCitas, Description: "Solicitudes de citas, reagendamiento, cancelaciones", PriorityLevel: 2},
		{ID: 2, Name: CategoryResultados, Description: "Consultas sobre resultados de exámenes o laboratorios", PriorityLevel: 3},
		{ID: 3, Name: CategoryEmergencias, Description: "Situaciones médicas urgentes", PriorityLevel: 4},
		{ID: 4, Name: CategoryInformacion, Description: "Preguntas generales sobre servicios", PriorityLevel: 1},
		{ID: 5, Name: CategoryFacturacion, Description: "Temas de cobros, seguros, pagos", PriorityLevel: 2},
		{ID: 6, Name: CategoryMedicamentos, Description: "Preguntas sobre medicinas y efectos", PriorityLevel: 3},
		{ID: 7, Name: CategorySeguimiento, Description: "Seguimiento post-consulta", PriorityLevel: 2},
		{ID: 8, Name: CategoryQuejas, Description: "Quejas o sugerencias sobre el servicio", PriorityLevel: 2},
	}
}
