package consultation

import "testing"

func TestCategoryID_KnownCategories(t *testing.T) {
	expected := map[string]uint64{
		"citas":        1,
		"resultados":   2,
		"emergencias":  3,
		"informacion":  4,
		"facturacion":  5,
		"medicamentos": 6,
		"seguimiento":  7,
		"quejas":       8,
	}
	for name, id := range expected {
		if got := CategoryID(name); got != id {
			t.Errorf("CategoryID(%q) = %d, want %d", name, got, id)
		}
	}
}

func TestCategoryID_UnknownFallsBackToInformacion(t *testing.T) {
	for _, name := range []string{"", "urgente", "CITAS", "otro"} {
		if got := CategoryID(name); got != 4 {
			t.Errorf("CategoryID(%q) = %d, want 4", name, got)
		}
	}
}

func TestSeedCategoriesMatchMapping(t *testing.T) {
	for _, cat := range SeedCategories() {
		if got := CategoryID(cat.Name); got != cat.ID {
			t.Errorf("seed row %q has id %d but mapping gives %d", cat.Name, cat.ID, got)
		}
	}
}
