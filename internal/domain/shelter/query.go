package shelter

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query calcula la vista filtrada y ordenada del catálogo.
//
// Es una función pura: no muta la slice de entrada y puede llamarse
// concurrentemente consigo misma. Los filtros activos se combinan con AND;
// el match de raza es substring case-insensitive y MaxAge es "edad <= máximo".
// El orden es estable (perros con claves iguales conservan su orden relativo);
// los strings comparan con collation de locale, los números numéricamente.
// Un SortField fuera del set ordenable es violación de contrato del llamador:
// se devuelve el resultado filtrado sin ordenar.
func Query(dogs []Dog, f FilterSpec, sortSpec SortSpec) []Dog {
	out := make([]Dog, 0, len(dogs))
	for _, d := range dogs {
		if !matches(d, f) {
			continue
		}
		out = append(out, d)
	}

	// Collator propio por llamada: collate.Collator no es seguro para uso
	// concurrente y Query sí debe serlo.
	col := collate.New(language.English)

	var less func(a, b Dog) bool
	switch sortSpec.Field {
	case SortByName:
		less = func(a, b Dog) bool { return col.CompareString(a.Name, b.Name) < 0 }
	case SortByBreed:
		less = func(a, b Dog) bool { return col.CompareString(a.Breed, b.Breed) < 0 }
	case SortByAge:
		less = func(a, b Dog) bool { return a.Age < b.Age }
	default:
		return out
	}

	if sortSpec.Direction == SortDesc {
		asc := less
		less = func(a, b Dog) bool { return asc(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func matches(d Dog, f FilterSpec) bool {
	if f.Breed != "" && !strings.Contains(strings.ToLower(d.Breed), strings.ToLower(f.Breed)) {
		return false
	}
	if f.Size != "" && d.Size != f.Size {
		return false
	}
	if f.MaxAge > 0 && d.Age > f.MaxAge {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.Gender != "" && d.Gender != f.Gender {
		return false
	}
	return true
}
