package report

import (
	"fmt"
	"strings"

	"github.com/jhoicas/hrportal-api/internal/domain"
)

// Table tabla lógica expuesta por el ejecutor de reportes.
type Table struct {
	Name         string   // nombre físico
	PublicFields []string // campos proyectables, en orden de esquema
	Hidden       []string // nunca se proyectan ni se filtran
}

func (t Table) isHidden(field string) bool {
	for _, h := range t.Hidden {
		if strings.EqualFold(h, field) {
			return true
		}
	}
	return false
}

// field devuelve el nombre público canónico; ocultos, desconocidos y rutas de operador no existen.
func (t Table) field(name string) (string, bool) {
	for _, f := range t.PublicFields {
		if strings.EqualFold(f, name) {
			return f, true
		}
	}
	return "", false
}

// UsersTable única tabla soportada: el almacén de usuarios del portal.
var UsersTable = Table{
	Name:         "users",
	PublicFields: []string{"name", "email", "mobile", "createdAt", "updatedAt"},
	Hidden:       []string{"passwordHash", "passwordSalt", "__v"},
}

var tables = []Table{UsersTable}

// ResolveTable sin distinción de mayúsculas ni espacios; acepta singular o plural.
func ResolveTable(name string) (Table, error) {
	key := singular(strings.ToLower(strings.TrimSpace(name)))
	if key != "" {
		for _, t := range tables {
			if singular(t.Name) == key {
				return t, nil
			}
		}
	}
	return Table{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedTable, strings.TrimSpace(name))
}

func singular(s string) string {
	return strings.TrimSuffix(s, "s")
}

// ParseColumns separa la lista por comas y se queda con los campos públicos, sin duplicados
// y con el nombre canónico. Los vacíos, ocultos o desconocidos se ignoran ($where, name.first).
// Sin columnas válidas usa los campos públicos de la tabla.
func ParseColumns(t Table, list string) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range strings.Split(list, ",") {
		f, ok := t.field(strings.TrimSpace(c))
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return append([]string(nil), t.PublicFields...)
	}
	return out
}
