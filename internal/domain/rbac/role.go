package rbac

import "sort"

// Role identifica un nivel de privilegio asignado a un usuario.
// Los valores leídos de la base de datos se convierten con ParseRole; un rol
// desconocido conserva su texto pero no tiene rango, por lo que nunca gestiona
// ni es gestionado.
type Role string

// Roles conocidos del sistema.
const (
	RoleNone                Role = "" // perfil sin rol asignado (NULL en BD)
	RoleAdmin               Role = "administrador"
	RoleWarehouseSupervisor Role = "Warehouse Supervisor"
	RoleWarehouseOperator   Role = "Warehouse Operator"
	RoleStoreSupervisor     Role = "Store Supervisor"
	RoleStoreOperator       Role = "Store Operator"
	RoleSKAOperator         Role = "SKA Operator"
)

// String devuelve el nombre del rol tal como se persiste.
func (r Role) String() string { return string(r) }

// ParseRole convierte un valor externo (fila de BD, JSON) en Role sin validarlo.
// La validez se consulta siempre contra un Registry.
func ParseRole(s string) Role { return Role(s) }

// defaultRanks tabla de jerarquía: menor rango = más privilegio.
var defaultRanks = map[Role]int{
	RoleAdmin:               1,
	RoleWarehouseSupervisor: 2,
	RoleWarehouseOperator:   3,
	RoleStoreSupervisor:     4,
	RoleStoreOperator:       5,
	RoleSKAOperator:         6,
}

// Registry orden total e inmutable de roles por rango.
type Registry struct {
	ranks   map[Role]int
	ordered []Role
}

// NewRegistry construye un registro a partir de una tabla rol → rango.
// La tabla se copia; modificarla después no altera el registro.
func NewRegistry(ranks map[Role]int) Registry {
	cp := make(map[Role]int, len(ranks))
	ordered := make([]Role, 0, len(ranks))
	for r, n := range ranks {
		if r == RoleNone {
			continue
		}
		cp[r] = n
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if cp[ordered[i]] != cp[ordered[j]] {
			return cp[ordered[i]] < cp[ordered[j]]
		}
		return ordered[i] < ordered[j]
	})
	return Registry{ranks: cp, ordered: ordered}
}

// DefaultRegistry devuelve el registro con la jerarquía fija de la aplicación.
func DefaultRegistry() Registry {
	return NewRegistry(defaultRanks)
}

// Rank devuelve el rango del rol y false si el rol no está registrado.
func (g Registry) Rank(r Role) (int, bool) {
	n, ok := g.ranks[r]
	return n, ok
}

// Known informa si el rol tiene rango.
func (g Registry) Known(r Role) bool {
	_, ok := g.ranks[r]
	return ok
}

// Roles lista los roles registrados de mayor a menor privilegio.
func (g Registry) Roles() []Role {
	out := make([]Role, len(g.ordered))
	copy(out, g.ordered)
	return out
}
