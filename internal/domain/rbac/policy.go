package rbac

// Policy motor de decisión de autorización sobre un Registry.
// Todas sus operaciones son funciones puras y totales: ante un rol sin rango
// devuelven la respuesta más restrictiva.
type Policy struct {
	registry Registry
}

// NewPolicy construye la política sobre el registro indicado.
func NewPolicy(registry Registry) Policy {
	return Policy{registry: registry}
}

// DefaultPolicy política con la jerarquía fija de la aplicación.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultRegistry())
}

// Registry devuelve el registro de roles de la política.
func (p Policy) Registry() Registry { return p.registry }

// CanManageRole informa si un actor con rol actor puede gestionar a un usuario con rol target.
//
// El privilegio fluye hacia abajo o hacia los lados (rango actor <= rango target),
// salvo para Store Supervisor, que solo gestiona rangos estrictamente inferiores.
// actorLocal y targetLocal no intervienen aquí: el alcance por local se evalúa
// aparte con CanAssignLocal.
func (p Policy) CanManageRole(actor, target Role, actorLocal, targetLocal *string) bool {
	actorRank, ok := p.registry.Rank(actor)
	if !ok {
		return false
	}
	targetRank, ok := p.registry.Rank(target)
	if !ok {
		return false
	}
	hierarchyOK := actorRank <= targetRank
	if actor == RoleStoreSupervisor {
		return hierarchyOK && targetRank > actorRank
	}
	return hierarchyOK
}

// CanAssignLocal informa si el actor puede operar sobre locales de un usuario cuyo
// local principal es targetLocal.
//   - administrador y Warehouse Supervisor: alcance global.
//   - Store Supervisor: solo si ambos locales existen y coinciden.
//   - resto: nunca.
func (p Policy) CanAssignLocal(actor Role, actorLocal, targetLocal *string) bool {
	if p.HasGlobalScope(actor) {
		return true
	}
	if actor == RoleStoreSupervisor {
		return actorLocal != nil && targetLocal != nil && *actorLocal == *targetLocal
	}
	return false
}

// HasGlobalScope informa si el rol opera sobre todos los locales sin restricción.
func (p Policy) HasGlobalScope(actor Role) bool {
	return actor == RoleAdmin || actor == RoleWarehouseSupervisor
}

// AssignableRoles devuelve los roles que el actor puede otorgar, de mayor a menor privilegio.
// Store Supervisor solo otorga rangos estrictamente inferiores al suyo; el resto, su
// propio rango y los inferiores.
func (p Policy) AssignableRoles(actor Role) []Role {
	actorRank, ok := p.registry.Rank(actor)
	if !ok {
		return []Role{}
	}
	out := make([]Role, 0, len(p.registry.ordered))
	for _, r := range p.registry.ordered {
		rank := p.registry.ranks[r]
		if actor == RoleStoreSupervisor {
			if rank > actorRank {
				out = append(out, r)
			}
			continue
		}
		if rank >= actorRank {
			out = append(out, r)
		}
	}
	return out
}

// CanAssignRole informa si newRole está entre los roles que el actor puede otorgar.
func (p Policy) CanAssignRole(actor, newRole Role) bool {
	for _, r := range p.AssignableRoles(actor) {
		if r == newRole {
			return true
		}
	}
	return false
}

var defaultPolicy = DefaultPolicy()

// CanManageRole evalúa Policy.CanManageRole con la jerarquía por defecto.
func CanManageRole(actor, target Role, actorLocal, targetLocal *string) bool {
	return defaultPolicy.CanManageRole(actor, target, actorLocal, targetLocal)
}

// CanAssignLocal evalúa Policy.CanAssignLocal con la jerarquía por defecto.
func CanAssignLocal(actor Role, actorLocal, targetLocal *string) bool {
	return defaultPolicy.CanAssignLocal(actor, actorLocal, targetLocal)
}

// AssignableRoles evalúa Policy.AssignableRoles con la jerarquía por defecto.
func AssignableRoles(actor Role) []Role {
	return defaultPolicy.AssignableRoles(actor)
}
