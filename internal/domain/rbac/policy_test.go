package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
)

func ptr(s string) *string { return &s }

var allRoles = []rbac.Role{
	rbac.RoleAdmin,
	rbac.RoleWarehouseSupervisor,
	rbac.RoleWarehouseOperator,
	rbac.RoleStoreSupervisor,
	rbac.RoleStoreOperator,
	rbac.RoleSKAOperator,
}

func TestRegistry_RangosFijos(t *testing.T) {
	reg := rbac.DefaultRegistry()
	for i, r := range allRoles {
		rank, ok := reg.Rank(r)
		require.True(t, ok, "rol %q debe estar registrado", r)
		assert.Equal(t, i+1, rank)
	}
	assert.Equal(t, allRoles, reg.Roles(), "Roles debe venir ordenado por rango")

	_, ok := reg.Rank(rbac.RoleNone)
	assert.False(t, ok, "rol vacío no tiene rango")
	_, ok = reg.Rank(rbac.ParseRole("superuser"))
	assert.False(t, ok)
}

func TestRegistry_EsInmutable(t *testing.T) {
	table := map[rbac.Role]int{"a": 1, "b": 2}
	reg := rbac.NewRegistry(table)
	table["c"] = 3
	assert.False(t, reg.Known("c"), "mutar la tabla original no afecta al registro")

	roles := reg.Roles()
	roles[0] = "zzz"
	assert.Equal(t, []rbac.Role{"a", "b"}, reg.Roles())
}

func TestCanManageRole_RolDesconocidoNuncaGestiona(t *testing.T) {
	unknowns := []rbac.Role{rbac.RoleNone, "superuser", "ADMINISTRADOR"}
	for _, u := range unknowns {
		for _, r := range allRoles {
			assert.False(t, rbac.CanManageRole(u, r, nil, nil), "%q no debe gestionar %q", u, r)
			assert.False(t, rbac.CanManageRole(r, u, nil, nil), "%q no debe poder ser gestionado", u)
		}
	}
}

func TestCanManageRole_Jerarquia(t *testing.T) {
	reg := rbac.DefaultRegistry()
	for _, a := range allRoles {
		for _, b := range allRoles {
			ra, _ := reg.Rank(a)
			rb, _ := reg.Rank(b)
			got := rbac.CanManageRole(a, b, ptr("X"), ptr("Y"))
			switch {
			case ra > rb:
				assert.False(t, got, "%q no debe gestionar a %q (privilegio hacia arriba)", a, b)
			case a == rbac.RoleStoreSupervisor:
				assert.Equal(t, rb > ra, got, "Store Supervisor solo gestiona rangos inferiores (%q)", b)
			default:
				assert.True(t, got, "%q debe gestionar a %q", a, b)
			}
		}
	}
}

func TestCanManageRole_StoreSupervisorNoGestionaPares(t *testing.T) {
	assert.False(t, rbac.CanManageRole(rbac.RoleStoreSupervisor, rbac.RoleStoreSupervisor, nil, nil))
	// El resto de roles sí gestiona a sus pares.
	assert.True(t, rbac.CanManageRole(rbac.RoleWarehouseOperator, rbac.RoleWarehouseOperator, nil, nil))
	assert.True(t, rbac.CanManageRole(rbac.RoleAdmin, rbac.RoleAdmin, nil, nil))
}

func TestCanManageRole_IgnoraLocales(t *testing.T) {
	a := rbac.CanManageRole(rbac.RoleStoreSupervisor, rbac.RoleStoreOperator, ptr("Mall A"), ptr("Mall B"))
	b := rbac.CanManageRole(rbac.RoleStoreSupervisor, rbac.RoleStoreOperator, nil, nil)
	assert.True(t, a)
	assert.Equal(t, a, b)
}

func TestAssignableRoles(t *testing.T) {
	tests := []struct {
		actor rbac.Role
		want  []rbac.Role
	}{
		{rbac.RoleAdmin, allRoles},
		{rbac.RoleWarehouseSupervisor, allRoles[1:]},
		{rbac.RoleWarehouseOperator, []rbac.Role{
			rbac.RoleWarehouseOperator, rbac.RoleStoreSupervisor, rbac.RoleStoreOperator, rbac.RoleSKAOperator,
		}},
		{rbac.RoleStoreSupervisor, []rbac.Role{rbac.RoleStoreOperator, rbac.RoleSKAOperator}},
		{rbac.RoleSKAOperator, []rbac.Role{rbac.RoleSKAOperator}},
		{rbac.RoleNone, []rbac.Role{}},
		{"desconocido", []rbac.Role{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.actor), func(t *testing.T) {
			assert.Equal(t, tt.want, rbac.AssignableRoles(tt.actor))
		})
	}
}

func TestAssignableRoles_ConsistenteConCanManageRole(t *testing.T) {
	for _, a := range allRoles {
		assignable := map[rbac.Role]bool{}
		for _, r := range rbac.AssignableRoles(a) {
			assignable[r] = true
		}
		for _, b := range allRoles {
			assert.Equal(t, rbac.CanManageRole(a, b, nil, nil), assignable[b], "actor=%q target=%q", a, b)
		}
	}
}

func TestCanAssignRole(t *testing.T) {
	p := rbac.DefaultPolicy()
	assert.True(t, p.CanAssignRole(rbac.RoleWarehouseSupervisor, rbac.RoleWarehouseOperator))
	assert.False(t, p.CanAssignRole(rbac.RoleWarehouseSupervisor, rbac.RoleAdmin))
	assert.False(t, p.CanAssignRole(rbac.RoleStoreSupervisor, rbac.RoleStoreSupervisor))
	assert.False(t, p.CanAssignRole(rbac.RoleAdmin, "superuser"))
}

func TestCanAssignLocal(t *testing.T) {
	tests := []struct {
		name        string
		actor       rbac.Role
		actorLocal  *string
		targetLocal *string
		want        bool
	}{
		{"admin sin locales", rbac.RoleAdmin, nil, nil, true},
		{"admin otro local", rbac.RoleAdmin, ptr("StoreA"), ptr("StoreB"), true},
		{"warehouse supervisor global", rbac.RoleWarehouseSupervisor, nil, ptr("StoreB"), true},
		{"store supervisor mismo local", rbac.RoleStoreSupervisor, ptr("StoreA"), ptr("StoreA"), true},
		{"store supervisor otro local", rbac.RoleStoreSupervisor, ptr("StoreA"), ptr("StoreB"), false},
		{"store supervisor sin local", rbac.RoleStoreSupervisor, nil, ptr("StoreA"), false},
		{"store supervisor target sin local", rbac.RoleStoreSupervisor, ptr("StoreA"), nil, false},
		{"warehouse operator", rbac.RoleWarehouseOperator, ptr("StoreA"), ptr("StoreA"), false},
		{"store operator", rbac.RoleStoreOperator, ptr("StoreA"), ptr("StoreA"), false},
		{"rol desconocido", "superuser", ptr("StoreA"), ptr("StoreA"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rbac.CanAssignLocal(tt.actor, tt.actorLocal, tt.targetLocal))
		})
	}
}

func TestDecisiones_SonIdempotentes(t *testing.T) {
	for _, a := range allRoles {
		assert.Equal(t, rbac.AssignableRoles(a), rbac.AssignableRoles(a))
		for _, b := range allRoles {
			assert.Equal(t, rbac.CanManageRole(a, b, nil, nil), rbac.CanManageRole(a, b, nil, nil))
			assert.Equal(t,
				rbac.CanAssignLocal(a, ptr("L1"), ptr("L1")),
				rbac.CanAssignLocal(a, ptr("L1"), ptr("L1")))
		}
	}
}

func TestPolicy_RegistroInyectado(t *testing.T) {
	p := rbac.NewPolicy(rbac.NewRegistry(map[rbac.Role]int{"jefe": 1, "auxiliar": 2}))
	assert.True(t, p.CanManageRole("jefe", "auxiliar", nil, nil))
	assert.False(t, p.CanManageRole("auxiliar", "jefe", nil, nil))
	assert.False(t, p.CanManageRole(rbac.RoleAdmin, "auxiliar", nil, nil), "administrador no existe en este registro")
	assert.Equal(t, []rbac.Role{"jefe", "auxiliar"}, p.AssignableRoles("jefe"))
}

func TestHasGlobalScope(t *testing.T) {
	p := rbac.DefaultPolicy()
	assert.True(t, p.HasGlobalScope(rbac.RoleAdmin))
	assert.True(t, p.HasGlobalScope(rbac.RoleWarehouseSupervisor))
	assert.False(t, p.HasGlobalScope(rbac.RoleWarehouseOperator))
	assert.False(t, p.HasGlobalScope(rbac.RoleStoreSupervisor))
	assert.False(t, p.HasGlobalScope(rbac.RoleNone))
}
