package entity

import (
	"sort"
	"time"
)

// UserLocal asignación de un local (por nombre) a un usuario.
type UserLocal struct {
	UserID     string
	LocalName  string
	AssignedAt time.Time
}

// SortAssignments ordena las asignaciones por fecha de asignación y, a igualdad, por nombre.
func SortAssignments(list []UserLocal) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].AssignedAt.Equal(list[j].AssignedAt) {
			return list[i].AssignedAt.Before(list[j].AssignedAt)
		}
		return list[i].LocalName < list[j].LocalName
	})
}

// PrimaryLocal devuelve el local principal: el asignado primero y, si hay empate,
// el de nombre menor. nil si no hay asignaciones.
func PrimaryLocal(list []UserLocal) *string {
	if len(list) == 0 {
		return nil
	}
	cp := make([]UserLocal, len(list))
	copy(cp, list)
	SortAssignments(cp)
	name := cp[0].LocalName
	return &name
}
