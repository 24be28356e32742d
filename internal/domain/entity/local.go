package entity

import "time"

// Tipos de local.
const (
	LocalTypeStore        = "tienda"
	LocalTypeWarehouse    = "bodega"
	LocalTypeDistribution = "centro_distribucion"
)

// LocalTypes tipos válidos para Local.Type.
var LocalTypes = []string{LocalTypeStore, LocalTypeWarehouse, LocalTypeDistribution}

// IsValidLocalType informa si t es un tipo de local conocido.
func IsValidLocalType(t string) bool {
	for _, v := range LocalTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Local tienda o bodega física. Name es único y es la clave con la que lo
// referencian las asignaciones y los datos de recepción.
type Local struct {
	Name      string
	Type      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
