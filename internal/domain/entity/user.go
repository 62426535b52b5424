package entity

import "time"

// Roles válidos para User. RoleAdmin es el rol elevado: puede aprobar o
// rechazar cualquier traslado sin importar la bodega.
const (
	RoleAdmin    = "admin"
	RoleGerente  = "gerente"  // gerente de bodega
	RoleVendedor = "vendedor" // punto de venta
)

// User usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, gerente, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
