package entity

// Roles reconocidos en el token de acceso. ADMIN puede mutar catálogo y
// kardex; USER solo consulta.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)
