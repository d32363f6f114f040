package entity

import "time"

// Roles válidos para User. El rol queda vacío hasta que el usuario crea un
// establecimiento (admin) o es dado de alta por un manager/admin.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User representa un usuario del sistema (pertenece a lo sumo a un Establishment).
// AuthSubject es el id de sujeto del proveedor de identidad externo; la
// autenticación está delegada por completo y aquí nunca se guardan contraseñas.
type User struct {
	ID              int64
	FirstName       string
	LastName        string
	Email           string
	ESignature      string // imagen de firma (data-URL base64), vacía hasta que el usuario la registra
	Role            string // employee, manager, admin ("" = sin asignar)
	DefaultChair    string
	EstablishmentID *int64 // nil = sin establecimiento
	AuthSubject     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName devuelve "Nombre Apellido" para reportes y emails.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsElevated indica si el usuario puede administrar el equipo (manager o admin).
func (u *User) IsElevated() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
