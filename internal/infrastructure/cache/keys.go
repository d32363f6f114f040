package cache

import "fmt"

// Esquema de claves (prefijo de entidad + ":" + id):
//
//	users:<authSubject>        usuario por id del proveedor de identidad
//	users:<userID>             usuario por id numérico
//	team:<establishmentID>     lista de usuarios del establecimiento
//	logs:<establishmentID>     lista de logs recientes (máx. MaxCachedLogs)
//	establishments:<id>        establecimiento
//
// Los valores son snapshots JSON de filas del store; el store es siempre la
// fuente de verdad y toda escritura de caché es best-effort.

// MaxCachedLogs tope de entradas en logs:<establishmentID>.
const MaxCachedLogs = 10

// UserKey clave por auth subject del proveedor de identidad.
func UserKey(authSubject string) string {
	return "users:" + authSubject
}

// UserIDKey clave por id numérico de usuario.
func UserIDKey(id int64) string {
	return fmt.Sprintf("users:%d", id)
}

// TeamKey clave de la lista de equipo de un establecimiento.
func TeamKey(establishmentID int64) string {
	return fmt.Sprintf("team:%d", establishmentID)
}

// LogsKey clave de la lista de logs recientes de un establecimiento.
func LogsKey(establishmentID int64) string {
	return fmt.Sprintf("logs:%d", establishmentID)
}

// EstablishmentKey clave de un establecimiento.
func EstablishmentKey(id int64) string {
	return fmt.Sprintf("establishments:%d", id)
}
