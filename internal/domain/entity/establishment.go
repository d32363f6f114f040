package entity

import "time"

// DefaultPresets etiquetas de limpieza iniciales de todo establecimiento nuevo.
var DefaultPresets = []string{"After Client", "End of Day", "Weekly"}

// Establishment representa un negocio/tenant del sistema (spa o salón).
// Es la unidad de aislamiento de datos: usuarios y logs siempre cuelgan de uno.
type Establishment struct {
	ID                   int64
	BusinessName         string
	Address              string
	City                 string
	State                string
	Postal               string
	Country              string
	Chairs               int // cantidad de sillas del local (>= 1)
	Premium              bool
	StripeSubscriptionID string
	Presets              []string // etiquetas libres asignables a un log
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
