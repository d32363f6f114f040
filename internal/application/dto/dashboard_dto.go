package dto

// DashboardResponse resumen de la pantalla principal: establecimiento, equipo
// y logs recientes, cargados en paralelo.
type DashboardResponse struct {
	Establishment *EstablishmentResponse `json:"establishment"`
	Team          []*UserResponse        `json:"team"`
	RecentLogs    []*LogResponse         `json:"recent_logs"`
}
