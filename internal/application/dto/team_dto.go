package dto

// CreateTeamMemberRequest alta de un miembro del equipo por un manager/admin.
// El establecimiento se hereda del caller; el rol solo puede ser employee o manager.
type CreateTeamMemberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Chair     string `json:"chair,omitempty"`
}

// EditTeamMemberRequest edición general de un miembro (manager/admin).
type EditTeamMemberRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Chair      string `json:"chair,omitempty"`
	ESignature string `json:"esignature,omitempty"`
}
