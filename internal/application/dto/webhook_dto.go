package dto

import (
	"bytes"
	"strconv"
)

// IdentityEvent evento firmado del proveedor de identidad. Solo se procesa
// user.created; el resto de tipos se reconoce y se ignora.
type IdentityEvent struct {
	Type string            `json:"type"`
	Data IdentityEventData `json:"data"`
}

// IdentityEventData perfil de la identidad recién creada más metadatos
// opcionales de enlace con una invitación.
type IdentityEventData struct {
	ID             string           `json:"id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	EmailAddresses []IdentityEmail  `json:"email_addresses"`
	UnsafeMetadata IdentityMetadata `json:"unsafe_metadata"`
}

// IdentityEmail dirección de email asociada a la identidad.
type IdentityEmail struct {
	EmailAddress string `json:"email_address"`
}

// IdentityMetadata metadatos que la página de sign-up adjunta a la identidad.
// InviteID llega como número o como string según el formulario de origen.
type IdentityMetadata struct {
	InviteID FlexibleID `json:"inviteId"`
}

// PrimaryEmail devuelve la primera dirección de email del perfil.
func (d IdentityEventData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// FlexibleID id numérico que acepta JSON number o string ("7" y 7 son válidos).
// Cero significa ausente.
type FlexibleID int64

// UnmarshalJSON tolera number, string numérico y null.
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		// Metadatos ajenos malformados no deben romper el webhook completo.
		*f = 0
		return nil
	}
	*f = FlexibleID(n)
	return nil
}

// Int64 devuelve el valor como int64.
func (f FlexibleID) Int64() int64 { return int64(f) }
