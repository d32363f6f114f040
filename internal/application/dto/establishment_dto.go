package dto

import (
	"time"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// EstablishmentFields campos editables de un establecimiento. Cada texto debe
// tener entre 2 y 255 caracteres (tras recorte de espacios); chairs entre 1 y 10000.
type EstablishmentFields struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
	Chairs  int    `json:"chairs"`
}

// CreateEstablishmentRequest alta de un establecimiento. Los presets arrancan
// con los valores por defecto; se editan después vía EditEstablishmentRequest.
type CreateEstablishmentRequest struct {
	EstablishmentFields
}

// EditEstablishmentRequest edición de un establecimiento existente (solo admin).
type EditEstablishmentRequest struct {
	EstablishmentFields
	Presets []string `json:"presets"`
}

// EstablishmentResponse proyección pública de un establecimiento.
type EstablishmentResponse struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"business_name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Postal       string    `json:"postal"`
	Country      string    `json:"country"`
	Chairs       int       `json:"chairs"`
	Premium      bool      `json:"premium"`
	Presets      []string  `json:"presets"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToEstablishmentResponse convierte la entidad a su proyección pública.
func ToEstablishmentResponse(e *entity.Establishment) *EstablishmentResponse {
	if e == nil {
		return nil
	}
	return &EstablishmentResponse{
		ID:           e.ID,
		BusinessName: e.BusinessName,
		Address:      e.Address,
		City:         e.City,
		State:        e.State,
		Postal:       e.Postal,
		Country:      e.Country,
		Chairs:       e.Chairs,
		Premium:      e.Premium,
		Presets:      e.Presets,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
