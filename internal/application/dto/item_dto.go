package dto

import "time"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// ItemResponse salida de un ítem del catálogo.
type ItemResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// SeedResult resultado de la carga del catálogo por defecto.
type SeedResult struct {
	Created int `json:"created"`
}
