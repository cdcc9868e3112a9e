package entity

import "time"

// DefaultUnit unidad por defecto de un ítem del catálogo.
const DefaultUnit = "un"

// Item representa una pieza de lencería del catálogo (toalla, sábana, funda...).
// Nunca se borra físicamente: Active=false la oculta de resúmenes y selectores.
type Item struct {
	ID        int64
	Name      string
	Unit      string
	Active    bool
	CreatedAt time.Time
}
