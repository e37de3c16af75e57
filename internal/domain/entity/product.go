package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto sincronizado desde los CMS.
// CurrentStock es la única fuente de verdad del stock disponible y solo
// se modifica a través del motor de mutaciones (nunca por update directo).
type Product struct {
	ID           int64
	Name         string
	Reference    string // único global, generado si no se envía en la creación
	CurrentStock int64
	Price        decimal.Decimal // precio de venta informativo para el panel admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
