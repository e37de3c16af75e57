package entity

import (
	"fmt"
	"time"
)

// InventoryLog es el registro inmutable de un cambio de stock.
// Se crea únicamente como efecto de una mutación (simple, bulk o creación
// de producto con stock inicial) y nunca se actualiza. ChangeAmount se
// recalcula siempre como NewStock - PreviousStock, jamás lo aporta el caller.
type InventoryLog struct {
	ID            int64
	ProductID     int64
	TransactionID string // UUID compartido por todos los registros de una misma llamada/lote
	PreviousStock int64
	NewStock      int64
	ChangeAmount  int64
	UserSource    string
	CreatedAt     time.Time

	// Campos de presentación (JOIN con products en listados; vacíos al crear).
	ProductName      string
	ProductReference string
}

// FormattedChange devuelve el delta con signo explícito ("+5", "-3", "+0").
func (l *InventoryLog) FormattedChange() string {
	if l.ChangeAmount >= 0 {
		return fmt.Sprintf("+%d", l.ChangeAmount)
	}
	return fmt.Sprintf("%d", l.ChangeAmount)
}

// InventoryStatistics agrega los movimientos de un rango de fechas.
// NetChange == TotalStockIncreases - TotalStockDecreases, que a su vez
// es igual a la suma de todos los ChangeAmount del rango.
type InventoryStatistics struct {
	TotalLogs           int64
	TotalStockIncreases int64
	TotalStockDecreases int64 // valor absoluto de la suma de deltas negativos
	NetChange           int64
}
