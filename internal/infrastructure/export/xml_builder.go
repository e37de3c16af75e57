// Package export genera los archivos de descarga del historial de inventario
// (XML y PDF; CSV y JSON se serializan en la capa de aplicación).
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
)

// XMLBuilder serializa el historial como un documento XML plano, un elemento
// <log> por registro.
type XMLBuilder struct{}

// NewXMLBuilder construye el generador.
func NewXMLBuilder() *XMLBuilder { return &XMLBuilder{} }

// BuildLogsXML genera el documento y devuelve sus bytes.
func (b *XMLBuilder) BuildLogsXML(logs []*entity.InventoryLog, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("inventory_logs")
	root.CreateAttr("generated_at", generatedAt.Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(logs)))

	for _, l := range logs {
		el := root.CreateElement("log")
		el.CreateAttr("id", strconv.FormatInt(l.ID, 10))
		el.CreateElement("product_id").SetText(strconv.FormatInt(l.ProductID, 10))
		if l.ProductName != "" {
			el.CreateElement("product_name").SetText(l.ProductName)
		}
		if l.ProductReference != "" {
			el.CreateElement("product_reference").SetText(l.ProductReference)
		}
		el.CreateElement("transaction_id").SetText(l.TransactionID)
		el.CreateElement("previous_stock").SetText(strconv.FormatInt(l.PreviousStock, 10))
		el.CreateElement("new_stock").SetText(strconv.FormatInt(l.NewStock, 10))
		el.CreateElement("change_amount").SetText(strconv.FormatInt(l.ChangeAmount, 10))
		el.CreateElement("user_source").SetText(l.UserSource)
		el.CreateElement("created_at").SetText(l.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar XML: %w", err)
	}
	return out, nil
}
