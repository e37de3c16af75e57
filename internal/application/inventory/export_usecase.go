package inventory

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
)

// ExportFile archivo generado listo para servir como descarga.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportUseCase genera descargas del historial en CSV, JSON, XML o PDF.
// Aplica los mismos filtros del listado y acota las filas a ExportLimit.
type ExportUseCase struct {
	logRepo repository.InventoryLogRepository
	pdfGen  LogPDFGenerator
	xmlGen  LogXMLBuilder
	limit   int
}

// NewExportUseCase construye el exportador.
func NewExportUseCase(logRepo repository.InventoryLogRepository, pdfGen LogPDFGenerator, xmlGen LogXMLBuilder, limit int) *ExportUseCase {
	if limit < 1 {
		limit = 1000
	}
	return &ExportUseCase{logRepo: logRepo, pdfGen: pdfGen, xmlGen: xmlGen, limit: limit}
}

const exportTimeLayout = "2006-01-02 15:04:05"

// Export resuelve el filtro, trae hasta limit filas (de la más reciente a la
// más antigua) y serializa en el formato pedido. CSV es el formato por
// defecto.
func (uc *ExportUseCase) Export(q dto.ExportQuery) (*ExportFile, error) {
	filter := buildLogFilter(q.ProductID, q.DateFrom, q.DateTo, "")
	logs, err := uc.logRepo.ListFiltered(filter, uc.limit, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stamp := now.Format("2006-01-02_150405")

	switch q.Format {
	case "json":
		return uc.exportJSON(logs, stamp)
	case "xml":
		content, err := uc.xmlGen.BuildLogsXML(logs, now)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("inventory_logs_%s.xml", stamp),
			ContentType: "application/xml",
			Content:     content,
		}, nil
	case "pdf":
		content, err := uc.pdfGen.GenerateLogsPDF(logs, now)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("inventory_logs_%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return uc.exportCSV(logs, stamp)
	}
}

func (uc *ExportUseCase) exportCSV(logs []*entity.InventoryLog, stamp string) (*ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"ID", "Product ID", "Product Name", "Previous Stock", "New Stock", "Change Amount", "User Source", "Date"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, l := range logs {
		row := []string{
			strconv.FormatInt(l.ID, 10),
			strconv.FormatInt(l.ProductID, 10),
			l.ProductName,
			strconv.FormatInt(l.PreviousStock, 10),
			strconv.FormatInt(l.NewStock, 10),
			strconv.FormatInt(l.ChangeAmount, 10),
			l.UserSource,
			l.CreatedAt.Format(exportTimeLayout),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("inventory_logs_%s.csv", stamp),
		ContentType: "text/csv",
		Content:     buf.Bytes(),
	}, nil
}

func (uc *ExportUseCase) exportJSON(logs []*entity.InventoryLog, stamp string) (*ExportFile, error) {
	items := make([]dto.InventoryLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.LogFromEntity(l))
	}
	content, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("inventory_logs_%s.json", stamp),
		ContentType: "application/json",
		Content:     content,
	}, nil
}
