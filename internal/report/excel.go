package report

import (
	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"

	"sagapi/m/domain"
)

var logColumns = []string{
	"id", "timestamp", "endpoint", "agent_name", "site",
	"status", "response_code", "request_body", "response_body", "ip_address",
}

var tbsColumns = []string{
	"id", "document_no", "timestamp", "partner_id", "journal_id", "date_order",
	"officers", "keterangan_description", "driver_name", "vehicle_no",
	"destination_warehouse_id", "branch_id", "original_payload",
}

var lineColumns = []string{
	"id", "receiving_tbs_id", "product_code", "qty_brutto", "qty_tara",
	"qty_netto", "product_uom", "sortation_percent", "sortation_weight",
	"qty_netto2", "price_unit", "product_qty", "incoming_date", "outgoing_date",
}

// LogsWorkbook builds a single-sheet workbook holding the full audit trail,
// newest first.
func LogsWorkbook(db *sqlx.DB) (*excelize.File, error) {
	var logs []domain.APILogEntry
	if err := db.Select(&logs, `SELECT * FROM api_logs ORDER BY timestamp DESC`); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "API Logs"
	f.SetSheetName("Sheet1", sheet)

	if err := writeRow(f, sheet, 1, toCells(logColumns)); err != nil {
		return nil, err
	}
	for i, l := range logs {
		cells := []any{
			l.ID, l.Timestamp, l.Endpoint, deref(l.AgentName), deref(l.Site),
			l.Status, l.ResponseCode, deref(l.RequestBody), deref(l.ResponseBody), deref(l.IPAddress),
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// TransactionsWorkbook builds the two-sheet export: receiving headers on
// the first sheet, order lines on the second.
func TransactionsWorkbook(db *sqlx.DB) (*excelize.File, error) {
	var headers []domain.ReceivingDocument
	if err := db.Select(&headers, `SELECT * FROM receiving_tbs ORDER BY timestamp DESC`); err != nil {
		return nil, err
	}
	var lines []domain.OrderLine
	if err := db.Select(&lines, `SELECT * FROM order_line ORDER BY receiving_tbs_id`); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const headerSheet = "Receiving TBS"
	const lineSheet = "Order Lines"
	f.SetSheetName("Sheet1", headerSheet)
	if _, err := f.NewSheet(lineSheet); err != nil {
		return nil, err
	}

	if err := writeRow(f, headerSheet, 1, toCells(tbsColumns)); err != nil {
		return nil, err
	}
	for i, h := range headers {
		cells := []any{
			h.ID, h.DocumentNo, h.Timestamp, h.PartnerID, h.JournalID, h.DateOrder,
			h.Officers, h.Description, h.DriverName, h.VehicleNo,
			h.DestinationWarehouseID, h.BranchID, h.OriginalPayload,
		}
		if err := writeRow(f, headerSheet, i+2, cells); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, lineSheet, 1, toCells(lineColumns)); err != nil {
		return nil, err
	}
	for i, l := range lines {
		cells := []any{
			l.ID, l.ReceivingTbsID, l.ProductCode, l.QtyBrutto, l.QtyTara,
			l.QtyNetto, l.ProductUom, l.SortationPercent, l.SortationWeight,
			l.QtyNetto2, l.PriceUnit, l.ProductQty, l.IncomingDate, l.OutgoingDate,
		}
		if err := writeRow(f, lineSheet, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, value := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, value); err != nil {
			return err
		}
	}
	return nil
}

func toCells(columns []string) []any {
	cells := make([]any, len(columns))
	for i, c := range columns {
		cells[i] = c
	}
	return cells
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
