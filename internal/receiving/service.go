package receiving

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"sagapi/m/domain"
)

// Service validates and persists receiving-TBS documents.
type Service struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Validate runs the ordered presence checks and returns the first failure.
// The messages are part of the external contract and must not change.
func (s *Service) Validate(req *CreateRequest) (*Order, *Error) {
	if len(req.Params.OrderData) == 0 {
		return nil, ValidationError("order_data is required")
	}

	order := &req.Params.OrderData[0]

	required := []struct {
		name  string
		value string
	}{
		{"partner_id", order.PartnerID},
		{"journal_id", order.JournalID},
		{"date_order", order.DateOrder},
		{"officers", order.Officers},
		{"driver_name", order.DriverName},
		{"vehicle_no", order.VehicleNo},
		{"destination_warehouse_id", order.DestinationWarehouseID},
		{"branch_id", order.BranchID},
	}
	for _, field := range required {
		if field.value != "" {
			continue
		}
		switch field.name {
		case "driver_name":
			return nil, ValidationError("Missing Driver Name. Please fill in this information.")
		case "partner_id":
			return nil, ValidationError("Sorry, we couldn't find a valid partner with the information provided.")
		default:
			return nil, ValidationError(fmt.Sprintf("Missing required field: %s", field.name))
		}
	}

	if len(order.OrderLine) == 0 {
		return nil, ValidationError("At least one order line is required")
	}
	for _, line := range order.OrderLine {
		if line.IncomingDate == "" || line.OutgoingDate == "" {
			return nil, ValidationError("Please provide the correct incoming date and outgoing date.")
		}
	}

	return order, nil
}

// Create inserts the header and its lines as one transaction and returns
// the assigned document number. rawPayload is the inbound body, stored
// verbatim on the header for audit replay.
func (s *Service) Create(order *Order, rawPayload []byte) (string, *Error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return "", InternalError(err)
	}
	defer tx.Rollback()

	now := s.now()
	documentNo, err := nextDocumentNo(tx, now)
	if err != nil {
		return "", InternalError(err)
	}
	timestamp := now.Format("2006-01-02 15:04:05")

	var headerID int64
	err = tx.QueryRowx(`INSERT INTO receiving_tbs
        (document_no, timestamp, partner_id, journal_id, date_order, officers,
         keterangan_description, driver_name, vehicle_no, destination_warehouse_id, branch_id, original_payload)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
		documentNo, timestamp, order.PartnerID, order.JournalID, order.DateOrder, order.Officers,
		order.Description, order.DriverName, order.VehicleNo, order.DestinationWarehouseID,
		order.BranchID, string(rawPayload)).Scan(&headerID)
	if err != nil {
		return "", InternalError(err)
	}

	for _, line := range order.OrderLine {
		if _, err := tx.Exec(`INSERT INTO order_line
            (receiving_tbs_id, product_code, qty_brutto, qty_tara, qty_netto, product_uom,
             sortation_percent, sortation_weight, qty_netto2, price_unit, product_qty, incoming_date, outgoing_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			headerID, line.ProductCode, line.QtyBrutto, line.QtyTara, line.QtyNetto, line.ProductUom,
			line.SortationPercent, line.SortationWeight, line.NettoAfterSortation(), line.PriceUnit,
			line.ProductQty, line.IncomingDate, line.OutgoingDate); err != nil {
			return "", InternalError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", InternalError(err)
	}
	return documentNo, nil
}

// nextDocumentNo derives TBS/YYYY/MM/DD/NNN where NNN restarts at 001 each
// calendar day. Count-then-insert: two same-day writers on separate
// connections can race to the same sequence, and the UNIQUE constraint on
// document_no then fails that commit with no retry. The single-connection
// pool serializes requests within one process.
func nextDocumentNo(tx *sqlx.Tx, now time.Time) (string, error) {
	var count int64
	if err := tx.Get(&count, `SELECT COUNT(*) FROM receiving_tbs WHERE DATE(timestamp) = DATE($1)`,
		now.Format("2006-01-02")); err != nil {
		return "", err
	}
	return fmt.Sprintf("TBS/%s/%03d", now.Format("2006/01/02"), count+1), nil
}

// CountDocuments reports the total number of receiving headers.
func (s *Service) CountDocuments() (int64, error) {
	var count int64
	err := s.db.Get(&count, `SELECT COUNT(*) FROM receiving_tbs`)
	return count, err
}

// TransactionSummary is one dashboard/list row: a header with aggregates
// over its lines.
type TransactionSummary struct {
	domain.ReceivingDocument
	LineCount  int64   `db:"line_count"`
	TotalNetto float64 `db:"total_netto"`
	TotalValue float64 `db:"total_value"`
}

// RecentTransactions returns the newest headers with their line counts.
func (s *Service) RecentTransactions(limit int) ([]TransactionSummary, error) {
	var rows []TransactionSummary
	err := s.db.Select(&rows, `SELECT r.*, COALESCE(COUNT(ol.id), 0) AS line_count,
            COALESCE(SUM(ol.qty_netto2), 0) AS total_netto,
            COALESCE(SUM(ol.qty_netto2 * ol.price_unit), 0) AS total_value
        FROM receiving_tbs r
        LEFT JOIN order_line ol ON r.id = ol.receiving_tbs_id
        GROUP BY r.id
        ORDER BY r.timestamp DESC
        LIMIT $1`, limit)
	return rows, err
}

// ListTransactions returns every header with line count, total netto after
// sortation and total value, newest first.
func (s *Service) ListTransactions() ([]TransactionSummary, error) {
	var rows []TransactionSummary
	err := s.db.Select(&rows, `SELECT r.*, COALESCE(COUNT(ol.id), 0) AS line_count,
            COALESCE(SUM(ol.qty_netto2), 0) AS total_netto,
            COALESCE(SUM(ol.qty_netto2 * ol.price_unit), 0) AS total_value
        FROM receiving_tbs r
        LEFT JOIN order_line ol ON r.id = ol.receiving_tbs_id
        GROUP BY r.id
        ORDER BY r.timestamp DESC`)
	return rows, err
}

// GetTransaction loads one header and its lines.
func (s *Service) GetTransaction(id int64) (*domain.ReceivingDocument, []domain.OrderLine, error) {
	var header domain.ReceivingDocument
	if err := s.db.Get(&header, `SELECT * FROM receiving_tbs WHERE id = $1`, id); err != nil {
		return nil, nil, err
	}
	var lines []domain.OrderLine
	if err := s.db.Select(&lines, `SELECT * FROM order_line WHERE receiving_tbs_id = $1 ORDER BY id`, id); err != nil {
		return nil, nil, err
	}
	return &header, lines, nil
}
