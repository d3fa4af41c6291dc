package domain

// ReceivingDocument is the header row of one receiving-TBS transaction.
// OriginalPayload holds the inbound request body verbatim for audit replay.
type ReceivingDocument struct {
	ID                     int64  `db:"id" json:"id"`
	DocumentNo             string `db:"document_no" json:"document_no"`
	Timestamp              string `db:"timestamp" json:"timestamp"`
	PartnerID              string `db:"partner_id" json:"partner_id"`
	JournalID              string `db:"journal_id" json:"journal_id"`
	DateOrder              string `db:"date_order" json:"date_order"`
	Officers               string `db:"officers" json:"officers"`
	Description            string `db:"keterangan_description" json:"keterangan_description"`
	DriverName             string `db:"driver_name" json:"driver_name"`
	VehicleNo              string `db:"vehicle_no" json:"vehicle_no"`
	DestinationWarehouseID string `db:"destination_warehouse_id" json:"destination_warehouse_id"`
	BranchID               string `db:"branch_id" json:"branch_id"`
	OriginalPayload        string `db:"original_payload" json:"original_payload"`
}

// OrderLine belongs to exactly one ReceivingDocument. Weights follow the
// weighing workflow: brutto (gross), tara (vehicle), netto (net), and
// netto2 (net after the sortation quality deduction).
type OrderLine struct {
	ID               int64   `db:"id" json:"id"`
	ReceivingTbsID   int64   `db:"receiving_tbs_id" json:"receiving_tbs_id"`
	ProductCode      string  `db:"product_code" json:"product_code"`
	QtyBrutto        float64 `db:"qty_brutto" json:"qty_brutto"`
	QtyTara          float64 `db:"qty_tara" json:"qty_tara"`
	QtyNetto         float64 `db:"qty_netto" json:"qty_netto"`
	ProductUom       string  `db:"product_uom" json:"product_uom"`
	SortationPercent float64 `db:"sortation_percent" json:"sortation_percent"`
	SortationWeight  float64 `db:"sortation_weight" json:"sortation_weight"`
	QtyNetto2        float64 `db:"qty_netto2" json:"qty_netto2"`
	PriceUnit        float64 `db:"price_unit" json:"price_unit"`
	ProductQty       int64   `db:"product_qty" json:"product_qty"`
	IncomingDate     string  `db:"incoming_date" json:"incoming_date"`
	OutgoingDate     string  `db:"outgoing_date" json:"outgoing_date"`
}
