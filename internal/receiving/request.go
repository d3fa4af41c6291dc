package receiving

// CreateRequest is the inbound shape of POST /api/receiving-tbs/create.
// Unknown extra fields are accepted; the raw body is stored alongside the
// header verbatim, so nothing a caller sends is lost.
type CreateRequest struct {
	Token  string `json:"token"`
	Params Params `json:"params"`
}

type Params struct {
	OrderData []Order `json:"order_data"`
}

// Order carries one receiving header plus its lines. Only order_data[0] is
// consumed; additional orders in one request are dropped.
type Order struct {
	PartnerID              string `json:"partner_id"`
	JournalID              string `json:"journal_id"`
	DateOrder              string `json:"date_order"`
	Officers               string `json:"officers"`
	Description            string `json:"keterangan_description"`
	DriverName             string `json:"driver_name"`
	VehicleNo              string `json:"vehicle_no"`
	DestinationWarehouseID string `json:"destination_warehouse_id"`
	BranchID               string `json:"branch_id"`
	OrderLine              []Line `json:"order_line"`
}

type Line struct {
	ProductCode      string   `json:"product_code"`
	QtyBrutto        float64  `json:"qty_brutto"`
	QtyTara          float64  `json:"qty_tara"`
	QtyNetto         float64  `json:"qty_netto"`
	ProductUom       string   `json:"product_uom"`
	SortationPercent float64  `json:"sortation_percent"`
	SortationWeight  float64  `json:"sortation_weight"`
	QtyNetto2        *float64 `json:"qty_netto2"`
	PriceUnit        float64  `json:"price_unit"`
	ProductQty       int64    `json:"product_qty"`
	IncomingDate     string   `json:"incoming_date"`
	OutgoingDate     string   `json:"outgoing_date"`
}

// NettoAfterSortation is the payable weight: qty_netto2 when the caller
// supplied it, otherwise qty_netto.
func (l Line) NettoAfterSortation() float64 {
	if l.QtyNetto2 != nil {
		return *l.QtyNetto2
	}
	return l.QtyNetto
}
