package domain

// APILogEntry is an immutable audit record, one per inbound API call.
type APILogEntry struct {
	ID           int64   `db:"id" json:"id"`
	Timestamp    string  `db:"timestamp" json:"timestamp"`
	Endpoint     string  `db:"endpoint" json:"endpoint"`
	AgentName    *string `db:"agent_name" json:"agent_name,omitempty"`
	Site         *string `db:"site" json:"site,omitempty"`
	Status       string  `db:"status" json:"status"`
	ResponseCode int     `db:"response_code" json:"response_code"`
	RequestBody  *string `db:"request_body" json:"request_body,omitempty"`
	ResponseBody *string `db:"response_body" json:"response_body,omitempty"`
	IPAddress    *string `db:"ip_address" json:"ip_address,omitempty"`
}
