package apilog

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"sagapi/m/domain"
)

// Logger appends one api_logs row per inbound API call. Rows are never
// updated or deleted.
type Logger struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Logger {
	return &Logger{db: db}
}

// Entry describes one API call outcome. RequestBody is the raw inbound
// body; ResponseBody is marshaled before insert. AgentName and Site carry
// caller identity when the domain provides one (login/database on auth,
// partner/branch on create).
type Entry struct {
	Endpoint     string
	Status       string // "success" | "error"
	ResponseCode int
	RequestBody  string
	ResponseBody any
	AgentName    string
	Site         string
	IPAddress    string
}

// Record writes the audit row. It never surfaces a failure to the caller;
// a failed insert is reported through logrus and otherwise dropped.
func (l *Logger) Record(e Entry) {
	var responseBody *string
	if e.ResponseBody != nil {
		if b, err := json.Marshal(e.ResponseBody); err == nil {
			s := string(b)
			responseBody = &s
		}
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, err := l.db.Exec(`INSERT INTO api_logs (timestamp, endpoint, agent_name, site, status, response_code, request_body, response_body, ip_address)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		timestamp, e.Endpoint, nullIfEmpty(e.AgentName), nullIfEmpty(e.Site),
		e.Status, e.ResponseCode, nullIfEmpty(e.RequestBody), responseBody, nullIfEmpty(e.IPAddress))
	if err != nil {
		logrus.Errorf("api log insert failed for %s: %v", e.Endpoint, err)
	}
}

// Stats summarizes the audit trail for the dashboard.
type Stats struct {
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
}

func (l *Logger) Stats() (Stats, error) {
	var s Stats
	if err := l.db.Get(&s.TotalRequests, `SELECT COUNT(*) FROM api_logs`); err != nil {
		return s, err
	}
	if err := l.db.Get(&s.SuccessRequests, `SELECT COUNT(*) FROM api_logs WHERE response_code = 200`); err != nil {
		return s, err
	}
	if err := l.db.Get(&s.FailedRequests, `SELECT COUNT(*) FROM api_logs WHERE response_code != 200`); err != nil {
		return s, err
	}
	return s, nil
}

// DailyStat is one day of request volume for the dashboard chart.
type DailyStat struct {
	Date    string `db:"date"`
	Count   int64  `db:"count"`
	Success int64  `db:"success"`
}

func (l *Logger) DailyStats() ([]DailyStat, error) {
	var stats []DailyStat
	err := l.db.Select(&stats, `SELECT DATE(timestamp) AS date, COUNT(*) AS count,
            SUM(CASE WHEN response_code = 200 THEN 1 ELSE 0 END) AS success
        FROM api_logs
        WHERE DATE(timestamp) >= DATE('now', '-7 days')
        GROUP BY DATE(timestamp)
        ORDER BY date`)
	return stats, err
}

// List returns audit rows newest first, optionally narrowed by a free-text
// search over endpoint/agent/site and a success|error filter.
func (l *Logger) List(search, statusFilter string) ([]domain.APILogEntry, error) {
	query := `SELECT * FROM api_logs WHERE 1=1`
	var args []any

	if search != "" {
		like := "%" + search + "%"
		query += ` AND (endpoint LIKE $1 OR agent_name LIKE $2 OR site LIKE $3)`
		args = append(args, like, like, like)
	}
	switch statusFilter {
	case "success":
		query += ` AND response_code = 200`
	case "error":
		query += ` AND response_code != 200`
	}
	query += ` ORDER BY timestamp DESC`

	var entries []domain.APILogEntry
	err := l.db.Select(&entries, query, args...)
	return entries, err
}

func (l *Logger) Get(id int64) (*domain.APILogEntry, error) {
	var entry domain.APILogEntry
	if err := l.db.Get(&entry, `SELECT * FROM api_logs WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

func nullIfEmpty(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}
