package web

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"sagapi/m/domain"
	"sagapi/m/internal/apilog"
	"sagapi/m/internal/config"
	"sagapi/m/internal/receiving"
	"sagapi/m/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the operator dashboard: session-gated pages over the same
// store the API writes to, plus the Excel exports.
type Handler struct {
	db        *sqlx.DB
	cfg       config.Config
	logs      *apilog.Logger
	recv      *receiving.Service
	templates *template.Template
}

func New(db *sqlx.DB, cfg config.Config) *Handler {
	return &Handler{
		db:        db,
		cfg:       cfg,
		logs:      apilog.New(db),
		recv:      receiving.NewService(db),
		templates: template.Must(template.New("").Funcs(template.FuncMap{
			"add": func(a, b int) int { return a + b },
			"sub": func(a, b int) int { return a - b },
		}).ParseFS(templateFS, "templates/*.html")),
	}
}

// Router wires up the dashboard routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard", http.StatusFound)
	})
	r.Get("/login", h.loginForm)
	r.Post("/login", h.loginSubmit)
	r.Get("/logout", h.logout)

	r.Group(func(pr chi.Router) {
		pr.Use(h.requireSession)

		pr.Get("/dashboard", h.dashboard)
		pr.Get("/logs", h.logList)
		pr.Get("/log/{id}", h.logDetail)
		pr.Get("/transactions", h.transactionList)
		pr.Get("/transaction/{id}", h.transactionDetail)
		pr.Get("/export/logs/excel", h.exportLogs)
		pr.Get("/export/transactions/excel", h.exportTransactions)
	})

	return r
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		logrus.Errorf("render %s: %v", name, err)
	}
}

// Login / logout

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", map[string]string{})
}

func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	var user domain.User
	err := h.db.Get(&user, `SELECT id, username, password, role FROM users WHERE username = $1`, username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		h.render(w, "login.html", map[string]string{"Error": "Invalid username or password"})
		return
	}

	if err := h.issueSession(w, user.Username, user.Role); err != nil {
		http.Error(w, "unable to start session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Dashboard

type dashboardData struct {
	Stats    apilog.Stats
	TotalTBS int64
	Recent   []receiving.TransactionSummary
	Daily    []apilog.DailyStat
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	var data dashboardData
	var err error

	if data.Stats, err = h.logs.Stats(); err != nil {
		http.Error(w, "unable to load statistics", http.StatusInternalServerError)
		return
	}
	if data.TotalTBS, err = h.recv.CountDocuments(); err != nil {
		http.Error(w, "unable to load statistics", http.StatusInternalServerError)
		return
	}
	if data.Recent, err = h.recv.RecentTransactions(10); err != nil {
		http.Error(w, "unable to load recent transactions", http.StatusInternalServerError)
		return
	}
	if data.Daily, err = h.logs.DailyStats(); err != nil {
		http.Error(w, "unable to load daily statistics", http.StatusInternalServerError)
		return
	}

	h.render(w, "dashboard.html", data)
}

// Log viewer

type logListData struct {
	Logs         []domain.APILogEntry
	Page         int
	PerPage      int
	Total        int
	TotalPages   int
	Search       string
	StatusFilter string
}

func (h *Handler) logList(w http.ResponseWriter, r *http.Request) {
	const perPage = 20

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	search := r.URL.Query().Get("search")
	statusFilter := r.URL.Query().Get("status")

	all, err := h.logs.List(search, statusFilter)
	if err != nil {
		http.Error(w, "unable to load logs", http.StatusInternalServerError)
		return
	}

	total := len(all)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	h.render(w, "logs.html", logListData{
		Logs:         all[start:end],
		Page:         page,
		PerPage:      perPage,
		Total:        total,
		TotalPages:   (total + perPage - 1) / perPage,
		Search:       search,
		StatusFilter: statusFilter,
	})
}

func (h *Handler) logDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Log not found", http.StatusNotFound)
		return
	}
	entry, err := h.logs.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Log not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "unable to load log", http.StatusInternalServerError)
		return
	}
	h.render(w, "log_detail.html", entry)
}

// Transactions

func (h *Handler) transactionList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.recv.ListTransactions()
	if err != nil {
		http.Error(w, "unable to load transactions", http.StatusInternalServerError)
		return
	}
	h.render(w, "transactions.html", map[string]any{"Transactions": rows})
}

func (h *Handler) transactionDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}
	header, lines, err := h.recv.GetTransaction(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "unable to load transaction", http.StatusInternalServerError)
		return
	}
	h.render(w, "transaction_detail.html", map[string]any{
		"Transaction": header,
		"Lines":       lines,
	})
}

// Excel exports

func (h *Handler) exportLogs(w http.ResponseWriter, r *http.Request) {
	f, err := report.LogsWorkbook(h.db)
	if err != nil {
		http.Error(w, "unable to build export", http.StatusInternalServerError)
		return
	}
	serveWorkbook(w, f, fmt.Sprintf("api_logs_%s.xlsx", time.Now().Format("20060102_150405")))
}

func (h *Handler) exportTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := report.TransactionsWorkbook(h.db)
	if err != nil {
		http.Error(w, "unable to build export", http.StatusInternalServerError)
		return
	}
	serveWorkbook(w, f, fmt.Sprintf("transactions_%s.xlsx", time.Now().Format("20060102_150405")))
}

func serveWorkbook(w http.ResponseWriter, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		logrus.Errorf("workbook write: %v", err)
	}
}
