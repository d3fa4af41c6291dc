package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"sagapi/m/internal/api"
	"sagapi/m/internal/config"
	"sagapi/m/internal/database"
	"sagapi/m/internal/migrations"
	"sagapi/m/internal/seed"
	"sagapi/m/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.EnsureDefaultUsers(db)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Mount("/api", api.New(db, cfg).Router())
	r.Mount("/", web.New(db, cfg).Router())

	logrus.Infof("SAGAPI receiving middleware starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, r); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
