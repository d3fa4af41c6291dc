package seed

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// EnsureDefaultUsers inserts the built-in dashboard accounts, ignoring
// duplicates so restarts are safe. Passwords are stored bcrypt-hashed.
func EnsureDefaultUsers(db *sqlx.DB) {
	defaults := []struct {
		Username string
		Password string
		Role     string
	}{
		{"admin", "SAGsecure#2025", "admin"},
	}

	for _, u := range defaults {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			logrus.Errorf("unable to hash password for %s: %v", u.Username, err)
			continue
		}
		if _, err := db.Exec(`INSERT OR IGNORE INTO users (username, password, role) VALUES ($1, $2, $3)`,
			u.Username, string(hashed), u.Role); err != nil {
			logrus.Errorf("unable to seed user %s: %v", u.Username, err)
		}
	}
}
