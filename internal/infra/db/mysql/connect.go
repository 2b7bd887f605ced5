package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Connect opens a MySQL pool. dsn may be a driver DSN or a mysql:// URL.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.HasPrefix(dsn, "mysql://") {
		converted, err := DSNFromURL(dsn)
		if err != nil {
			return nil, err
		}
		dsn = converted
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
