package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection before returning.
// All DATETIME columns are read as UTC time.Time values.
func Open(ctx context.Context, user, pass, host, port, name string) (*sql.DB, error) {
	conf := mysql.NewConfig()
	conf.User = user
	conf.Passwd = pass
	conf.Net = "tcp"
	conf.Addr = host + ":" + port
	conf.DBName = name
	conf.ParseTime = true
	conf.Loc = time.UTC
	conf.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", conf.FormatDSN())
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
