package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL for every table, in dependency order. Statements use
// IF NOT EXISTS so EnsureSchema is safe to run on every boot.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS cities (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uid        CHAR(36) NOT NULL UNIQUE,
		name       VARCHAR(120) NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS cinemas (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uid        CHAR(36) NOT NULL UNIQUE,
		city_id    BIGINT UNSIGNED NOT NULL,
		name       VARCHAR(160) NOT NULL,
		timezone   VARCHAR(64) NOT NULL DEFAULT 'UTC',
		is_active  TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_cinemas_city FOREIGN KEY (city_id) REFERENCES cities(id),
		UNIQUE KEY uq_cinemas_city_name (city_id, name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS halls (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uid        CHAR(36) NOT NULL UNIQUE,
		cinema_id  BIGINT UNSIGNED NOT NULL,
		name       VARCHAR(120) NOT NULL,
		seat_rows  INT UNSIGNED NOT NULL,
		seat_cols  INT UNSIGNED NOT NULL,
		is_active  TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_halls_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas(id),
		UNIQUE KEY uq_halls_cinema_name (cinema_id, name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seats (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uid        CHAR(36) NOT NULL UNIQUE,
		hall_id    BIGINT UNSIGNED NOT NULL,
		row_num    INT UNSIGNED NOT NULL,
		col_num    INT UNSIGNED NOT NULL,
		is_active  TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_seats_hall FOREIGN KEY (hall_id) REFERENCES halls(id),
		UNIQUE KEY uq_seats_cell (hall_id, row_num, col_num)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uid         CHAR(36) NOT NULL UNIQUE,
		title       VARCHAR(255) NOT NULL,
		poster_url  VARCHAR(512) NOT NULL DEFAULT '',
		runtime_min INT UNSIGNED NOT NULL,
		is_active   TINYINT(1) NOT NULL DEFAULT 1,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS showtimes (
		id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uid               CHAR(36) NOT NULL UNIQUE,
		movie_id          BIGINT UNSIGNED NOT NULL,
		hall_id           BIGINT UNSIGNED NOT NULL,
		starts_at         DATETIME NOT NULL,
		ends_at           DATETIME NOT NULL,
		adult_price_cents INT UNSIGNED NOT NULL,
		child_price_cents INT UNSIGNED NOT NULL,
		status            VARCHAR(16) NOT NULL DEFAULT 'SCHEDULED',
		created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_showtimes_movie FOREIGN KEY (movie_id) REFERENCES movies(id),
		CONSTRAINT fk_showtimes_hall  FOREIGN KEY (hall_id) REFERENCES halls(id),
		KEY idx_showtimes_hall_start (hall_id, starts_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS showtime_seats (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		showtime_id BIGINT UNSIGNED NOT NULL,
		seat_id     BIGINT UNSIGNED NOT NULL,
		status      VARCHAR(16) NOT NULL DEFAULT 'FREE',
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_ss_showtime FOREIGN KEY (showtime_id) REFERENCES showtimes(id),
		CONSTRAINT fk_ss_seat     FOREIGN KEY (seat_id) REFERENCES seats(id),
		UNIQUE KEY uq_ss_cell (showtime_id, seat_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uid           CHAR(36) NOT NULL UNIQUE,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16) NOT NULL DEFAULT 'CUSTOMER',
		is_active     TINYINT(1) NOT NULL DEFAULT 1,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_rt_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payments (
		id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uid                 CHAR(36) NOT NULL UNIQUE,
		user_email          VARCHAR(255) NOT NULL,
		showtime_id         BIGINT UNSIGNED NOT NULL,
		amount_cents        INT UNSIGNED NOT NULL,
		currency            CHAR(3) NOT NULL DEFAULT 'eur',
		status              VARCHAR(16) NOT NULL DEFAULT 'PENDING',
		checkout_session_id VARCHAR(255) NOT NULL DEFAULT '',
		created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_payments_showtime FOREIGN KEY (showtime_id) REFERENCES showtimes(id),
		KEY idx_payments_session (checkout_session_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payment_seats (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		payment_id BIGINT UNSIGNED NOT NULL,
		seat_id    BIGINT UNSIGNED NOT NULL,
		CONSTRAINT fk_pseats_payment FOREIGN KEY (payment_id) REFERENCES payments(id),
		CONSTRAINT fk_pseats_seat    FOREIGN KEY (seat_id) REFERENCES seats(id),
		UNIQUE KEY uq_pseats (payment_id, seat_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. It does not alter existing ones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
