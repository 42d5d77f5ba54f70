package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"SigBoard/internal/domain/models"
	domrepo "SigBoard/internal/domain/repository"
)

// ArchiveSchema is the DDL for the unbounded signal history table. The Redis
// lists are trimmed at write time; long-term history lives here.
var ArchiveSchema = []string{
	"CREATE DATABASE IF NOT EXISTS sigboard",
	`CREATE TABLE IF NOT EXISTS sigboard.signals_archive (
		ts DateTime64(3),
		symbol String,
		address String,
		price_usd Float64,
		total_score Float64,
		pop_score Float64,
		signal_strength String,
		risk_level String,
		security_score Float64,
		telegram_sent UInt8,
		payload String
	) ENGINE = MergeTree ORDER BY (symbol, ts)`,
}

// ClickHouseArchive implements SignalArchive on ClickHouse.
type ClickHouseArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseArchive creates a signal archive writing to the given table.
func NewClickHouseArchive(db *sql.DB, table string) *ClickHouseArchive {
	return &ClickHouseArchive{db: db, table: table}
}

func (a *ClickHouseArchive) ArchiveSignal(ctx context.Context, sig *models.Signal) error {
	payload, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("encode signal: %w", err)
	}

	sent := uint8(0)
	if sig.TelegramSent {
		sent = 1
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (ts, symbol, address, price_usd, total_score, pop_score, signal_strength, risk_level, security_score, telegram_sent, payload) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		a.table,
	)
	_, err = a.db.ExecContext(ctx, q,
		sig.Timestamp.Time,
		sig.Symbol,
		sig.Address,
		sig.PriceUSD,
		sig.TotalScore,
		sig.PopScore,
		sig.SignalStrength,
		sig.RiskLevel,
		sig.SecurityScore,
		sent,
		string(payload),
	)
	return err
}

func (a *ClickHouseArchive) Health(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

var _ domrepo.SignalArchive = (*ClickHouseArchive)(nil)
