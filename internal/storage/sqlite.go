// Package storage provides SQLite-based persistence for player wallets and
// spin history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gemflock/internal/spin"
)

// ErrNoWallet is returned when a player has never saved a balance.
var ErrNoWallet = errors.New("storage: no wallet")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SpinRecord is one persisted spin.
type SpinRecord struct {
	ID         int64
	Player     string
	Spin       int
	Seed       int64
	Stake      float64
	Win        float64
	Multiplier float64
	Balance    float64
	Clusters   int
	Collected  int
	ForcedEnd  bool
	Feature    string
	Outcome    string
	CreatedAt  time.Time
}

// PlayerStats aggregates a player's history.
type PlayerStats struct {
	Player     string
	Spins      int
	TotalStake float64
	TotalWin   float64
	BestWin    float64
	Features   int
	LastPlayed time.Time
}

// RTP returns total win over total stake, or 0 without spins.
func (p PlayerStats) RTP() float64 {
	if p.TotalStake == 0 {
		return 0
	}
	return p.TotalWin / p.TotalStake
}

// FromResult builds a record from a finished spin.
func FromResult(player string, seed int64, r spin.Result) SpinRecord {
	return SpinRecord{
		Player:     player,
		Spin:       r.Spin,
		Seed:       seed,
		Stake:      r.Stake,
		Win:        r.Win,
		Multiplier: r.Multiplier,
		Balance:    r.Balance,
		Clusters:   len(r.Clusters),
		Collected:  r.Collected,
		ForcedEnd:  r.ForcedEnd,
		Feature:    r.Feature,
		Outcome:    r.Outcome,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS wallets (
			player TEXT PRIMARY KEY,
			balance REAL NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS spins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			spin_no INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			stake REAL NOT NULL,
			win REAL NOT NULL,
			multiplier REAL NOT NULL DEFAULT 1,
			balance REAL NOT NULL,
			clusters INTEGER NOT NULL DEFAULT 0,
			collected INTEGER NOT NULL DEFAULT 0,
			forced INTEGER NOT NULL DEFAULT 0,
			feature TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_spins_player ON spins(player, id DESC);
		CREATE INDEX IF NOT EXISTS idx_spins_win ON spins(player, win DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Wallet returns the saved balance of player, or ErrNoWallet.
func (s *Store) Wallet(player string) (float64, error) {
	var balance float64
	err := s.db.QueryRow(`SELECT balance FROM wallets WHERE player = ?`, player).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoWallet
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read wallet: %w", err)
	}
	return balance, nil
}

// SaveWallet stores the balance of player.
func (s *Store) SaveWallet(player string, balance float64) error {
	_, err := s.db.Exec(
		`INSERT INTO wallets (player, balance, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET balance = excluded.balance, updated_at = CURRENT_TIMESTAMP`,
		player, balance,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save wallet: %w", err)
	}
	return nil
}

// SaveSpin records a finished spin. Returns the ID of the inserted record.
func (s *Store) SaveSpin(r SpinRecord) (int64, error) {
	forced := 0
	if r.ForcedEnd {
		forced = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO spins (player, spin_no, seed, stake, win, multiplier, balance, clusters, collected, forced, feature, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Spin, r.Seed, r.Stake, r.Win, r.Multiplier, r.Balance,
		r.Clusters, r.Collected, forced, r.Feature, r.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save spin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const spinColumns = `id, player, spin_no, seed, stake, win, multiplier, balance, clusters, collected, forced, feature, outcome, created_at`

// RecentSpins returns the last limit spins of player, newest first.
func (s *Store) RecentSpins(player string, limit int) ([]SpinRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+spinColumns+`
		 FROM spins
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query spins: %w", err)
	}
	return scanSpins(rows)
}

// BestSpins returns the top limit wins of player.
func (s *Store) BestSpins(player string, limit int) ([]SpinRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+spinColumns+`
		 FROM spins
		 WHERE player = ?
		 ORDER BY win DESC, id ASC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query spins: %w", err)
	}
	return scanSpins(rows)
}

func scanSpins(rows *sql.Rows) ([]SpinRecord, error) {
	defer rows.Close()

	var records []SpinRecord
	for rows.Next() {
		var r SpinRecord
		var forced int
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Player, &r.Spin, &r.Seed, &r.Stake, &r.Win, &r.Multiplier, &r.Balance,
			&r.Clusters, &r.Collected, &forced, &r.Feature, &r.Outcome, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.ForcedEnd = forced != 0
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Stats aggregates the history of player.
func (s *Store) Stats(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(stake), 0), COALESCE(SUM(win), 0), COALESCE(MAX(win), 0),
		        COALESCE(SUM(CASE WHEN feature != '' THEN 1 ELSE 0 END), 0), MAX(created_at)
		 FROM spins WHERE player = ?`,
		player,
	).Scan(&stats.Spins, &stats.TotalStake, &stats.TotalWin, &stats.BestWin, &stats.Features, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// OutcomeCounts returns how often each feature outcome occurred for player.
func (s *Store) OutcomeCounts(player string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT outcome, COUNT(*) FROM spins
		 WHERE player = ? AND outcome != ''
		 GROUP BY outcome`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count outcomes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan outcome row: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

// ClearHistory deletes all spins of player. The wallet is kept.
func (s *Store) ClearHistory(player string) error {
	if _, err := s.db.Exec(`DELETE FROM spins WHERE player = ?`, player); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
