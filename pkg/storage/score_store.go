// Package storage 用 SQLite 保存每局的分数记录
//
// 使用纯 Go 的 modernc.org/sqlite 驱动，不依赖 CGO。
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // 注册 "sqlite" 驱动
)

// MemoryPath 打开一个只存在于内存中的数据库（测试用）
const MemoryPath = ":memory:"

// ErrInvalidSession 会话 ID 不是合法的 UUID
var ErrInvalidSession = errors.New("storage: invalid session id")

// Store 分数数据库
type Store struct {
	db *sql.DB
}

// SessionRecord 一局游戏的结果
type SessionRecord struct {
	SessionID    string
	Score        int
	Chickens     int
	Cows         int
	ChestsOpened int
	PlaySeconds  float64
	CreatedAt    time.Time
}

// Stats 全部记录的汇总
type Stats struct {
	Sessions   int
	HighScore  int
	AvgScore   float64
	TotalScore int
}

// Open 打开（或创建）dbPath 处的数据库并执行迁移
// 路径以 ~ 开头时展开为用户主目录，父目录不存在时自动创建
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
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
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// 内存数据库每个连接是独立的库，单连接保证看到同一份数据
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	log.Debugf("[Storage] opened %s", dbPath)
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			chickens INTEGER NOT NULL DEFAULT 0,
			cows INTEGER NOT NULL DEFAULT 0,
			chests INTEGER NOT NULL DEFAULT 0,
			play_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_score ON sessions(score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore 记录一局的最终分数
func (s *Store) SaveScore(sessionID string, score int) error {
	return s.SaveSession(SessionRecord{SessionID: sessionID, Score: score})
}

// SaveSession 保存一局的结果
// 同一会话重复保存时覆盖旧记录（窗口关闭和切换场景都可能触发保存）
func (s *Store) SaveSession(rec SessionRecord) error {
	if _, err := uuid.Parse(rec.SessionID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSession, rec.SessionID)
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, score, chickens, cows, chests, play_secs)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			score = excluded.score,
			chickens = excluded.chickens,
			cows = excluded.cows,
			chests = excluded.chests,
			play_secs = excluded.play_secs`,
		rec.SessionID, rec.Score, rec.Chickens, rec.Cows, rec.ChestsOpened, rec.PlaySeconds,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// TopScores 按分数从高到低返回前 limit 条记录，limit <= 0 时取 10
func (s *Store) TopScores(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT session_id, score, chickens, cows, chests, play_secs, created_at
		 FROM sessions
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var createdAt any
		if err := rows.Scan(&rec.SessionID, &rec.Score, &rec.Chickens, &rec.Cows, &rec.ChestsOpened, &rec.PlaySeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// HighScore 最高分，没有记录时为 0
func (s *Store) HighScore() (int, error) {
	var high sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM sessions").Scan(&high); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(high.Int64), nil
}

// Stats 汇总全部记录
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0) FROM sessions",
	).Scan(&st.Sessions, &st.HighScore, &st.AvgScore, &st.TotalScore)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// parseTime 驱动可能返回 time.Time 或字符串
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
