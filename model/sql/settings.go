package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/model"
	"github.com/jmoiron/sqlx"
)

const selectSettings = `SELECT chat_id, welcome, antilink, antiviewonce, antispam, language
	FROM chat_settings WHERE chat_id = ?`

type settingsService struct {
	*sqlx.DB
	log   *logger.Logger
	locks *chatLocks

	mu    sync.RWMutex
	cache map[string]model.Settings
}

func NewSettingsService(db *sqlx.DB) *settingsService {
	return &settingsService{
		DB:    db,
		log:   logger.New("settingsService"),
		locks: newChatLocks(),
		cache: make(map[string]model.Settings),
	}
}

func (db *settingsService) GetOrCreate(ctx context.Context, chatID string) (model.Settings, error) {
	if s, ok := db.cached(chatID); ok {
		return s, nil
	}

	unlock := db.locks.lock(chatID)
	defer unlock()

	// Another caller may have materialized it while we waited.
	if s, ok := db.cached(chatID); ok {
		return s, nil
	}

	if err := db.createDefault(ctx, db.DB, chatID); err != nil {
		return model.Settings{}, err
	}

	var s model.Settings
	if err := db.GetContext(ctx, &s, selectSettings, chatID); err != nil {
		return model.Settings{}, fmt.Errorf("loading settings for chat %s: %w", chatID, err)
	}

	db.store(s)
	return s, nil
}

func (db *settingsService) Update(ctx context.Context, chatID string, raw map[string]string) (model.Settings, error) {
	patch, err := model.ParsePatch(raw)
	if err != nil {
		return model.Settings{}, err
	}

	if patch.IsEmpty() {
		return db.GetOrCreate(ctx, chatID)
	}

	unlock := db.locks.lock(chatID)
	defer unlock()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Settings{}, err
	}

	defer func(tx *sqlx.Tx) {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			db.log.Err(err).Msg("failed to rollback transaction")
		}
	}(tx)

	if err := db.createDefault(ctx, tx, chatID); err != nil {
		return model.Settings{}, err
	}

	cols, vals := patch.Columns()
	assignments := make([]string, len(cols))
	for i, col := range cols {
		assignments[i] = col + " = ?"
	}
	query := fmt.Sprintf(
		"UPDATE chat_settings SET %s, updated_at = CURRENT_TIMESTAMP WHERE chat_id = ?",
		strings.Join(assignments, ", "),
	)
	if _, err := tx.ExecContext(ctx, query, append(vals, chatID)...); err != nil {
		return model.Settings{}, fmt.Errorf("updating settings for chat %s: %w", chatID, err)
	}

	var s model.Settings
	if err := tx.GetContext(ctx, &s, selectSettings, chatID); err != nil {
		return model.Settings{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Settings{}, err
	}

	db.store(s)
	db.log.Debug().
		Str("chat_id", chatID).
		Strs("columns", cols).
		Msg("Updated chat settings")

	return s, nil
}

func (db *settingsService) createDefault(ctx context.Context, execer sqlx.ExecerContext, chatID string) error {
	query := insertIgnore(db.DB) + " chat_settings (chat_id) VALUES (?)"
	_, err := execer.ExecContext(ctx, query, chatID)
	if err != nil {
		return fmt.Errorf("creating settings for chat %s: %w", chatID, err)
	}
	return nil
}

func (db *settingsService) cached(chatID string) (model.Settings, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	s, ok := db.cache[chatID]
	return s, ok
}

func (db *settingsService) store(s model.Settings) {
	db.mu.Lock()
	db.cache[s.ChatID] = s
	db.mu.Unlock()
}

// chatLocks hands out one mutex per chat. Entries are never removed,
// a chat's settings live as long as the chat does.
type chatLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *chatLocks) lock(chatID string) func() {
	l.mu.Lock()
	m, ok := l.locks[chatID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[chatID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
