package sql

import (
	"context"

	"github.com/Brawl345/raven/logger"
	"github.com/jmoiron/sqlx"
)

type chatsCommandsService struct {
	*sqlx.DB
	log *logger.Logger
}

func NewChatsCommandsService(db *sqlx.DB) *chatsCommandsService {
	return &chatsCommandsService{
		DB:  db,
		log: logger.New("chatsCommandsService"),
	}
}

func (db *chatsCommandsService) Disable(ctx context.Context, chatID, command string) error {
	return db.setEnabled(ctx, chatID, command, false)
}

func (db *chatsCommandsService) Enable(ctx context.Context, chatID, command string) error {
	return db.setEnabled(ctx, chatID, command, true)
}

func (db *chatsCommandsService) setEnabled(ctx context.Context, chatID, command string, enabled bool) error {
	query := upsertEnabled(db.DB, "chats_commands", "chat_id", "command")
	_, err := db.ExecContext(ctx, query, chatID, command, enabled)
	return err
}

func (db *chatsCommandsService) GetAllDisabled(ctx context.Context) (map[string][]string, error) {
	const query = `SELECT chat_id, command FROM chats_commands WHERE enabled = false`

	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func(rows *sqlx.Rows) {
		err := rows.Close()
		if err != nil {
			db.log.Err(err).Send()
		}
	}(rows)

	disabledCommands := make(map[string][]string)

	for rows.Next() {
		var chatID, command string
		err := rows.Scan(&chatID, &command)
		if err != nil {
			db.log.Err(err).Send()
			return nil, err
		}

		disabledCommands[chatID] = append(disabledCommands[chatID], command)
	}

	return disabledCommands, rows.Err()
}
