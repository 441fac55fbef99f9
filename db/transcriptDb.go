package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"jarvis/models"

	_ "github.com/lib/pq"
)

// TranscriptRepository persists the full conversation on every save.
// Implementations rewrite the whole transcript rather than appending, so
// trimming in the service layer is reflected in storage immediately.
type TranscriptRepository interface {
	Load() ([]models.Message, error)
	Save(messages []models.Message) error
	Close() error
}

type FileTranscriptRepository struct {
	path string
}

func NewFileTranscriptRepository(path string) *FileTranscriptRepository {
	return &FileTranscriptRepository{path: path}
}

func (r *FileTranscriptRepository) Load() ([]models.Message, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Message{}, nil
		}
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var file models.TranscriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse transcript file: %w", err)
	}

	if file.Messages == nil {
		return []models.Message{}, nil
	}
	return file.Messages, nil
}

func (r *FileTranscriptRepository) Save(messages []models.Message) error {
	file := models.TranscriptFile{
		Messages:    messages,
		LastUpdated: time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}
	return nil
}

func (r *FileTranscriptRepository) Close() error {
	return nil
}

type PostgresTranscriptRepository struct {
	db *sql.DB
}

func NewPostgresTranscriptRepository(databaseURL string) (*PostgresTranscriptRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresTranscriptRepository{db: db}, nil
}

func (r *PostgresTranscriptRepository) Load() ([]models.Message, error) {
	query := `
		SELECT role, message, timestamp
		FROM jarvis.conversation_messages
		ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.Role, &msg.Message, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}

// Save replaces the stored transcript wholesale inside one transaction,
// matching the file repository's rewrite semantics.
func (r *PostgresTranscriptRepository) Save(messages []models.Message) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM jarvis.conversation_messages`); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}

	insert := `
		INSERT INTO jarvis.conversation_messages (role, message, timestamp)
		VALUES ($1, $2, $3)`

	for _, msg := range messages {
		if _, err := tx.Exec(insert, msg.Role, msg.Message, msg.Timestamp); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transcript: %w", err)
	}
	return nil
}

func (r *PostgresTranscriptRepository) Close() error {
	return r.db.Close()
}
