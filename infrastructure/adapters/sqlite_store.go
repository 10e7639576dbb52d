package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	voice_clone_id TEXT NOT NULL DEFAULT '',
	voice_sample_path TEXT NOT NULL DEFAULT '',
	welcome_message_text TEXT NOT NULL DEFAULT '',
	welcome_message_audio TEXT NOT NULL DEFAULT '',
	is_published INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS links (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL REFERENCES users(id),
	title TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL,
	scraped_content TEXT NOT NULL DEFAULT '',
	script_brief TEXT NOT NULL DEFAULT '',
	script_standard TEXT NOT NULL DEFAULT '',
	script_conversational TEXT NOT NULL DEFAULT '',
	selected_script TEXT NOT NULL DEFAULT '',
	voice_message_text TEXT NOT NULL DEFAULT '',
	voice_message_audio TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_links_owner ON links(owner_id);
`

type sqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (creating if needed) the profile database and applies
// the schema.
func NewSqliteStore(path string) (outbound.ProfileStorePort, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) GetLink(ctx context.Context, id string) (domain.Link, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, url, scraped_content,
			script_brief, script_standard, script_conversational, selected_script,
			voice_message_text, voice_message_audio, active, position
		FROM links WHERE id = ?`, id)

	var link domain.Link
	err := row.Scan(&link.ID, &link.OwnerID, &link.Title, &link.URL, &link.ScrapedContent,
		&link.ScriptBrief, &link.ScriptStandard, &link.ScriptConversational, &link.SelectedScript,
		&link.VoiceMessageText, &link.VoiceMessageAudio, &link.Active, &link.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Link{}, domain.Errorf(domain.ErrorNotFound, "link %s not found", id)
	}
	if err != nil {
		return domain.Link{}, fmt.Errorf("failed to load link %s: %w", id, err)
	}
	return link, nil
}

func (s *sqliteStore) SaveLink(ctx context.Context, link domain.Link) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO links (id, owner_id, title, url, scraped_content,
			script_brief, script_standard, script_conversational, selected_script,
			voice_message_text, voice_message_audio, active, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			title = excluded.title,
			url = excluded.url,
			scraped_content = excluded.scraped_content,
			script_brief = excluded.script_brief,
			script_standard = excluded.script_standard,
			script_conversational = excluded.script_conversational,
			selected_script = excluded.selected_script,
			voice_message_text = excluded.voice_message_text,
			voice_message_audio = excluded.voice_message_audio,
			active = excluded.active,
			position = excluded.position`,
		link.ID, link.OwnerID, link.Title, link.URL, link.ScrapedContent,
		link.ScriptBrief, link.ScriptStandard, link.ScriptConversational, link.SelectedScript,
		link.VoiceMessageText, link.VoiceMessageAudio, link.Active, link.Position)
	if err != nil {
		return fmt.Errorf("failed to save link %s: %w", link.ID, err)
	}
	return nil
}

func (s *sqliteStore) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *sqliteStore) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.getUser(ctx, "username", username)
}

func (s *sqliteStore) getUser(ctx context.Context, column, value string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, username, display_name, bio, voice_clone_id, voice_sample_path,
			welcome_message_text, welcome_message_audio, is_published
		FROM users WHERE %s = ?`, column), value)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &user.Bio,
		&user.VoiceCloneID, &user.VoiceSamplePath,
		&user.WelcomeMessageText, &user.WelcomeMessageAudio, &user.IsPublished)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.Errorf(domain.ErrorNotFound, "user %s not found", value)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to load user %s: %w", value, err)
	}
	return user, nil
}

func (s *sqliteStore) SaveUser(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, display_name, bio, voice_clone_id, voice_sample_path,
			welcome_message_text, welcome_message_audio, is_published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			display_name = excluded.display_name,
			bio = excluded.bio,
			voice_clone_id = excluded.voice_clone_id,
			voice_sample_path = excluded.voice_sample_path,
			welcome_message_text = excluded.welcome_message_text,
			welcome_message_audio = excluded.welcome_message_audio,
			is_published = excluded.is_published`,
		user.ID, user.Username, user.DisplayName, user.Bio, user.VoiceCloneID, user.VoiceSamplePath,
		user.WelcomeMessageText, user.WelcomeMessageAudio, user.IsPublished)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.ID, err)
	}
	return nil
}
