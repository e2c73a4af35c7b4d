// Package service implements the application facade consumed by the CLI
// and the HTTP transport. It selects between the local and remote
// persistence adapters, enforces the password gate on mutating calls, and
// keeps derived fields consistent with the content actually persisted.
//
// The facade assumes a single logical writer per diary (one desktop
// process or one authenticated session); it provides no cross-writer
// coordination.
package service

import (
	"context"
	"time"

	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/cryptox"
	"github.com/guncedev/gunce/internal/diary"
	"github.com/guncedev/gunce/internal/logging"
	"github.com/guncedev/gunce/internal/repositories/entries"
	"github.com/guncedev/gunce/internal/repositories/settings"
	"github.com/guncedev/gunce/internal/repositories/tags"
	"github.com/guncedev/gunce/internal/sentiment"
)

// Settings is the injected per-diary configuration. It is an explicit
// object handed to the service, never process-global state, so tests can
// supply isolated instances.
type Settings struct {
	// PasswordHash is the argon2id PHC string gating mutations, empty when
	// no password is set.
	PasswordHash string

	// ProtectionEnabled requires a successful Unlock before any mutating
	// call.
	ProtectionEnabled bool
}

// DiaryService is the single entry point for all diary operations.
type DiaryService struct {
	local    entries.LocalStore
	remote   entries.RemoteStore
	tagStore tags.Store
	analyzer sentiment.Analyzer
	logger   logging.Logger

	settings     *Settings
	settingsRepo settings.Repository

	unlocked bool
	// password is retained in memory between Unlock and Lock; it is needed
	// to seal new protected entries and open existing ones. It is never
	// persisted.
	password string
}

// Option configures a DiaryService.
type Option func(*DiaryService)

// WithSettings injects the diary settings. Without it the service runs
// unprotected.
func WithSettings(s *Settings) Option {
	return func(d *DiaryService) { d.settings = s }
}

// WithSettingsRepository makes SetPassword persist the gate configuration.
func WithSettingsRepository(repo settings.Repository) Option {
	return func(d *DiaryService) { d.settingsRepo = repo }
}

// New builds a facade over the given adapters. Either store may be nil;
// operations fall back to whichever is configured, and Sync requires both.
func New(local entries.LocalStore, remote entries.RemoteStore, tagStore tags.Store,
	analyzer sentiment.Analyzer, logger logging.Logger, opts ...Option) *DiaryService {

	s := &DiaryService{
		local:    local,
		remote:   remote,
		tagStore: tagStore,
		analyzer: analyzer,
		logger:   logger,
		settings: &Settings{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// store returns the primary adapter for the current runtime context:
// the embedded store on desktop, the hosted store on the web backend.
func (s *DiaryService) store() entries.Store {
	if s.local != nil {
		return s.local
	}
	return s.remote
}

// guard rejects mutations while the password gate is closed.
func (s *DiaryService) guard() error {
	if s.settings.ProtectionEnabled && !s.unlocked {
		return common.ErrLocked
	}
	return nil
}

// Unlock opens the password gate. With protection disabled it only records
// the password for later encryption use.
func (s *DiaryService) Unlock(password string) error {
	if s.settings.ProtectionEnabled {
		if !cryptox.VerifyPassword(password, s.settings.PasswordHash) {
			return common.ErrUnauthorized
		}
	}
	s.unlocked = true
	s.password = password
	return nil
}

// Lock closes the gate and drops the in-memory password.
func (s *DiaryService) Lock() {
	s.unlocked = false
	s.password = ""
}

// HasPassword reports whether an encryption password is held in memory.
// Sealing or opening protected content requires one even when the gate
// itself is disabled.
func (s *DiaryService) HasPassword() bool {
	return s.password != ""
}

// Unlocked reports whether the gate is currently open.
func (s *DiaryService) Unlocked() bool {
	return !s.settings.ProtectionEnabled || s.unlocked
}

// SetPassword enables password protection with a freshly hashed password.
// Changing an existing password requires the gate to be open.
func (s *DiaryService) SetPassword(ctx context.Context, password string) error {
	if err := s.guard(); err != nil {
		return err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	s.settings.PasswordHash = hash
	s.settings.ProtectionEnabled = true
	s.unlocked = true
	s.password = password

	if s.settingsRepo != nil {
		if err := s.settingsRepo.Set(ctx, settings.KeyPasswordHash, []byte(hash)); err != nil {
			return err
		}
		if err := s.settingsRepo.Set(ctx, settings.KeyProtectionEnabled, []byte("1")); err != nil {
			return err
		}
	}
	s.logger.Info(ctx, "password gate configured")
	return nil
}

// LoadSettings reads the persisted gate configuration into a Settings
// object. Missing keys leave protection disabled.
func LoadSettings(ctx context.Context, repo settings.Repository) (*Settings, error) {
	out := &Settings{}

	hash, err := repo.Get(ctx, settings.KeyPasswordHash)
	if err != nil {
		return nil, err
	}
	out.PasswordHash = string(hash)

	enabled, err := repo.Get(ctx, settings.KeyProtectionEnabled)
	if err != nil {
		return nil, err
	}
	out.ProtectionEnabled = string(enabled) == "1" && out.PasswordHash != ""

	return out, nil
}

// CreateEntry validates, derives, optionally seals and persists a new
// entry. Sentiment is assigned by the analyzer when the caller did not
// supply one. Adapter errors pass through unchanged.
func (s *DiaryService) CreateEntry(ctx context.Context, e *diary.Entry, encrypt bool) (*diary.Entry, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	autoSentiment := e.Sentiment == ""
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.Derive()

	if autoSentiment && e.Content != "" && s.analyzer != nil {
		res, err := s.analyzer.Analyze(ctx, e.Content)
		if err != nil {
			s.logger.Warn(ctx, "sentiment analysis failed, keeping neutral", "error", err)
		} else {
			e.Sentiment = res.Label
			e.SentimentScore = res.Score
		}
	}

	if encrypt {
		if s.password == "" {
			return nil, common.ErrLocked
		}
		if err := e.ApplyEncryption(s.password); err != nil {
			return nil, err
		}
	}

	stored, err := s.store().Create(ctx, e)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "entry created", "id", stored.ID, "encrypted", stored.IsEncrypted)
	return stored, nil
}

// GetEntry returns a live entry without decrypting it.
func (s *DiaryService) GetEntry(ctx context.Context, id string) (*diary.Entry, error) {
	return s.store().GetByID(ctx, id)
}

// GetEntryContent returns the plaintext of an entry, opening the stored
// package for protected ones with the in-memory password.
func (s *DiaryService) GetEntryContent(ctx context.Context, id string) (string, error) {
	e, err := s.store().GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return e.DecryptContent(s.password)
}

// ListEntries returns live entries matching the filter.
func (s *DiaryService) ListEntries(ctx context.Context, f entries.Filter) ([]*diary.Entry, error) {
	return s.store().List(ctx, f)
}

// UpdatePatch carries the fields of a partial update; nil means "leave
// unchanged".
type UpdatePatch struct {
	Title          *string          `json:"title,omitempty"`
	Content        *string          `json:"content,omitempty"`
	EntryDate      *string          `json:"entry_date,omitempty"` // "2006-01-02"
	Tags           *[]string        `json:"tags,omitempty"`
	Sentiment      *diary.Sentiment `json:"sentiment,omitempty"`
	SentimentScore *float64         `json:"sentiment_score,omitempty"`
	Weather        *string          `json:"weather,omitempty"`
	Location       *string          `json:"location,omitempty"`
	IsFavorite     *bool            `json:"is_favorite,omitempty"`
}

// UpdateEntry merges the patch onto the stored entry, re-derives when
// content or date changed, re-seals protected content, and persists.
func (s *DiaryService) UpdateEntry(ctx context.Context, id string, patch UpdatePatch) (*diary.Entry, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	cur, err := s.store().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		cur.Title = *patch.Title
	}
	if patch.EntryDate != nil {
		d, err := parseDate(*patch.EntryDate)
		if err != nil {
			return nil, &common.ValidationError{Field: "entry_date"}
		}
		cur.EntryDate = d
	}
	if patch.Tags != nil {
		cur.Tags = *patch.Tags
	}
	if patch.Sentiment != nil {
		cur.Sentiment = *patch.Sentiment
	}
	if patch.SentimentScore != nil {
		cur.SentimentScore = *patch.SentimentScore
	}
	if patch.Weather != nil {
		cur.Weather = *patch.Weather
	}
	if patch.Location != nil {
		cur.Location = *patch.Location
	}
	if patch.IsFavorite != nil {
		cur.IsFavorite = *patch.IsFavorite
	}

	if patch.Content != nil {
		cur.Content = *patch.Content
		if cur.IsEncrypted {
			if s.password == "" {
				return nil, common.ErrLocked
			}
			// derived fields must reflect the new plaintext before it is
			// sealed away again
			cur.Derive()
			if err := cur.ApplyEncryption(s.password); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.store().Update(ctx, cur)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "entry updated", "id", updated.ID)
	return updated, nil
}

// DeleteEntry removes an entry: a two-phase soft delete on the local
// store, an immediate hard delete on the remote one.
func (s *DiaryService) DeleteEntry(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	if s.local != nil {
		if err := s.local.SoftDelete(ctx, id); err != nil {
			return err
		}
		s.logger.Info(ctx, "entry soft-deleted", "id", id)
		return nil
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "entry deleted", "id", id)
	return nil
}

// Tags lists all tag definitions with their live usage counts.
func (s *DiaryService) Tags(ctx context.Context) ([]*diary.Tag, error) {
	return s.tagStore.List(ctx)
}

// CreateTag registers a tag definition ahead of use.
func (s *DiaryService) CreateTag(ctx context.Context, t *diary.Tag) (*diary.Tag, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.tagStore.Create(ctx, t)
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
