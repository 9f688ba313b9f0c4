// Package profile persists user profiles in the key-value store and applies
// finished sessions to them.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/fingertypos/internal/levels"
	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/progression"
	"github.com/verte-zerg/fingertypos/internal/store"
)

// Namespace is the store namespace holding all profile data.
const Namespace = "fingertypos-storage"

const (
	activeKey     = "active"
	profilePrefix = "profile:"
)

var (
	// ErrNoActiveProfile is returned when no profile has been selected.
	ErrNoActiveProfile = errors.New("no active profile")
	// ErrProfileNotFound is returned for unknown profile ids.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidProfile is returned for incomplete or malformed profile data.
	ErrInvalidProfile = errors.New("invalid profile")
)

// DefaultSettings are applied to new profiles.
var DefaultSettings = model.Settings{
	KeyboardLayout: levels.DefaultLayout,
	ShowGhost:      true,
	SoundEnabled:   true,
}

// Service manages profiles.
type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service backed by st.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{store: st, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func profileKey(id string) string {
	return profilePrefix + id
}

// Create stores a new level 1 profile and makes it active.
func (s *Service) Create(ctx context.Context, name, layout string) (model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Profile{}, fmt.Errorf("%w: name is empty", ErrInvalidProfile)
	}
	if layout == "" {
		layout = levels.DefaultLayout
	}
	if !levels.KnownLayout(layout) {
		return model.Profile{}, fmt.Errorf("%w: unknown keyboard layout %q", ErrInvalidProfile, layout)
	}
	now := s.now()
	settings := DefaultSettings
	settings.KeyboardLayout = layout
	p := model.Profile{
		ID:               s.newID(),
		Name:             name,
		Rank:             progression.RankForLevel(1).String(),
		Level:            1,
		Settings:         settings,
		Stats:            &model.UserStats{ErrorHeatmap: map[string]int{}},
		History:          []model.MatchHistory{},
		CampaignProgress: map[string]model.LevelResult{},
		TrainingStats:    map[string]model.TrainingResult{},
		CreatedAt:        now,
		LastActiveAt:     now,
	}
	if err := s.saveAndActivate(ctx, p); err != nil {
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

// List returns all profiles sorted by name.
func (s *Service) List(ctx context.Context) ([]model.Profile, error) {
	entries, err := s.store.List(ctx, Namespace, profilePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	profiles := make([]model.Profile, 0, len(entries))
	for _, entry := range entries {
		p, err := decode(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", entry.Key, err)
		}
		profiles = append(profiles, p)
	}
	sortByName(profiles)
	return profiles, nil
}

// Get loads a profile by id.
func (s *Service) Get(ctx context.Context, id string) (model.Profile, error) {
	raw, err := s.store.Get(ctx, Namespace, profileKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return model.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return decode(raw)
}

// ActiveID returns the id of the active profile.
func (s *Service) ActiveID(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, Namespace, activeKey)
	if errors.Is(err, store.ErrNotFound) || (err == nil && len(raw) == 0) {
		return "", ErrNoActiveProfile
	}
	if err != nil {
		return "", fmt.Errorf("failed to load active profile: %w", err)
	}
	return string(raw), nil
}

// Active loads the active profile.
func (s *Service) Active(ctx context.Context) (model.Profile, error) {
	id, err := s.ActiveID(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	return s.Get(ctx, id)
}

// Resolve loads the profile with id, or the active one when id is empty.
func (s *Service) Resolve(ctx context.Context, id string) (model.Profile, error) {
	if id == "" {
		return s.Active(ctx)
	}
	return s.Get(ctx, id)
}

// SetActive selects an existing profile.
func (s *Service) SetActive(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Put(ctx, Namespace, activeKey, []byte(id)); err != nil {
		return fmt.Errorf("failed to set active profile: %w", err)
	}
	return nil
}

// SettingsPatch lists the settings to change. Nil fields are left as is.
type SettingsPatch struct {
	KeyboardLayout *string
	ShowGhost      *bool
	SoundEnabled   *bool
}

// UpdateSettings merges patch into the settings of profile id (or the active
// profile when id is empty).
func (s *Service) UpdateSettings(ctx context.Context, id string, patch SettingsPatch) (model.Profile, error) {
	if patch.KeyboardLayout != nil && !levels.KnownLayout(*patch.KeyboardLayout) {
		return model.Profile{}, fmt.Errorf("%w: unknown keyboard layout %q", ErrInvalidProfile, *patch.KeyboardLayout)
	}
	return s.modify(ctx, id, func(p model.Profile) (model.Profile, error) {
		if patch.KeyboardLayout != nil {
			p.Settings.KeyboardLayout = *patch.KeyboardLayout
		}
		if patch.ShowGhost != nil {
			p.Settings.ShowGhost = *patch.ShowGhost
		}
		if patch.SoundEnabled != nil {
			p.Settings.SoundEnabled = *patch.SoundEnabled
		}
		return p, nil
	})
}

// CompleteSession applies a finished session to profile id (or the active
// profile) and persists the result in a single transaction.
func (s *Service) CompleteSession(ctx context.Context, id string, results model.SessionResults) (model.Profile, error) {
	return s.modify(ctx, id, func(p model.Profile) (model.Profile, error) {
		return progression.CompleteSession(p, results, s.now()), nil
	})
}

// modify runs a read-modify-write of one profile inside a transaction.
func (s *Service) modify(ctx context.Context, id string, fn func(model.Profile) (model.Profile, error)) (model.Profile, error) {
	var next model.Profile
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		if id == "" {
			raw, err := tx.Get(ctx, Namespace, activeKey)
			if errors.Is(err, store.ErrNotFound) || (err == nil && len(raw) == 0) {
				return ErrNoActiveProfile
			}
			if err != nil {
				return err
			}
			id = string(raw)
		}
		raw, err := tx.Get(ctx, Namespace, profileKey(id))
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		if err != nil {
			return err
		}
		current, err := decode(raw)
		if err != nil {
			return err
		}
		next, err = fn(current)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		return tx.Put(ctx, Namespace, profileKey(id), data)
	})
	if err != nil {
		return model.Profile{}, err
	}
	return next, nil
}

// Export renders profile id (or the active profile) as indented JSON.
func (s *Service) Export(ctx context.Context, id string) ([]byte, error) {
	p, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return data, nil
}

// Import validates an exported profile, stores it under a fresh id and makes
// it active.
func (s *Service) Import(ctx context.Context, data []byte) (model.Profile, error) {
	var p model.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if p.ID == "" || strings.TrimSpace(p.Name) == "" || p.Stats == nil {
		return model.Profile{}, fmt.Errorf("%w: id, name and stats are required", ErrInvalidProfile)
	}
	p.ID = s.newID()
	normalize(&p)
	if err := s.saveAndActivate(ctx, p); err != nil {
		return model.Profile{}, fmt.Errorf("failed to import profile: %w", err)
	}
	return p, nil
}

func (s *Service) saveAndActivate(ctx context.Context, p model.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Update(ctx, func(tx *store.Tx) error {
		if err := tx.Put(ctx, Namespace, profileKey(p.ID), data); err != nil {
			return err
		}
		return tx.Put(ctx, Namespace, activeKey, []byte(p.ID))
	})
}

func decode(raw []byte) (model.Profile, error) {
	var p model.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	normalize(&p)
	return p, nil
}

// normalize fills the zero values an older or hand-edited document may lack.
func normalize(p *model.Profile) {
	if p.Stats == nil {
		p.Stats = &model.UserStats{}
	}
	if p.Stats.ErrorHeatmap == nil {
		p.Stats.ErrorHeatmap = map[string]int{}
	}
	if p.CampaignProgress == nil {
		p.CampaignProgress = map[string]model.LevelResult{}
	}
	if p.TrainingStats == nil {
		p.TrainingStats = map[string]model.TrainingResult{}
	}
	if p.Level < 1 {
		p.Level = progression.LevelForXP(p.XP)
	}
	if p.Rank == "" {
		p.Rank = progression.RankForLevel(p.Level).String()
	}
	if !levels.KnownLayout(p.Settings.KeyboardLayout) {
		p.Settings.KeyboardLayout = levels.DefaultLayout
	}
}

func sortByName(profiles []model.Profile) {
	slices.SortStableFunc(profiles, func(a, b model.Profile) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
