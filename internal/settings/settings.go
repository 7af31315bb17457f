package settings

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/model"
)

// Bounds for numeric settings. Out-of-range values clamp to the nearest
// bound on save and on load.
const (
	MinSearchLimit     = 3
	MaxSearchLimit     = 20
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

// Settings holds per-user preferences. Field names mirror the stored JSON
// record so existing records round-trip unchanged.
type Settings struct {
	DashboardSearchLimit        int    `json:"dashboardSearchLimit"`
	DefaultEventStartTime       string `json:"defaultEventStartTime"`
	DefaultEventDurationMinutes int    `json:"defaultEventDurationMinutes"`
	SmartPlannerStartTime       string `json:"smartPlannerStartTime"`
	SmartPlannerDurationMinutes int    `json:"smartPlannerDurationMinutes"`
	DefaultEventColor           string `json:"defaultEventColor"`
	ConfirmBeforeDelete         bool   `json:"confirmBeforeDelete"`
}

// Defaults returns the documented default settings.
func Defaults() Settings {
	return Settings{
		DashboardSearchLimit:        8,
		DefaultEventStartTime:       "09:00",
		DefaultEventDurationMinutes: 60,
		SmartPlannerStartTime:       "09:00",
		SmartPlannerDurationMinutes: 60,
		DefaultEventColor:           model.DefaultProjectColor,
		ConfirmBeforeDelete:         true,
	}
}

// Store persists one settings record per user in a local key-value store.
type Store struct {
	d *diskv.Diskv
}

// DefaultBasePath returns ~/.novaq/settings.
func DefaultBasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".novaq", "settings"), nil
}

// NewStore opens (or creates) a settings store rooted at basePath.
func NewStore(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 64 * 1024,
	})}
}

// OpenDefault opens the store at the default path.
func OpenDefault() (*Store, error) {
	path, err := DefaultBasePath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

func recordKey(userID string) string {
	return "novaq_settings_" + userID
}

// Load returns the user's settings. Missing or corrupt records yield
// defaults; Load never fails.
func (s *Store) Load(userID string) Settings {
	raw, err := s.d.Read(recordKey(userID))
	if err != nil {
		return Defaults()
	}

	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		logger.Warn("Discarding corrupt settings record", logger.F("user", userID), logger.F("error", err))
		return Defaults()
	}
	return normalizeRecord(record)
}

// Save normalizes every field independently, persists the normalized record
// and returns it so caller state stays in sync with storage.
func (s *Store) Save(userID string, in Settings) (Settings, error) {
	normalized := Normalize(in)

	data, err := json.Marshal(normalized)
	if err != nil {
		return normalized, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.d.Write(recordKey(userID), data); err != nil {
		return normalized, fmt.Errorf("failed to write settings: %w", err)
	}
	return normalized, nil
}

// Reset removes the persisted record and returns defaults.
func (s *Store) Reset(userID string) (Settings, error) {
	if err := s.d.Erase(recordKey(userID)); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to erase settings record", logger.F("user", userID), logger.F("error", err))
	}
	return Defaults(), nil
}

// Normalize clamps and validates each field independently, falling back to
// the matching default for anything malformed. Normalizing an already
// normalized value is a no-op.
func Normalize(in Settings) Settings {
	def := Defaults()
	return Settings{
		DashboardSearchLimit:        clampInt(in.DashboardSearchLimit, MinSearchLimit, MaxSearchLimit),
		DefaultEventStartTime:       safeClock(in.DefaultEventStartTime, def.DefaultEventStartTime),
		DefaultEventDurationMinutes: clampInt(in.DefaultEventDurationMinutes, MinDurationMinutes, MaxDurationMinutes),
		SmartPlannerStartTime:       safeClock(in.SmartPlannerStartTime, def.SmartPlannerStartTime),
		SmartPlannerDurationMinutes: clampInt(in.SmartPlannerDurationMinutes, MinDurationMinutes, MaxDurationMinutes),
		DefaultEventColor:           safeColor(in.DefaultEventColor, def.DefaultEventColor),
		ConfirmBeforeDelete:         in.ConfirmBeforeDelete,
	}
}

// normalizeRecord validates a decoded JSON record field by field. Stored
// records may predate the current bounds or carry junk; every field falls
// back to its default independently.
func normalizeRecord(record map[string]any) Settings {
	def := Defaults()
	return Settings{
		DashboardSearchLimit:        safeNumber(record["dashboardSearchLimit"], def.DashboardSearchLimit, MinSearchLimit, MaxSearchLimit),
		DefaultEventStartTime:       safeClockAny(record["defaultEventStartTime"], def.DefaultEventStartTime),
		DefaultEventDurationMinutes: safeNumber(record["defaultEventDurationMinutes"], def.DefaultEventDurationMinutes, MinDurationMinutes, MaxDurationMinutes),
		SmartPlannerStartTime:       safeClockAny(record["smartPlannerStartTime"], def.SmartPlannerStartTime),
		SmartPlannerDurationMinutes: safeNumber(record["smartPlannerDurationMinutes"], def.SmartPlannerDurationMinutes, MinDurationMinutes, MaxDurationMinutes),
		DefaultEventColor:           safeColorAny(record["defaultEventColor"], def.DefaultEventColor),
		ConfirmBeforeDelete:         safeBool(record["confirmBeforeDelete"], def.ConfirmBeforeDelete),
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func safeNumber(v any, fallback, min, max int) int {
	var n float64
	switch value := v.(type) {
	case float64:
		n = value
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return fallback
		}
		n = f
	default:
		return fallback
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return clampInt(int(math.Round(n)), min, max)
}

func safeClock(v, fallback string) string {
	if model.ValidClock(v) {
		return v
	}
	return fallback
}

func safeClockAny(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return safeClock(s, fallback)
}

func safeColor(v, fallback string) string {
	if model.ValidHexColor(v) {
		return v
	}
	return fallback
}

func safeColorAny(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return safeColor(s, fallback)
}

func safeBool(v any, fallback bool) bool {
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}
