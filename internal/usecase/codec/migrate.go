package codec

import (
	"time"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// CurrentKey is the storage slot of the current schema version.
const CurrentKey = "latin.app.v5"

// MigrationEnv carries what migrators need to rebuild derived data.
type MigrationEnv struct {
	Now      time.Time
	Location *time.Location
}

// Migrator upgrades a raw document read from a legacy slot to the current shape.
type Migrator func(raw map[string]any, env MigrationEnv) map[string]any

// Migration pairs a legacy storage slot with the migrator for its documents.
type Migration struct {
	Key     string
	Migrate Migrator
}

// DefaultMigrations lists legacy slots newest first.
func DefaultMigrations() []Migration {
	return []Migration{
		{Key: "latin.app.v4", Migrate: chain(upgradeV4)},
		{Key: "latin.app.v3", Migrate: chain(upgradeV3, upgradeV4)},
		{Key: "latin.app.v2", Migrate: chain(upgradeV2, upgradeV3, upgradeV4)},
	}
}

func chain(steps ...Migrator) Migrator {
	return func(raw map[string]any, env MigrationEnv) map[string]any {
		for _, step := range steps {
			raw = step(raw, env)
		}
		return raw
	}
}

// v2 knew only words and rules.
func upgradeV2(raw map[string]any, _ MigrationEnv) map[string]any {
	if _, ok := raw["idioms"].([]any); !ok {
		raw["idioms"] = []any{}
	}
	return raw
}

// v3 had no activity ledger; rebuild wordsAdded history from word creation dates.
func upgradeV3(raw map[string]any, env MigrationEnv) map[string]any {
	if _, ok := raw["activity"].(map[string]any); ok {
		return raw
	}
	activity := map[string]any{}
	words, _ := raw["words"].([]any)
	for _, item := range words {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ms, ok := number(rec["createdAt"])
		if !ok || ms <= 0 {
			continue
		}
		date := entity.DateKey(entity.MillisToTime(millis(ms)), env.Location)
		day, _ := activity[date].(map[string]any)
		if day == nil {
			day = map[string]any{"wordsAdded": float64(0), "correct": float64(0)}
			activity[date] = day
		}
		day["wordsAdded"] = day["wordsAdded"].(float64) + 1
	}
	raw["activity"] = activity
	return raw
}

// v4 kept the daily challenge under dailyChallenge{target, claimedDate}.
func upgradeV4(raw map[string]any, _ MigrationEnv) map[string]any {
	legacy, ok := raw["dailyChallenge"].(map[string]any)
	if !ok {
		return raw
	}
	if _, exists := raw["challenges"].(map[string]any); !exists {
		raw["challenges"] = map[string]any{
			"dailyCorrectTarget": legacy["target"],
			"bonusClaimedDate":   legacy["claimedDate"],
		}
	}
	delete(raw, "dailyChallenge")
	return raw
}
