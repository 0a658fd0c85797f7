// Package seed creates a small demo platform database that the alignment
// battery can run against.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"aligncheck/internal/config"
	"aligncheck/internal/logging"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrExists is returned when the SQLite target already exists and force is off.
var ErrExists = errors.New("database already exists")

// Summary reports what a seed run wrote.
type Summary struct {
	Target string // file path, or the driver name for server databases
	Tables int
	Rows   int64
}

// Seed migrates the platform schema into the configured database and
// inserts the demo data set in one transaction.
func Seed(ctx context.Context, cfg config.DatabaseConfig, force bool) (*Summary, error) {
	timer := logging.StartTimer(logging.CategorySeed, "Seed")
	defer timer.Stop()

	dialector, err := dialectorFor(cfg, force)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	defer sqlDB.Close()

	db = db.WithContext(ctx)
	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	logging.Seed("Migrated %d tables", len(models))

	var rows int64
	err = db.Transaction(func(tx *gorm.DB) error {
		n, err := insertDemoData(tx)
		rows = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert demo data: %w", err)
	}
	logging.Seed("Inserted %d demo rows", rows)

	target := cfg.Driver
	if cfg.IsFile() {
		target = cfg.Path
	}
	return &Summary{Target: target, Tables: len(models), Rows: rows}, nil
}

func dialectorFor(cfg config.DatabaseConfig, force bool) (gorm.Dialector, error) {
	target := cfg.Target()
	if target == "" {
		return nil, fmt.Errorf("no %s target configured", cfg.Driver)
	}

	switch cfg.Driver {
	case config.DriverSQLite, config.DriverSQLite3:
		if err := prepareFile(target, force); err != nil {
			return nil, err
		}
		// "sqlite" is the pure-Go modernc driver, "sqlite3" the cgo one.
		return sqlite.New(sqlite.Config{DriverName: cfg.Driver, DSN: target}), nil
	case config.DriverMySQL:
		return mysql.Open(target), nil
	default:
		return nil, fmt.Errorf("seeding is not supported for driver %q", cfg.Driver)
	}
}

func prepareFile(path string, force bool) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if !force {
		return fmt.Errorf("%w: %s (use --force to replace it)", ErrExists, path)
	}
	logging.Seed("Replacing existing database %s", path)
	return os.Remove(path)
}

func str(s string) *string { return &s }

func uid(n uint) *uint { return &n }

// insertDemoData writes a data set on which every alignment check passes.
func insertDemoData(tx *gorm.DB) (int64, error) {
	var total int64
	create := func(value any) error {
		res := tx.Create(value)
		if res.Error != nil {
			return res.Error
		}
		total += res.RowsAffected
		return nil
	}

	users := []User{
		{
			ID:              1,
			Name:            "Aunty May",
			Role:            "elder",
			Community:       str("Gumbaynggirr"),
			Location:        str("Coffs Harbour"),
			PrivacySettings: str(`{"profile":"community"}`),
		},
		{ID: 2, Name: "Uncle Ray", Role: "knowledge_keeper", Community: str("Wiradjuri")},
		{ID: 3, Name: "Sam", Role: "mentor", Background: str("teacher")},
		{ID: 4, Name: "Jo", Role: "learner", AccessibilityNeeds: str("captions")},
	}
	posts := []Post{
		{
			UserID:        uid(1),
			Title:         "Reading the seasons",
			Content:       "Traditional seasonal knowledge shared with permission",
			ContentType:   str("indigenous_knowledge"),
			ContentFormat: str("text"),
			Metadata:      str(`{"cultural_protocol":"elder_approved","attribution":"Gumbaynggirr community"}`),
			Status:        "published",
			AccessLevel:   str("community_only"),
			Tags:          str("seasons,country"),
			Category:      str("culture"),
		},
		{
			UserID:        uid(2),
			Title:         "The river story",
			Content:       "A story about how the river was made",
			ContentType:   str("story"),
			ContentFormat: str("audio"),
			Metadata:      str(`{"cultural_protocol":"shared_with_permission","accessibility":"transcript"}`),
			Status:        "published",
			AccessLevel:   str("public"),
			Tags:          str("story,river"),
			Category:      str("narrative"),
		},
		{
			UserID:        uid(3),
			Title:         "Weaving basics",
			Content:       "A hands-on weaving exercise",
			ContentType:   str("practical_exercise"),
			ContentFormat: str("video"),
			Metadata:      str(`{"alt_text":"hands weaving a basket"}`),
			Status:        "published",
			AccessLevel:   str("public"),
			Category:      str("craft"),
			Keywords:      str("weaving"),
		},
		{
			UserID:        uid(3),
			Title:         "Being a mentor",
			Content:       "What mentoring looks like in practice",
			ContentType:   str("article"),
			ContentFormat: str("text"),
			Status:        "published",
			Tags:          str("mentoring"),
		},
		{
			UserID:        uid(4),
			Title:         "Community garden",
			Content:       "Notes from our collaborative planting day",
			ContentType:   str("collaborative"),
			ContentFormat: str("text"),
			Metadata:      str(`{"collaboration":"garden group"}`),
			Status:        "under_cultural_review",
			AccessLevel:   str("public"),
			Tags:          str("garden"),
		},
	}

	steps := []any{
		&users,
		&posts,
		&[]UserPermission{{UserID: 1, PermissionType: "cultural_approver"}, {UserID: 2, PermissionType: "elder_review"}},
		&[]UserRelationship{{MentorID: 3, MenteeID: 4, RelationshipType: "mentor"}},
		&[]Interaction{
			{UserID: 3, InteractionType: "mentor_session"},
			{UserID: 4, InteractionType: "peer_support"},
			{UserID: 1, InteractionType: "consensus"},
		},
		&[]Group{{Name: "Yarning circle", GroupType: "circle"}, {Name: "Elders council", GroupType: "council"}},
		&[]UserPreference{{UserID: 4, PreferenceKey: "language", PreferenceValue: "en"}},
		&[]UserProgress{{UserID: 4, ProgressType: "skill", Subject: "weaving"}},
		&[]UserAchievement{{UserID: 4, AchievementType: str("first_story")}},
	}
	for _, step := range steps {
		if err := create(step); err != nil {
			return total, err
		}
	}
	return total, nil
}
