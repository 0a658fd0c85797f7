package checks

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"aligncheck/internal/config"
	"aligncheck/internal/report"
	"aligncheck/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var platformSchema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY, name TEXT, role TEXT, background TEXT,
		community TEXT, location TEXT, accessibility_needs TEXT, privacy_settings TEXT)`,
	`CREATE TABLE posts (
		id INTEGER PRIMARY KEY, user_id INTEGER, title TEXT, content TEXT,
		content_type TEXT, content_format TEXT, metadata TEXT, status TEXT,
		access_level TEXT, tags TEXT, category TEXT, keywords TEXT)`,
	`CREATE TABLE user_permissions (id INTEGER PRIMARY KEY, user_id INTEGER, permission_type TEXT)`,
	`CREATE TABLE user_relationships (
		id INTEGER PRIMARY KEY, mentor_id INTEGER, mentee_id INTEGER, relationship_type TEXT)`,
	`CREATE TABLE interactions (id INTEGER PRIMARY KEY, user_id INTEGER, interaction_type TEXT)`,
	`CREATE TABLE "groups" (id INTEGER PRIMARY KEY, name TEXT, group_type TEXT)`,
	`CREATE TABLE user_preferences (id INTEGER PRIMARY KEY, user_id INTEGER, preference_key TEXT, preference_value TEXT)`,
	`CREATE TABLE user_progress (id INTEGER PRIMARY KEY, user_id INTEGER, progress_type TEXT)`,
	`CREATE TABLE user_achievements (id INTEGER PRIMARY KEY, user_id INTEGER, achievement_type TEXT)`,
}

var platformRows = []string{
	`INSERT INTO users (id, name, role, community, privacy_settings) VALUES
		(1, 'Aunty May', 'elder', 'Gumbaynggirr', '{"profile":"community"}'),
		(2, 'Sam', 'mentor', NULL, NULL),
		(3, 'Jo', 'learner', NULL, NULL)`,
	`INSERT INTO posts (user_id, title, content, content_type, content_format, metadata, status, access_level, tags, category) VALUES
		(1, 'Seasons', 'Traditional seasonal knowledge', 'indigenous_knowledge', 'text',
			'{"cultural_protocol":"elder_approved","attribution":"community"}', 'published', 'community_only', 'seasons', 'culture'),
		(2, 'River', 'A story about the river', 'story', 'audio', '{"accessibility":"transcript"}', 'published', 'public', 'story', 'narrative'),
		(2, 'Weaving', 'A hands-on weaving exercise', 'practical_exercise', 'video', '{"alt_text":"weaving"}', 'published', 'public', NULL, 'craft'),
		(3, 'Mentoring', 'How mentoring works', 'article', 'text', NULL, 'published', NULL, 'mentoring', NULL)`,
	`INSERT INTO user_permissions (user_id, permission_type) VALUES (1, 'cultural_approver')`,
	`INSERT INTO user_relationships (mentor_id, mentee_id, relationship_type) VALUES (2, 3, 'mentor')`,
	`INSERT INTO interactions (user_id, interaction_type) VALUES (2, 'mentor_session'), (3, 'peer_support')`,
	`INSERT INTO "groups" (name, group_type) VALUES ('Yarning circle', 'circle')`,
	`INSERT INTO user_preferences (user_id, preference_key, preference_value) VALUES (3, 'language', 'en')`,
	`INSERT INTO user_progress (user_id, progress_type) VALUES (3, 'skill')`,
}

func openFixture(t *testing.T, stmts ...string) *store.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aime_knowledge.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, db.Close())

	src, err := store.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	return src
}

func byName(results []report.Result) map[string]report.Result {
	m := make(map[string]report.Result, len(results))
	for _, r := range results {
		m[r.Check] = r
	}
	return m
}

func TestBattery_FullSchemaPasses(t *testing.T) {
	src := openFixture(t, append(platformSchema, platformRows...)...)

	results := NewRunner(Battery()).Run(context.Background(), src)
	require.Len(t, results, 16)
	for _, r := range results {
		assert.Equal(t, report.OutcomePass, r.Outcome, "%s: %s", r.Check, r.Message)
	}
}

func TestBattery_EmptyTables(t *testing.T) {
	src := openFixture(t, platformSchema...)

	got := byName(NewRunner(Battery()).Run(context.Background(), src))

	failing := []string{
		"indigenous_knowledge_representation",
		"elder_and_knowledge_keeper_recognition",
		"mentorship_system_implementation",
		"community_connection_features",
		"community_content_creation",
		"accessibility_features",
		"multiple_learning_modalities",
		"knowledge_discoverability",
	}
	for _, name := range failing {
		assert.Equal(t, report.OutcomeFail, got[name].Outcome, name)
	}
	for _, name := range []string{
		"community_governance_features",
		"equity_tracking_mechanisms",
		"cultural_safety_protocols",
		"respectful_knowledge_sharing",
		"storytelling_and_narrative_integration",
		"user_agency_and_control",
		"skill_development_tracking",
		"open_knowledge_sharing",
	} {
		assert.Equal(t, report.OutcomePass, got[name].Outcome, "%s: %s", name, got[name].Message)
	}
	assert.Equal(t, "Platform should contain Indigenous knowledge content (got 0, want > 0)",
		got["indigenous_knowledge_representation"].Message)
}

func TestBattery_MissingTablesError(t *testing.T) {
	src := openFixture(t, platformSchema[1], platformRows[1])

	got := byName(NewRunner(Battery()).Run(context.Background(), src))

	assert.Equal(t, report.OutcomeError, got["elder_and_knowledge_keeper_recognition"].Outcome)
	assert.Equal(t, report.OutcomeError, got["community_connection_features"].Outcome)
	assert.Equal(t, report.OutcomeError, got["user_agency_and_control"].Outcome)
	assert.Equal(t, report.OutcomeFail, got["equity_tracking_mechanisms"].Outcome,
		"a missing users table has no columns, which is a failed threshold")
	assert.Equal(t, report.OutcomePass, got["open_knowledge_sharing"].Outcome)
	assert.Contains(t, got["skill_development_tracking"].Message, "count query failed")
}

func TestBattery_ProtocolRatio(t *testing.T) {
	src := openFixture(t,
		platformSchema[1],
		`INSERT INTO posts (content_type, content, metadata) VALUES
			('indigenous_knowledge', 'x', '{"cultural_protocol":"yes"}'),
			('indigenous_knowledge', 'x', NULL),
			('indigenous_knowledge', 'x', NULL)`,
	)

	results := NewRunner(Battery()[:1]).Run(context.Background(), src)
	require.Len(t, results, 1)
	assert.Equal(t, report.OutcomeFail, results[0].Outcome)
	assert.Contains(t, results[0].Message, "At least 50% of Indigenous content")
}

func TestRunner_NilSourceSkipsAll(t *testing.T) {
	results := NewRunner(Battery()).Run(context.Background(), nil)

	require.Len(t, results, len(Battery()))
	for _, r := range results {
		assert.Equal(t, report.OutcomeSkip, r.Outcome)
		assert.Equal(t, MessageUnavailable, r.Message)
	}
	assert.Equal(t, report.Tally{Total: 16, Skipped: 16}, report.Count(results))
}

type fakeQuerier struct{}

func (fakeQuerier) Count(context.Context, string, ...any) (int64, error) { return 0, nil }
func (fakeQuerier) Columns(context.Context, string) ([]string, error)    { return nil, nil }
func (fakeQuerier) HasTable(context.Context, string) (bool, error)       { return false, nil }
func (fakeQuerier) Table(name string) string                             { return name }

type tablesQuerier struct {
	fakeQuerier
	tables map[string]bool
}

func (q tablesQuerier) HasTable(_ context.Context, table string) (bool, error) {
	return q.tables[table], nil
}

func TestUserAgencyAndControl_PreferencesTable(t *testing.T) {
	ctx := context.Background()

	err := userAgencyAndControl(ctx, tablesQuerier{tables: map[string]bool{"user_preferences": true}})
	assert.NoError(t, err, "a preferences table is a control mechanism even when empty")

	err = userAgencyAndControl(ctx, tablesQuerier{})
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Error(), "user control mechanisms")
}

func TestRunner_Classification(t *testing.T) {
	ran := 0
	checks := []Check{
		{Name: "ok", Run: func(context.Context, Querier) error { ran++; return nil }},
		{Name: "below", Run: func(context.Context, Querier) error {
			ran++
			return greater(0, 1, "needs more")
		}},
		{Name: "wrapped_fail", Run: func(context.Context, Querier) error {
			ran++
			return joinContext(isTrue(false, "wrapped"))
		}},
		{Name: "skipped", Run: func(context.Context, Querier) error { ran++; return Skip("not applicable") }},
		{Name: "broken", Run: func(context.Context, Querier) error { ran++; return errors.New("no such table: posts") }},
		{Name: "panics", Run: func(context.Context, Querier) error { ran++; panic("boom") }},
		{Name: "unimplemented"},
		{Name: "last", Run: func(context.Context, Querier) error { ran++; return nil }},
	}

	results := NewRunner(checks).Run(context.Background(), fakeQuerier{})
	require.Len(t, results, len(checks))
	assert.Equal(t, 7, ran, "every implemented check runs")

	want := []report.Outcome{
		report.OutcomePass,
		report.OutcomeFail,
		report.OutcomeFail,
		report.OutcomeSkip,
		report.OutcomeError,
		report.OutcomeError,
		report.OutcomeSkip,
		report.OutcomePass,
	}
	for i, r := range results {
		assert.Equal(t, checks[i].Name, r.Check)
		assert.Equal(t, want[i], r.Outcome, r.Check)
	}
	assert.Equal(t, "needs more (got 0, want > 1)", results[1].Message)
	assert.Equal(t, "panic: boom", results[5].Message)
	assert.Equal(t, "skipped: not applicable", results[3].Message)
}

func joinContext(err error) error {
	return errors.Join(errors.New("context"), err)
}

func TestRunner_Timeout(t *testing.T) {
	slow := Check{Name: "slow", Run: func(ctx context.Context, _ Querier) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	results := NewRunner([]Check{slow}, WithTimeout(10*time.Millisecond)).Run(context.Background(), fakeQuerier{})
	require.Len(t, results, 1)
	assert.Equal(t, report.OutcomeError, results[0].Outcome)
	assert.Contains(t, results[0].Message, "deadline exceeded")
}

func TestWithTimeout_IgnoresNonPositive(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewRunner(nil, WithTimeout(0)).timeout)
	assert.Equal(t, DefaultTimeout, NewRunner(nil, WithTimeout(-time.Second)).timeout)
}
