package checks

import (
	"context"
	"slices"
)

// counter runs COUNT queries in order and keeps the first query error.
// Every query of a check runs before any assertion, so a broken table
// surfaces as an error even when an earlier threshold would fail.
type counter struct {
	ctx context.Context
	q   Querier
	err error
}

func newCounter(ctx context.Context, q Querier) *counter {
	return &counter{ctx: ctx, q: q}
}

func (c *counter) count(query string) int64 {
	if c.err != nil {
		return 0
	}
	n, err := c.q.Count(c.ctx, query)
	if err != nil {
		c.err = err
	}
	return n
}

// from builds "SELECT <expr> FROM <table> [WHERE <where>]" with the table quoted.
func from(q Querier, expr, table, where string) string {
	query := "SELECT " + expr + " FROM " + q.Table(table)
	if where != "" {
		query += " WHERE " + where
	}
	return query
}

func countPresent(cols []string, want ...string) int {
	n := 0
	for _, w := range want {
		if slices.Contains(cols, w) {
			n++
		}
	}
	return n
}

// =============================================================================
// 1. INDIGENOUS KNOWLEDGE SYSTEMS
// =============================================================================

func indigenousKnowledgeRepresentation(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	indigenous := c.count(from(q, "COUNT(*)", "posts", `
		content_type = 'indigenous_knowledge'
		OR content LIKE '%Indigenous%'
		OR content LIKE '%Traditional%'
		OR content LIKE '%Aboriginal%'`))
	protocols := c.count(from(q, "COUNT(*)", "posts", `
		metadata LIKE '%cultural_protocol%'
		OR metadata LIKE '%permission%'
		OR metadata LIKE '%attribution%'`))
	if c.err != nil {
		return c.err
	}

	return firstErr(
		greater(indigenous, 0, "Platform should contain Indigenous knowledge content"),
		greaterOrEqual(float64(protocols)/float64(max(indigenous, 1)), 0.5,
			"At least 50% of Indigenous content should have cultural protocols"),
	)
}

func elderAndKnowledgeKeeperRecognition(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	keepers := c.count(from(q, "COUNT(*)", "users", `
		role LIKE '%elder%'
		OR role LIKE '%knowledge_keeper%'
		OR role LIKE '%cultural_advisor%'`))
	// Permission records are checked for presence only; no threshold.
	c.count(from(q, "COUNT(*)", "user_permissions", `
		permission_type LIKE '%cultural%'
		OR permission_type LIKE '%elder%'`))
	if c.err != nil {
		return c.err
	}

	return greater(keepers, 0, "Platform should recognize Elders and Knowledge Keepers")
}

// =============================================================================
// 2. RELATIONSHIP-CENTERED LEARNING
// =============================================================================

func mentorshipSystemImplementation(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	relationships := c.count(from(q, "COUNT(*)", "user_relationships", "relationship_type = 'mentor'"))
	interactions := c.count(from(q, "COUNT(*)", "interactions", "interaction_type LIKE '%mentor%'"))
	if c.err != nil {
		return c.err
	}

	return firstErr(
		greater(relationships, 0, "Platform should support mentorship relationships"),
		greater(interactions, 0, "Platform should track mentorship interactions"),
	)
}

func communityConnectionFeatures(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	groups := c.count(from(q, "COUNT(*)", "groups", "group_type = 'community' OR group_type = 'circle'"))
	peers := c.count(from(q, "COUNT(*)", "interactions", `
		interaction_type = 'peer_support'
		OR interaction_type = 'collaboration'`))
	if c.err != nil {
		return c.err
	}

	return firstErr(
		greater(groups, 0, "Platform should support community groups"),
		greater(peers, 0, "Platform should facilitate peer interactions"),
	)
}

// =============================================================================
// 3. COMMUNITY-DRIVEN DEVELOPMENT
// =============================================================================

func communityContentCreation(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	contributors := c.count(from(q, "COUNT(DISTINCT user_id)", "posts", "user_id IS NOT NULL"))
	collaborative := c.count(from(q, "COUNT(*)", "posts", `
		content_type = 'collaborative'
		OR metadata LIKE '%collaboration%'`))
	if c.err != nil {
		return c.err
	}

	return firstErr(
		greater(contributors, 1, "Platform should have multiple content contributors"),
		greaterOrEqual(collaborative, 0, "Platform should support collaborative content"),
	)
}

func communityGovernanceFeatures(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	governance := c.count(from(q, "COUNT(*)", "groups", `
		group_type = 'governance'
		OR group_type = 'council'
		OR group_type = 'committee'`))
	c.count(from(q, "COUNT(*)", "interactions", `
		interaction_type = 'vote'
		OR interaction_type = 'consensus'
		OR interaction_type = 'decision'`))
	if c.err != nil {
		return c.err
	}

	return greaterOrEqual(governance, 0, "Platform may support governance structures")
}

// =============================================================================
// 4. SYSTEMIC INEQUITY ADDRESSING
// =============================================================================

func accessibilityFeatures(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	accessible := c.count(from(q, "COUNT(*)", "posts", `
		metadata LIKE '%accessibility%'
		OR metadata LIKE '%alt_text%'
		OR metadata LIKE '%audio_description%'`))
	formats := c.count(from(q, "COUNT(DISTINCT content_format)", "posts", "content_format IS NOT NULL"))
	if c.err != nil {
		return c.err
	}

	return firstErr(
		greaterOrEqual(accessible, 0, "Platform should consider accessibility"),
		greater(formats, 1, "Platform should support multiple content formats"),
	)
}

func equityTrackingMechanisms(ctx context.Context, q Querier) error {
	cols, err := q.Columns(ctx, "users")
	if err != nil {
		return err
	}
	support := countPresent(cols, "background", "community", "location", "accessibility_needs")
	return greater(support, 0, "Platform should have mechanisms to understand user diversity")
}

// =============================================================================
// 5. CULTURAL SAFETY & RESPECT
// =============================================================================

func culturalSafetyProtocols(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	review := c.count(from(q, "COUNT(*)", "posts", `
		status = 'under_cultural_review'
		OR metadata LIKE '%cultural_review%'`))
	c.count(from(q, "COUNT(*)", "posts", `
		metadata LIKE '%cultural_safety%'
		OR metadata LIKE '%cultural_protocol%'`))
	if c.err != nil {
		return c.err
	}

	return greaterOrEqual(review, 0, "Platform may implement cultural review processes")
}

func respectfulKnowledgeSharing(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	restricted := c.count(from(q, "COUNT(*)", "posts", `
		access_level = 'restricted'
		OR access_level = 'community_only'
		OR access_level = 'cultural_members'`))
	c.count(from(q, "COUNT(*)", "posts", `
		metadata LIKE '%sacred%'
		OR metadata LIKE '%sensitive%'
		OR metadata LIKE '%ceremonial%'`))
	if c.err != nil {
		return c.err
	}

	return greaterOrEqual(restricted, 0, "Platform should support restricted access content")
}

// =============================================================================
// 6. HOLISTIC EDUCATION APPROACH
// =============================================================================

func multipleLearningModalities(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	types := c.count(from(q, "COUNT(DISTINCT content_type)", "posts", "content_type IS NOT NULL"))
	experiential := c.count(from(q, "COUNT(*)", "posts", `
		content_type = 'practical_exercise'
		OR content_type = 'story'
		OR content_type = 'experiential'
		OR content LIKE '%hands-on%'`))
	if c.err != nil {
		return c.err
	}

	return firstErr(
		greater(types, 3, "Platform should support diverse content types"),
		greaterOrEqual(experiential, 0, "Platform should include experiential learning"),
	)
}

func storytellingAndNarrativeIntegration(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	stories := c.count(from(q, "COUNT(*)", "posts", `
		content_type = 'story'
		OR content_type = 'narrative'
		OR content LIKE '%story%'
		OR content LIKE '%narrative%'`))
	if c.err != nil {
		return c.err
	}

	return greaterOrEqual(stories, 0, "Platform should support storytelling approaches")
}

// =============================================================================
// 7. EMPOWERMENT & SELF-DETERMINATION
// =============================================================================

func userAgencyAndControl(ctx context.Context, q Querier) error {
	prefs, err := q.HasTable(ctx, "user_preferences")
	if err != nil {
		return err
	}
	c := newCounter(ctx, q)
	privacy := c.count(from(q, "COUNT(*)", "users", "privacy_settings IS NOT NULL"))
	if c.err != nil {
		return c.err
	}

	return isTrue(prefs || privacy > 0, "Platform should provide user control mechanisms")
}

func skillDevelopmentTracking(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	skills := c.count(from(q, "COUNT(*)", "user_progress", "progress_type = 'skill' OR progress_type = 'competency'"))
	achievements := c.count(from(q, "COUNT(*)", "user_achievements", "achievement_type IS NOT NULL"))
	if c.err != nil {
		return c.err
	}

	return greaterOrEqual(skills+achievements, 0, "Platform may support skill development tracking")
}

// =============================================================================
// 8. KNOWLEDGE ACCESSIBILITY & SHARING
// =============================================================================

func openKnowledgeSharing(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	public := c.count(from(q, "COUNT(*)", "posts", "access_level = 'public' OR access_level IS NULL"))
	total := c.count(from(q, "COUNT(*)", "posts", ""))
	if c.err != nil {
		return c.err
	}

	if total == 0 {
		return nil
	}
	return greater(float64(public)/float64(total), 0.3, "At least 30% of content should be publicly accessible")
}

func knowledgeDiscoverability(ctx context.Context, q Querier) error {
	c := newCounter(ctx, q)
	categorized := c.count(from(q, "COUNT(*)", "posts", "tags IS NOT NULL OR category IS NOT NULL"))
	if c.err != nil {
		return c.err
	}
	cols, err := q.Columns(ctx, "posts")
	if err != nil {
		return err
	}
	searchable := countPresent(cols, "title", "content", "tags", "keywords")

	return firstErr(
		greater(categorized, 0, "Content should be categorized for discoverability"),
		greater(searchable, 2, "Platform should support content searchability"),
	)
}
