package checks

import (
	"fmt"
	"strings"
)

// Philosophical areas the battery covers, in report order.
const (
	CategoryIndigenousKnowledge = "indigenous_knowledge"
	CategoryRelationships       = "relationships"
	CategoryCommunity           = "community"
	CategoryEquity              = "equity"
	CategoryCulturalSafety      = "cultural_safety"
	CategoryHolisticEducation   = "holistic_education"
	CategoryEmpowerment         = "empowerment"
	CategoryKnowledgeSharing    = "knowledge_sharing"
)

// Battery returns the alignment checks in execution order.
func Battery() []Check {
	return []Check{
		{
			Name:        "indigenous_knowledge_representation",
			Category:    CategoryIndigenousKnowledge,
			Description: "Indigenous knowledge is represented and carries cultural protocols",
			Run:         indigenousKnowledgeRepresentation,
		},
		{
			Name:        "elder_and_knowledge_keeper_recognition",
			Category:    CategoryIndigenousKnowledge,
			Description: "Elders and Knowledge Keepers hold recognised roles",
			Run:         elderAndKnowledgeKeeperRecognition,
		},
		{
			Name:        "mentorship_system_implementation",
			Category:    CategoryRelationships,
			Description: "Mentor relationships and mentoring interactions are recorded",
			Run:         mentorshipSystemImplementation,
		},
		{
			Name:        "community_connection_features",
			Category:    CategoryRelationships,
			Description: "Community groups and peer interactions exist",
			Run:         communityConnectionFeatures,
		},
		{
			Name:        "community_content_creation",
			Category:    CategoryCommunity,
			Description: "Content comes from more than one contributor",
			Run:         communityContentCreation,
		},
		{
			Name:        "community_governance_features",
			Category:    CategoryCommunity,
			Description: "Governance groups and decision interactions can be stored",
			Run:         communityGovernanceFeatures,
		},
		{
			Name:        "accessibility_features",
			Category:    CategoryEquity,
			Description: "Content is offered in more than one format",
			Run:         accessibilityFeatures,
		},
		{
			Name:        "equity_tracking_mechanisms",
			Category:    CategoryEquity,
			Description: "User records can describe background, community, location or access needs",
			Run:         equityTrackingMechanisms,
		},
		{
			Name:        "cultural_safety_protocols",
			Category:    CategoryCulturalSafety,
			Description: "Cultural review status and safety metadata can be stored",
			Run:         culturalSafetyProtocols,
		},
		{
			Name:        "respectful_knowledge_sharing",
			Category:    CategoryCulturalSafety,
			Description: "Restricted access levels and sensitivity metadata can be stored",
			Run:         respectfulKnowledgeSharing,
		},
		{
			Name:        "multiple_learning_modalities",
			Category:    CategoryHolisticEducation,
			Description: "More than three content types are in use",
			Run:         multipleLearningModalities,
		},
		{
			Name:        "storytelling_and_narrative_integration",
			Category:    CategoryHolisticEducation,
			Description: "Stories and narratives can be stored",
			Run:         storytellingAndNarrativeIntegration,
		},
		{
			Name:        "user_agency_and_control",
			Category:    CategoryEmpowerment,
			Description: "Users can set preferences or privacy settings",
			Run:         userAgencyAndControl,
		},
		{
			Name:        "skill_development_tracking",
			Category:    CategoryEmpowerment,
			Description: "Skill progress and achievements can be stored",
			Run:         skillDevelopmentTracking,
		},
		{
			Name:        "open_knowledge_sharing",
			Category:    CategoryKnowledgeSharing,
			Description: "More than 30% of content is public",
			Run:         openKnowledgeSharing,
		},
		{
			Name:        "knowledge_discoverability",
			Category:    CategoryKnowledgeSharing,
			Description: "Content is categorised and searchable",
			Run:         knowledgeDiscoverability,
		},
	}
}

// Filter keeps the checks whose name or category equals one of selectors,
// preserving battery order. No selectors returns checks unchanged.
func Filter(checks []Check, selectors []string) ([]Check, error) {
	want := make(map[string]bool)
	var order []string
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if s == "" || want[s] {
			continue
		}
		want[s] = true
		order = append(order, s)
	}
	if len(want) == 0 {
		return checks, nil
	}

	matched := make(map[string]bool)
	var out []Check
	for _, c := range checks {
		if want[c.Name] || want[c.Category] {
			out = append(out, c)
			matched[c.Name] = true
			matched[c.Category] = true
		}
	}

	var unknown []string
	for _, s := range order {
		if !matched[s] {
			unknown = append(unknown, s)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown check or category: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
