package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

// Structures and settings are stored as JSON documents. Durations are kept in
// milliseconds so the documents stay readable with sqlite3.

type sectionDoc struct {
	Title      string `json:"title"`
	VideoIndex int    `json:"video_index"`
	DurationMs int64  `json:"duration_ms"`
}

type moduleDoc struct {
	Title         string       `json:"title"`
	Sections      []sectionDoc `json:"sections"`
	TotalMs       int64        `json:"total_ms"`
	TopicKeywords []string     `json:"topic_keywords"`
	Difficulty    string       `json:"difficulty,omitempty"`
}

type topicDoc struct {
	Keyword        string  `json:"keyword"`
	RelevanceScore float64 `json:"relevance_score"`
	VideoCount     int     `json:"video_count"`
}

type clusteringDoc struct {
	Algorithm     string     `json:"algorithm"`
	QualityScore  float64    `json:"quality_score"`
	ClusterCount  int        `json:"cluster_count"`
	ContentTopics []topicDoc `json:"content_topics"`
}

type metadataDoc struct {
	TotalVideos            int     `json:"total_videos"`
	TotalMs                int64   `json:"total_ms"`
	EstimatedDurationHours float64 `json:"estimated_duration_hours"`
	DifficultyLevel        string  `json:"difficulty_level,omitempty"`
	ContentTypeDetected    string  `json:"content_type_detected"`
	OriginalOrderPreserved bool    `json:"original_order_preserved"`
	ProcessingStrategyUsed string  `json:"processing_strategy_used"`
}

type structureDoc struct {
	Modules    []moduleDoc    `json:"modules"`
	Metadata   metadataDoc    `json:"metadata"`
	Clustering *clusteringDoc `json:"clustering,omitempty"`
}

func encodeStructure(cs *domain.CourseStructure) (*string, error) {
	if cs == nil {
		return nil, nil
	}
	doc := structureDoc{
		Modules: make([]moduleDoc, len(cs.Modules)),
		Metadata: metadataDoc{
			TotalVideos:            cs.Metadata.TotalVideos,
			TotalMs:                cs.Metadata.TotalDuration.Milliseconds(),
			EstimatedDurationHours: cs.Metadata.EstimatedDurationHours,
			DifficultyLevel:        string(cs.Metadata.DifficultyLevel),
			ContentTypeDetected:    string(cs.Metadata.ContentTypeDetected),
			OriginalOrderPreserved: cs.Metadata.OriginalOrderPreserved,
			ProcessingStrategyUsed: string(cs.Metadata.ProcessingStrategyUsed),
		},
	}
	for i, m := range cs.Modules {
		md := moduleDoc{
			Title:         m.Title,
			Sections:      make([]sectionDoc, len(m.Sections)),
			TotalMs:       m.TotalDuration.Milliseconds(),
			TopicKeywords: m.TopicKeywords,
			Difficulty:    string(m.Difficulty),
		}
		for j, s := range m.Sections {
			md.Sections[j] = sectionDoc{Title: s.Title, VideoIndex: s.VideoIndex, DurationMs: s.Duration.Milliseconds()}
		}
		doc.Modules[i] = md
	}
	if c := cs.Clustering; c != nil {
		cd := &clusteringDoc{Algorithm: c.Algorithm, QualityScore: c.QualityScore, ClusterCount: c.ClusterCount}
		if c.ContentTopics != nil {
			cd.ContentTopics = make([]topicDoc, len(c.ContentTopics))
			for i, t := range c.ContentTopics {
				cd.ContentTopics[i] = topicDoc(t)
			}
		}
		doc.Clustering = cd
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding structure: %w", err)
	}
	s := string(b)
	return &s, nil
}

func decodeStructure(raw string) (*domain.CourseStructure, error) {
	var doc structureDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decoding structure_json: %w", err)
	}
	cs := &domain.CourseStructure{
		Modules: make([]domain.Module, len(doc.Modules)),
		Metadata: domain.StructureMetadata{
			TotalVideos:            doc.Metadata.TotalVideos,
			TotalDuration:          time.Duration(doc.Metadata.TotalMs) * time.Millisecond,
			EstimatedDurationHours: doc.Metadata.EstimatedDurationHours,
			DifficultyLevel:        domain.DifficultyLevel(doc.Metadata.DifficultyLevel),
			ContentTypeDetected:    domain.ContentType(doc.Metadata.ContentTypeDetected),
			OriginalOrderPreserved: doc.Metadata.OriginalOrderPreserved,
			ProcessingStrategyUsed: domain.StructuringStrategy(doc.Metadata.ProcessingStrategyUsed),
		},
	}
	for i, md := range doc.Modules {
		m := domain.Module{
			Title:         md.Title,
			Sections:      make([]domain.Section, len(md.Sections)),
			TotalDuration: time.Duration(md.TotalMs) * time.Millisecond,
			TopicKeywords: md.TopicKeywords,
			Difficulty:    domain.DifficultyLevel(md.Difficulty),
		}
		for j, sd := range md.Sections {
			m.Sections[j] = domain.Section{
				Title:      sd.Title,
				VideoIndex: sd.VideoIndex,
				Duration:   time.Duration(sd.DurationMs) * time.Millisecond,
			}
		}
		cs.Modules[i] = m
	}
	if cd := doc.Clustering; cd != nil {
		c := &domain.ClusteringMetadata{Algorithm: cd.Algorithm, QualityScore: cd.QualityScore, ClusterCount: cd.ClusterCount}
		if cd.ContentTopics != nil {
			c.ContentTopics = make([]domain.TopicInfo, len(cd.ContentTopics))
			for i, t := range cd.ContentTopics {
				c.ContentTopics[i] = domain.TopicInfo(t)
			}
		}
		cs.Clustering = c
	}
	return cs, nil
}

type advancedDoc struct {
	Strategy                   *string `json:"strategy,omitempty"`
	DifficultyAdaptation       bool    `json:"difficulty_adaptation"`
	SpacedRepetitionEnabled    bool    `json:"spaced_repetition_enabled"`
	CognitiveLoadBalancing     bool    `json:"cognitive_load_balancing"`
	UserExperienceLevel        string  `json:"user_experience_level,omitempty"`
	CustomIntervals            []int   `json:"custom_intervals,omitempty"`
	MaxSessionDurationMinutes  *int    `json:"max_session_duration_minutes,omitempty"`
	PrioritizeDifficultContent bool    `json:"prioritize_difficult_content"`
	AdaptivePacing             bool    `json:"adaptive_pacing"`
}

type settingsDoc struct {
	StartDate            time.Time    `json:"start_date"`
	SessionsPerWeek      int          `json:"sessions_per_week"`
	SessionLengthMinutes int          `json:"session_length_minutes"`
	IncludeWeekends      bool         `json:"include_weekends"`
	Advanced             *advancedDoc `json:"advanced,omitempty"`
}

func encodeSettings(s domain.PlanSettings) (string, error) {
	doc := settingsDoc{
		StartDate:            s.StartDate,
		SessionsPerWeek:      s.SessionsPerWeek,
		SessionLengthMinutes: s.SessionLengthMinutes,
		IncludeWeekends:      s.IncludeWeekends,
	}
	if a := s.Advanced; a != nil {
		ad := &advancedDoc{
			DifficultyAdaptation:       a.DifficultyAdaptation,
			SpacedRepetitionEnabled:    a.SpacedRepetitionEnabled,
			CognitiveLoadBalancing:     a.CognitiveLoadBalancing,
			UserExperienceLevel:        string(a.UserExperienceLevel),
			CustomIntervals:            a.CustomIntervals,
			MaxSessionDurationMinutes:  a.MaxSessionDurationMinutes,
			PrioritizeDifficultContent: a.PrioritizeDifficultContent,
			AdaptivePacing:             a.AdaptivePacing,
		}
		if a.Strategy != nil {
			st := string(*a.Strategy)
			ad.Strategy = &st
		}
		doc.Advanced = ad
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding settings: %w", err)
	}
	return string(b), nil
}

func decodeSettings(raw string) (domain.PlanSettings, error) {
	var doc settingsDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return domain.PlanSettings{}, fmt.Errorf("decoding settings_json: %w", err)
	}
	s := domain.PlanSettings{
		StartDate:            doc.StartDate,
		SessionsPerWeek:      doc.SessionsPerWeek,
		SessionLengthMinutes: doc.SessionLengthMinutes,
		IncludeWeekends:      doc.IncludeWeekends,
	}
	if ad := doc.Advanced; ad != nil {
		a := &domain.AdvancedSettings{
			DifficultyAdaptation:       ad.DifficultyAdaptation,
			SpacedRepetitionEnabled:    ad.SpacedRepetitionEnabled,
			CognitiveLoadBalancing:     ad.CognitiveLoadBalancing,
			UserExperienceLevel:        domain.DifficultyLevel(ad.UserExperienceLevel),
			CustomIntervals:            ad.CustomIntervals,
			MaxSessionDurationMinutes:  ad.MaxSessionDurationMinutes,
			PrioritizeDifficultContent: ad.PrioritizeDifficultContent,
			AdaptivePacing:             ad.AdaptivePacing,
		}
		if ad.Strategy != nil {
			st := domain.DistributionStrategy(*ad.Strategy)
			a.Strategy = &st
		}
		s.Advanced = a
	}
	return s, nil
}
