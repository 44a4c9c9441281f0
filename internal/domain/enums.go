package domain

type DifficultyLevel string

const (
	DifficultyUnknown      DifficultyLevel = ""
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
	DifficultyExpert       DifficultyLevel = "expert"
	// DifficultyMixed only appears in course-level metadata, when both
	// beginner and advanced vocabulary occur in the titles.
	DifficultyMixed DifficultyLevel = "mixed"
)

// Rank orders the four concrete levels Beginner < Intermediate < Advanced < Expert.
// Unknown and Mixed rank as Intermediate.
func (d DifficultyLevel) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyAdvanced:
		return 2
	case DifficultyExpert:
		return 3
	default:
		return 1
	}
}

func (d DifficultyLevel) Label() string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	case DifficultyExpert:
		return "Expert"
	case DifficultyMixed:
		return "Mixed"
	default:
		return "Unknown"
	}
}

// ValidDifficultyLevels is the canonical set of accepted experience levels.
var ValidDifficultyLevels = map[string]DifficultyLevel{
	"beginner":     DifficultyBeginner,
	"intermediate": DifficultyIntermediate,
	"advanced":     DifficultyAdvanced,
	"expert":       DifficultyExpert,
}

type DistributionStrategy string

const (
	StrategyModuleBased      DistributionStrategy = "module_based"
	StrategyTimeBased        DistributionStrategy = "time_based"
	StrategyHybrid           DistributionStrategy = "hybrid"
	StrategyDifficultyBased  DistributionStrategy = "difficulty_based"
	StrategySpacedRepetition DistributionStrategy = "spaced_repetition"
	StrategyAdaptive         DistributionStrategy = "adaptive"
	// StrategySequential is recorded on plans produced by the
	// order-preserving path. It cannot be requested as an override.
	StrategySequential DistributionStrategy = "sequential"
)

// AllStrategies lists the selectable distribution strategies in display order.
var AllStrategies = []DistributionStrategy{
	StrategyModuleBased,
	StrategyTimeBased,
	StrategyHybrid,
	StrategyDifficultyBased,
	StrategySpacedRepetition,
	StrategyAdaptive,
}

func (s DistributionStrategy) Label() string {
	switch s {
	case StrategyModuleBased:
		return "Module-based"
	case StrategyTimeBased:
		return "Time-based"
	case StrategyHybrid:
		return "Hybrid"
	case StrategyDifficultyBased:
		return "Difficulty-based"
	case StrategySpacedRepetition:
		return "Spaced Repetition"
	case StrategyAdaptive:
		return "Adaptive"
	case StrategySequential:
		return "Sequential"
	default:
		return string(s)
	}
}

func (s DistributionStrategy) Description() string {
	switch s {
	case StrategyModuleBased:
		return "Respects module boundaries and logical content grouping"
	case StrategyTimeBased:
		return "Focuses on even time distribution across sessions"
	case StrategyHybrid:
		return "Balances both module structure and time constraints"
	case StrategyDifficultyBased:
		return "Adapts pacing based on content difficulty"
	case StrategySpacedRepetition:
		return "Optimizes for memory retention with review sessions"
	case StrategyAdaptive:
		return "Orders and spaces sessions by type, difficulty and load"
	case StrategySequential:
		return "Preserves the original video order"
	default:
		return ""
	}
}

// ParseStrategy accepts the canonical value ("time_based") or a hyphenated
// alias ("time-based").
func ParseStrategy(s string) (DistributionStrategy, bool) {
	norm := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '-' || c == ' ':
			c = '_'
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		norm = append(norm, c)
	}
	for _, st := range AllStrategies {
		if string(st) == string(norm) {
			return st, true
		}
	}
	return "", false
}

type StructuringStrategy string

const (
	StructuringHierarchical StructuringStrategy = "hierarchical"
	StructuringSequential   StructuringStrategy = "sequential"
	StructuringThematic     StructuringStrategy = "thematic"
	StructuringFallback     StructuringStrategy = "fallback"
)

type ContentType string

const (
	ContentSequential   ContentType = "sequential"
	ContentThematic     ContentType = "thematic"
	ContentHierarchical ContentType = "hierarchical"
	ContentMixed        ContentType = "mixed"
)

type SessionType string

const (
	SessionIntroduction SessionType = "introduction"
	SessionPractice     SessionType = "practice"
	SessionProject      SessionType = "project"
	SessionReview       SessionType = "review"
	SessionAssessment   SessionType = "assessment"
	SessionBreak        SessionType = "break"
)

// Order is the Adaptive strategy's primary sort key.
func (t SessionType) Order() int {
	switch t {
	case SessionIntroduction:
		return 0
	case SessionPractice:
		return 1
	case SessionProject:
		return 2
	case SessionReview:
		return 3
	case SessionAssessment:
		return 4
	default:
		return 5
	}
}

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeFlexible  TimeOfDay = "flexible"
)

// ItemKind distinguishes study sessions from items the planner synthesizes.
type ItemKind string

const (
	ItemStudy ItemKind = "study"
	// ItemRepetition is a spaced-repetition review pointing at videos that
	// already appear in an earlier study item.
	ItemRepetition ItemKind = "repetition"
	ItemReview     ItemKind = "review"
	ItemRest       ItemKind = "rest"
)

// IsSynthetic reports whether the item was inserted by the planner rather
// than packed from course videos.
func (k ItemKind) IsSynthetic() bool {
	return k == ItemReview || k == ItemRest || k == ItemRepetition
}

// OptimizationPass names one step of the plan optimizer. Plans record the
// passes already applied so a second run leaves them untouched.
type OptimizationPass string

const (
	PassReviews       OptimizationPass = "reviews"
	PassLoadBalance   OptimizationPass = "load_balance"
	PassBufferDays    OptimizationPass = "buffer_days"
	PassTiming        OptimizationPass = "timing"
	PassConsolidation OptimizationPass = "consolidation"
	PassNormalization OptimizationPass = "normalization"
)
