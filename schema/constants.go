package schema

// Custom string types for type safety.
type (
	// EventCategory represents the category of a recorded observation.
	EventCategory string

	// MetricKind represents a computable productivity metric.
	MetricKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for event storage.
	DatabaseBackend string
)

// All event categories supported.
const (
	SatisfactionEvent          EventCategory = "SATISFACTION"
	TeamSizeChangeEvent        EventCategory = "TEAM_SIZE_CHANGE"
	DeploymentEvent            EventCategory = "DEPLOYMENT"
	DeploymentFailureEvent     EventCategory = "DEPLOYMENT_FAILURE"
	DeploymentFailureFixEvent  EventCategory = "DEPLOYMENT_FAILURE_FIX"
	LinesOfCodeEvent           EventCategory = "LINES_OF_CODE"
	CommitEvent                EventCategory = "COMMIT"
	CommunicationEventRecorded EventCategory = "COMMUNICATION_EVENT"
	PerceivedProductivityEvent EventCategory = "PERCEIVED_PRODUCTIVITY"
	WorkSessionEvent           EventCategory = "WORK_SESSION"
	AISuggestionResultEvent    EventCategory = "AI_SUGGESTION_RESULT"
	LinesOfCodeAIEvent         EventCategory = "LINES_OF_CODE_AI"
)

// All metric kinds supported.
const (
	Satisfaction           MetricKind = "SATISFACTION"
	Retention              MetricKind = "RETENTION"
	DeploymentFrequency    MetricKind = "DEPLOYMENT_FREQUENCY"
	ChangeFailureRate      MetricKind = "CHANGE_FAILURE_RATE"
	MeanTimeToRecover      MetricKind = "MEAN_TIME_TO_RECOVER"
	LinesOfCode            MetricKind = "LINES_OF_CODE"
	AILinesOfCode          MetricKind = "AI_LINES_OF_CODE"
	NumberOfCommits        MetricKind = "NUMBER_OF_COMMITS"
	CommunicationFrequency MetricKind = "COMMUNICATION_FREQUENCY"
	PerceivedProductivity  MetricKind = "PERCEIVED_PRODUCTIVITY"
	LackOfInterruptions    MetricKind = "LACK_OF_INTERRUPTIONS"
	LeadTimeForChanges     MetricKind = "LEAD_TIME_FOR_CHANGES"
	AIAcceptanceRate       MetricKind = "AI_ACCEPTANCE_RATE"
	AICodeVolume           MetricKind = "AI_CODE_VOLUME"
	AIReworkRate           MetricKind = "AI_REWORK_RATE"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// AllMetricKinds lists every metric kind in display order.
var AllMetricKinds = []MetricKind{
	Satisfaction,
	Retention,
	DeploymentFrequency,
	ChangeFailureRate,
	MeanTimeToRecover,
	LeadTimeForChanges,
	LinesOfCode,
	AILinesOfCode,
	NumberOfCommits,
	CommunicationFrequency,
	PerceivedProductivity,
	LackOfInterruptions,
	AIAcceptanceRate,
	AICodeVolume,
	AIReworkRate,
}

// AllEventCategories lists every event category in display order.
var AllEventCategories = []EventCategory{
	SatisfactionEvent,
	TeamSizeChangeEvent,
	DeploymentEvent,
	DeploymentFailureEvent,
	DeploymentFailureFixEvent,
	LinesOfCodeEvent,
	LinesOfCodeAIEvent,
	CommitEvent,
	CommunicationEventRecorded,
	PerceivedProductivityEvent,
	WorkSessionEvent,
	AISuggestionResultEvent,
}

// ValidEventCategories lists all valid event categories.
var ValidEventCategories = map[EventCategory]struct{}{
	SatisfactionEvent:          {},
	TeamSizeChangeEvent:        {},
	DeploymentEvent:            {},
	DeploymentFailureEvent:     {},
	DeploymentFailureFixEvent:  {},
	LinesOfCodeEvent:           {},
	CommitEvent:                {},
	CommunicationEventRecorded: {},
	PerceivedProductivityEvent: {},
	WorkSessionEvent:           {},
	AISuggestionResultEvent:    {},
	LinesOfCodeAIEvent:         {},
}

// ValidMetricKinds lists all valid metric kinds.
var ValidMetricKinds = map[MetricKind]struct{}{
	Satisfaction:           {},
	Retention:              {},
	DeploymentFrequency:    {},
	ChangeFailureRate:      {},
	MeanTimeToRecover:      {},
	LinesOfCode:            {},
	AILinesOfCode:          {},
	NumberOfCommits:        {},
	CommunicationFrequency: {},
	PerceivedProductivity:  {},
	LackOfInterruptions:    {},
	LeadTimeForChanges:     {},
	AIAcceptanceRate:       {},
	AICodeVolume:           {},
	AIReworkRate:           {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// LowerIsBetter marks the kinds where a higher raw value signals worse
// performance. Their z-scores are negated once after normalization so a
// positive score always means improvement over the baseline.
var LowerIsBetter = map[MetricKind]struct{}{
	ChangeFailureRate:  {},
	MeanTimeToRecover:  {},
	LeadTimeForChanges: {},
	AIReworkRate:       {},
}

var metricDescriptions = map[MetricKind]string{
	Satisfaction:           "Developer satisfaction scores",
	Retention:              "Team retention rate",
	DeploymentFrequency:    "Number of daily deployments",
	ChangeFailureRate:      "Rate of deployment failures",
	MeanTimeToRecover:      "Average recovery time from failures (minutes)",
	LinesOfCode:            "Lines of code written",
	AILinesOfCode:          "AI-generated lines of code written",
	NumberOfCommits:        "Number of commits",
	CommunicationFrequency: "Communication event frequency",
	PerceivedProductivity:  "Self-reported productivity",
	LackOfInterruptions:    "Uninterrupted work session quality",
	LeadTimeForChanges:     "Time from commit to deployment (minutes)",
	AIAcceptanceRate:       "Rate of AI suggestions accepted",
	AICodeVolume:           "Ratio of AI-generated code",
	AIReworkRate:           "Rate of AI-generated code requiring rework",
}

// Description returns a short human-readable summary of the metric kind.
func (k MetricKind) Description() string {
	if desc, ok := metricDescriptions[k]; ok {
		return desc
	}
	return "No description available"
}
