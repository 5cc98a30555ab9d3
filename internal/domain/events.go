package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRouteChanged    EventType = "RouteChanged"
	EventSearchStarted   EventType = "SearchStarted"
	EventResultsFetched  EventType = "ResultsFetched"
	EventSearchCompleted EventType = "SearchCompleted"
	EventFetchFailed     EventType = "FetchFailed"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RouteChangedEvent is emitted when the user navigates to a new route
type RouteChangedEvent struct {
	Path  string
	Query string
}

func (e RouteChangedEvent) Type() EventType { return EventRouteChanged }

// SearchStartedEvent is emitted when a search cycle begins
type SearchStartedEvent struct {
	Query      string
	Generation uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// ResultsFetchedEvent is emitted when one of the two result lists arrives
type ResultsFetchedEvent struct {
	Query      string
	Generation uint64
	Schema     Schema
	Count      int
}

func (e ResultsFetchedEvent) Type() EventType { return EventResultsFetched }

// SearchCompletedEvent is emitted when both result lists have arrived
type SearchCompletedEvent struct {
	Query            string
	Generation       uint64
	TotalConcepts    int
	TotalAnnotations int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// FetchFailedEvent is emitted when one of the two fetches fails
type FetchFailedEvent struct {
	Query      string
	Generation uint64
	Schema     Schema
	Err        error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
