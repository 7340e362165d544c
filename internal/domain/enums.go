package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectOnHold   ProjectStatus = "on-hold"
	ProjectComplete ProjectStatus = "complete"
	ProjectArchived ProjectStatus = "archived"
)

// ValidProjectStatuses is the canonical set of accepted project statuses.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectActive: true, ProjectOnHold: true, ProjectComplete: true, ProjectArchived: true,
}

type ItemStatus string

const (
	ItemNotStarted ItemStatus = "not-started"
	ItemInProgress ItemStatus = "in-progress"
	ItemComplete   ItemStatus = "complete"
	ItemDelayed    ItemStatus = "delayed"
)

// ValidItemStatuses is the canonical set of accepted schedule item statuses.
// Transitions between them are free user choices; the engine never forbids
// one and never touches dates in response to a status change.
var ValidItemStatuses = map[ItemStatus]bool{
	ItemNotStarted: true, ItemInProgress: true, ItemComplete: true, ItemDelayed: true,
}
