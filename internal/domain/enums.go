package domain

type ProjectStatus string

const (
	ProjectDraft    ProjectStatus = "draft"
	ProjectSent     ProjectStatus = "sent"
	ProjectAccepted ProjectStatus = "accepted"
	ProjectRejected ProjectStatus = "rejected"
	ProjectArchived ProjectStatus = "archived"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"draft": true, "sent": true, "accepted": true, "rejected": true, "archived": true,
}

type NodeKind string

const (
	NodeProject NodeKind = "project"
	NodeBlock   NodeKind = "block"
	NodeFloor   NodeKind = "floor"
	NodeFlat    NodeKind = "flat"
	NodeZone    NodeKind = "zone"
)

// ValidNodeKinds is the canonical set of accepted node kind strings.
var ValidNodeKinds = map[string]bool{
	"project": true, "block": true, "floor": true, "flat": true, "zone": true,
}
