package domain

// Stage is the workflow stage of one localized content item
type Stage string

const (
	StageDraft              Stage = "draft"               // never published
	StagePublished          Stage = "published"           // draft and live in sync
	StageUnpublishedChanges Stage = "unpublished_changes" // draft ahead of live
)

// AfterEdit returns the stage reached when the draft is edited
func (s Stage) AfterEdit() Stage {
	if s == StagePublished {
		return StageUnpublishedChanges
	}
	if s == "" {
		return StageDraft
	}
	return s
}

// IsPublished reports whether a live version exists for the stage
func (s Stage) IsPublished() bool {
	return s == StagePublished || s == StageUnpublishedChanges
}

// Label returns a short human readable label
func (s Stage) Label() string {
	switch s {
	case StagePublished:
		return "published"
	case StageUnpublishedChanges:
		return "modified"
	default:
		return "draft"
	}
}
