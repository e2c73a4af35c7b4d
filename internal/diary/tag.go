package diary

// Tag is a user-defined label attachable to entries. Names are unique per
// diary.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`

	// UsageCount is the number of live (non-deleted) entries referencing
	// the tag. It is computed from the join table on read and never stored,
	// so it cannot drift from the true reference count.
	UsageCount int `json:"usage_count"`
}
