package models

// PingEvent is one logged scan outcome. Events are immutable once appended;
// the log keeps the newest entries and drops the oldest past its cap.
type PingEvent struct {
	ID        string `json:"id"`
	TagID     string `json:"tag_id"`
	Action    string `json:"action"`
	TaskTitle string `json:"task_title,omitempty"`
	TaskIndex int    `json:"task_index,omitempty"`
	NewStatus *int   `json:"new_status,omitempty"`
	Reader    string `json:"reader"`
	Timestamp string `json:"timestamp"`
}

// MappingStats summarizes tag usage for /api/nfc/stats.
type MappingStats struct {
	TotalMappings int       `json:"total_mappings"`
	UniqueTasks   int       `json:"unique_tasks"`
	RecentPings   int       `json:"recent_pings"`
	MostUsedTag   *TagUsage `json:"most_used_tag,omitempty"`
}

type TagUsage struct {
	TagID      string `json:"tag_id"`
	UsageCount int    `json:"usage_count"`
	MappedTask string `json:"mapped_task"`
}
