package messaging

type ChangeTopic string

const (
	// SkillsChanged is published when the skill data files were replaced.
	SkillsChanged ChangeTopic = "skills_changed"
	// SearchTracking carries search events.
	SearchTracking ChangeTopic = "tracking"
)

type RabbitConfig struct {
	Url    string
	Prefix string
}

// ReloadNotice is the body of a SkillsChanged message.
type ReloadNotice struct {
	Reason string   `json:"reason,omitempty"`
	Files  []string `json:"files,omitempty"`
}
