package config

// Manifest represents the structure of the goodgym.yaml file.
type Manifest struct {
	Version      string            `yaml:"version"`
	Server       ServerDTO         `yaml:"server"`
	Interpreters []string          `yaml:"interpreters"`
	Requirements *[]RequirementDTO `yaml:"requirements"`
	StartDelay   string            `yaml:"start_delay"`
	StopGrace    string            `yaml:"stop_grace"`
}

// ServerDTO describes the server script and the endpoints it advertises.
type ServerDTO struct {
	Script       string `yaml:"script"`
	HTTPURL      string `yaml:"http_url"`
	WebSocketURL string `yaml:"websocket_url"`
}

// RequirementDTO is one entry of the dependency registry.
type RequirementDTO struct {
	Package string `yaml:"package"`
	Module  string `yaml:"module"`
}
