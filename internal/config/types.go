package config

// Groups holds settings applied when groups are formed.
type Groups struct {
	// NameFormat renders a new group's display name from its ordinal and
	// must contain exactly one %d verb.
	NameFormat string `yaml:"name_format"`
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"`
}

// Project holds the location of the project snapshot.
type Project struct {
	// File is the snapshot path, relative to the base directory unless
	// absolute.
	File string `yaml:"file"`
}

// History holds the location of the operation history.
type History struct {
	// File is the history path, relative to the base directory unless
	// absolute. Empty disables the history.
	File string `yaml:"file"`
}

// Config represents the .targetorder/config.yaml file.
type Config struct {
	Groups  Groups  `yaml:"groups"`
	Log     Log     `yaml:"log"`
	Project Project `yaml:"project"`
	History History `yaml:"history"`
}
