package config

// GarageConfig holds the settings of the managed garage
type GarageConfig struct {
	// Name the garage document is stored under
	Name string `mapstructure:"name" validate:"required"`

	// Optional garage document imported on startup when nothing is stored yet
	SeedFile string `mapstructure:"seed_file"`

	// Attempts of one read-modify-write cycle before a version conflict is
	// reported to the caller
	MaxRetries int `mapstructure:"max_retries" validate:"min=1,max=50"`
}
