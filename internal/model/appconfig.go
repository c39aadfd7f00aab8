package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default optimizer settings applied to new projects
	DefaultPopulationFactor        int     `json:"default_population_factor"`
	DefaultElitesPercentage        float64 `json:"default_elites_percentage"`
	DefaultMutantsPercentage       float64 `json:"default_mutants_percentage"`
	DefaultInheritEliteProbability float64 `json:"default_inherit_elite_probability"`
	DefaultMaxGenerations          int     `json:"default_max_generations"`
	DefaultMaxGenStagnation        int     `json:"default_max_generations_no_improvement"`
	DefaultWorkers                 int     `json:"default_workers"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultPopulationFactor:        defaults.PopulationFactor,
		DefaultElitesPercentage:        defaults.ElitesPercentage,
		DefaultMutantsPercentage:       defaults.MutantsPercentage,
		DefaultInheritEliteProbability: defaults.InheritEliteProbability,
		DefaultMaxGenerations:          defaults.MaxGenerations,
		DefaultMaxGenStagnation:        defaults.MaxGenerationsNoImprovement,
		DefaultWorkers:                 defaults.Workers,
		AutoSaveInterval:               0,
		RecentProjects:                 []string{},
		Theme:                          "system",
	}
}

// maxRecentProjects bounds the recent-projects list.
const maxRecentProjects = 10

// Sanitize clamps hand-edited or stale config values into valid ranges so a
// bad config file cannot feed invalid optimizer parameters into new projects.
func (c *AppConfig) Sanitize() {
	defaults := DefaultAppConfig()
	if c.DefaultPopulationFactor < 1 {
		c.DefaultPopulationFactor = defaults.DefaultPopulationFactor
	}
	if c.DefaultElitesPercentage < 0 || c.DefaultElitesPercentage > 1 {
		c.DefaultElitesPercentage = defaults.DefaultElitesPercentage
	}
	if c.DefaultMutantsPercentage < 0 || c.DefaultMutantsPercentage > 1 {
		c.DefaultMutantsPercentage = defaults.DefaultMutantsPercentage
	}
	if c.DefaultInheritEliteProbability < 0 || c.DefaultInheritEliteProbability > 1 {
		c.DefaultInheritEliteProbability = defaults.DefaultInheritEliteProbability
	}
	if c.DefaultMaxGenerations < 1 {
		c.DefaultMaxGenerations = defaults.DefaultMaxGenerations
	}
	if c.DefaultMaxGenStagnation < 1 {
		c.DefaultMaxGenStagnation = defaults.DefaultMaxGenStagnation
	}
	if c.DefaultWorkers < 0 {
		c.DefaultWorkers = 0
	}
	if c.AutoSaveInterval < 0 {
		c.AutoSaveInterval = 0
	}
	switch c.Theme {
	case "light", "dark", "system":
	default:
		c.Theme = "system"
	}
	if c.RecentProjects == nil {
		c.RecentProjects = []string{}
	}
	if len(c.RecentProjects) > maxRecentProjects {
		c.RecentProjects = c.RecentProjects[:maxRecentProjects]
	}
}

// RememberProject moves path to the front of the recent-projects list,
// dropping duplicates and trimming the tail.
func (c *AppConfig) RememberProject(path string) {
	recents := make([]string, 0, len(c.RecentProjects)+1)
	recents = append(recents, path)
	for _, p := range c.RecentProjects {
		if p != path {
			recents = append(recents, p)
		}
	}
	if len(recents) > maxRecentProjects {
		recents = recents[:maxRecentProjects]
	}
	c.RecentProjects = recents
}

// ApplyToSettings copies the default values from AppConfig into a
// PackSettings struct. This is used when creating a new project so it
// inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.PopulationFactor = c.DefaultPopulationFactor
	s.ElitesPercentage = c.DefaultElitesPercentage
	s.MutantsPercentage = c.DefaultMutantsPercentage
	s.InheritEliteProbability = c.DefaultInheritEliteProbability
	s.MaxGenerations = c.DefaultMaxGenerations
	s.MaxGenerationsNoImprovement = c.DefaultMaxGenStagnation
	s.Workers = c.DefaultWorkers
}
