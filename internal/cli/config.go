package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL       string
	TeamID          string
	TeamFile        string
	AdminPassphrase string
	Output          string
	Verbose         bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:       getEnvOrDefault("ROUND2_SERVER", "http://localhost:8080"),
		TeamID:          os.Getenv("ROUND2_TEAM_ID"),
		TeamFile:        getEnvOrDefault("ROUND2_TEAM_FILE", defaultTeamFile()),
		AdminPassphrase: os.Getenv("ROUND2_ADMIN_PASSPHRASE"),
		Output:          "text",
		Verbose:         false,
	}
}

// LoadTeamID loads the saved team ID from file if not already set
func (c *Config) LoadTeamID() error {
	if c.TeamID != "" {
		return nil
	}

	data, err := os.ReadFile(c.TeamFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No team file is fine
		}
		return err
	}

	c.TeamID = strings.TrimSpace(string(data))
	return nil
}

// SaveTeamID saves the team ID to the team file
func (c *Config) SaveTeamID(teamID string) error {
	c.TeamID = teamID

	dir := filepath.Dir(c.TeamFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.TeamFile, []byte(teamID), 0600)
}

func defaultTeamFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".round2/team"
	}
	return filepath.Join(home, ".round2", "team")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
