package consts

import (
	"os"
	"path/filepath"
)

const (
	FleetDirName        = ".fleet"
	ConfigFileName      = "config.yaml"
	AgentsFileName      = "agents.json"
	CredentialsFileName = "credentials.yaml"
)

func FleetHomeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, FleetDirName)
}

func DefaultConfigPath() string {
	return filepath.Join(FleetHomeDir(), ConfigFileName)
}

func DefaultAgentsPath() string {
	return filepath.Join(FleetHomeDir(), AgentsFileName)
}

func DefaultCredentialsPath() string {
	return filepath.Join(FleetHomeDir(), CredentialsFileName)
}
