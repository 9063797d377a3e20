// Package profile persists named connection profiles for the workbench.
//
// Profiles live in an embedded SQLite database under the user config
// directory. The set can be exported to and imported from YAML so a
// workbench setup travels with dotfiles.
package profile

import (
	"fmt"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
)

// Profile is one saved connection. Username, password, and database are
// optional; engines that do not use them leave them empty.
type Profile struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// Validate checks the fields required to address and open the profile.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Type == "" {
		return fmt.Errorf("profile type is required")
	}
	if !adapter.IsRegistered(p.Type) {
		return fmt.Errorf("unknown profile type %q\nAvailable types: %v", p.Type, adapter.ListAdapters())
	}
	return nil
}

// AdapterConfig converts the profile into an adapter connection config.
func (p *Profile) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     p.Type,
		Host:     p.Host,
		Port:     p.Port,
		Username: p.Username,
		Password: p.Password,
		Database: p.Database,
	}
}
