package career

import (
	_ "embed"
	"fmt"

	"FootyCareerwebserver/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed confederations.yaml
var confederationsYAML []byte

// Confederations is the static qualification bracket table, keyed by id.
type Confederations map[string]domain.ConfederationConfig

// LoadConfederations parses the embedded table. It is read once at startup;
// the table never changes at runtime.
func LoadConfederations() (Confederations, error) {
	var raw struct {
		Confederations []domain.ConfederationConfig `yaml:"confederations"`
	}
	if err := yaml.Unmarshal(confederationsYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse confederations: %w", err)
	}
	if len(raw.Confederations) == 0 {
		return nil, fmt.Errorf("confederations: table is empty")
	}

	out := make(Confederations, len(raw.Confederations))
	for _, c := range raw.Confederations {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("confederations: entry missing id or name")
		}
		if c.MatchesToPlay <= 0 {
			return nil, fmt.Errorf("confederation %s: matches_to_play must be positive", c.ID)
		}
		if c.DirectSlots <= 0 {
			return nil, fmt.Errorf("confederation %s: direct_slots must be positive", c.ID)
		}
		if _, dup := out[c.ID]; dup {
			return nil, fmt.Errorf("confederation %s: duplicate id", c.ID)
		}
		out[c.ID] = c
	}
	return out, nil
}

func (c Confederations) Get(id string) (domain.ConfederationConfig, bool) {
	conf, ok := c[id]
	return conf, ok
}
