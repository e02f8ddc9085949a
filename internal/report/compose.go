// compose.go generates a docker compose file fragment declaring one IPv6
// network per server subnet.
//
// The fragment follows Compose's override convention: it only declares the
// top-level `name` and `networks` keys, so it can be listed after the base
// compose file (`docker compose -f base.yml -f networks.yml up`) and merged
// into it. Services opt into their slice by joining the matching network.
package report

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/screensplit/internal/docker"
	"github.com/shinji-kodama/screensplit/internal/layout"
)

// composeProjectName is the Compose project the fragment belongs to.
const composeProjectName = "screensplit"

// composeNetworks is the structure of the generated compose fragment.
type composeNetworks struct {
	// Name sets COMPOSE_PROJECT_NAME.
	Name string `yaml:"name"`

	// Networks maps network names to their definitions.
	Networks map[string]composeNetwork `yaml:"networks"`
}

// composeNetwork is one network definition in the compose fragment.
type composeNetwork struct {
	Driver     string            `yaml:"driver"`
	EnableIPv6 bool              `yaml:"enable_ipv6"`
	IPAM       composeIPAM       `yaml:"ipam"`
	Labels     map[string]string `yaml:"labels"`
}

// composeIPAM holds the address pool of a compose network.
type composeIPAM struct {
	Config []composeIPAMConfig `yaml:"config"`
}

// composeIPAMConfig is a single subnet of a compose network.
type composeIPAMConfig struct {
	Subnet string `yaml:"subnet"`
}

// GenerateComposeNetworks renders the compose networks fragment for p.
//
// Network names come from docker.NetworkName and are zero-padded, and
// yaml.v3 sorts map keys, so the output lists servers in index order and is
// byte-for-byte reproducible.
func GenerateComposeNetworks(p *layout.Plan) ([]byte, error) {
	doc := composeNetworks{
		Name:     composeProjectName,
		Networks: make(map[string]composeNetwork, len(p.Assignments)),
	}

	for _, a := range p.Assignments {
		name := docker.NetworkName(a.Index, p.Layout.Servers)
		labels := docker.BuildLabels(p.Layout, a)
		if err := docker.VerifyLabels(labels, a); err != nil {
			return nil, fmt.Errorf("network %s: %w", name, err)
		}
		doc.Networks[name] = composeNetwork{
			Driver:     docker.NetworkDriver,
			EnableIPv6: true,
			IPAM: composeIPAM{
				Config: []composeIPAMConfig{{Subnet: a.Subnet.String()}},
			},
			Labels: labels,
		}
	}

	yamlBytes, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize compose networks YAML: %w", err)
	}

	header := fmt.Sprintf("# Generated by screensplit for %s\n", p.Layout)
	return []byte(header + string(yamlBytes)), nil
}
