package networkfile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"explorer/internal/domain/explorer"
	"explorer/internal/errs"
	"explorer/internal/ports"
)

type networkEntry struct {
	Name       string `toml:"name"`
	Backend    string `toml:"backend"`
	ChainID    string `toml:"chain_id"`
	Authority  string `toml:"authority"`
	StakeToken string `toml:"stake_token"`
}

type registryFile struct {
	Version  int                     `toml:"version"`
	Networks map[string]networkEntry `toml:"networks"`
}

// Load reads a network registry file. Every [networks.<id>] table becomes one record; the
// table key is the network id used in composed entity ids.
func Load(path string) ([]ports.NetworkRecord, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("network file is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, "read network file")
	}
	return Parse(raw)
}

func Parse(raw []byte) ([]ports.NetworkRecord, error) {
	var file registryFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, errs.Wrap(err, "decode network file")
	}
	if file.Version != 1 {
		return nil, fmt.Errorf("unsupported network file version %d: expected version = 1", file.Version)
	}
	if len(file.Networks) == 0 {
		return nil, errors.New("network file declares no networks")
	}

	ids := make([]string, 0, len(file.Networks))
	for id := range file.Networks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]ports.NetworkRecord, 0, len(ids))
	for _, id := range ids {
		entry := file.Networks[id]
		if err := explorer.ValidateNetworkName(id); err != nil {
			return nil, fmt.Errorf("networks.%s: %w", id, err)
		}
		backend, err := explorer.ParseNetworkBackend(strings.TrimSpace(entry.Backend))
		if err != nil {
			return nil, fmt.Errorf("networks.%s.backend: %w", id, err)
		}
		if strings.TrimSpace(entry.Authority) == "" {
			return nil, fmt.Errorf("networks.%s.authority is required", id)
		}
		if strings.TrimSpace(entry.StakeToken) == "" {
			return nil, fmt.Errorf("networks.%s.stake_token is required", id)
		}

		record := ports.NetworkRecord{
			ID:         id,
			Name:       strings.TrimSpace(entry.Name),
			Backend:    backend,
			Authority:  strings.TrimSpace(entry.Authority),
			StakeToken: strings.TrimSpace(entry.StakeToken),
		}
		if record.Name == "" {
			record.Name = id
		}
		if chainID := strings.TrimSpace(entry.ChainID); chainID != "" {
			record.ChainID = &chainID
		}
		out = append(out, record)
	}
	return out, nil
}
