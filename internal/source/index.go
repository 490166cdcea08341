package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/util"
)

// Entry is one configured source as stored in an index file.
type Entry struct {
	Type   string   `json:"type" toml:"type"`
	Scope  string   `json:"scope" toml:"scope"`
	URL    string   `json:"url,omitempty" toml:"url,omitempty"`
	Path   string   `json:"path,omitempty" toml:"path,omitempty"`
	Skills []string `json:"skills,omitempty" toml:"skills,omitempty"`
}

// Validate checks that the entry can produce a provider.
func (e Entry) Validate() error {
	if e.Scope == "" {
		return errors.New("source scope is required")
	}
	if strings.ContainsAny(e.Scope, `/\`) || strings.HasPrefix(e.Scope, "@") {
		return fmt.Errorf("source scope %q must not contain '/', '\\' or a leading '@'", e.Scope)
	}
	switch Kind(e.Type) {
	case KindGit:
		if e.URL == "" {
			return fmt.Errorf("git source %q requires a url", e.Scope)
		}
	case KindDirectory:
		if e.Path == "" {
			return fmt.Errorf("directory source %q requires a path", e.Scope)
		}
	default:
		return fmt.Errorf("unknown source type %q (valid: git, directory)", e.Type)
	}
	return nil
}

// Index is the content of a source index file.
type Index struct {
	Sources []Entry `json:"sources" toml:"sources"`
}

// LoadIndex reads an index file. The format follows the file extension:
// .toml is TOML, anything else JSON. A missing file is an empty index.
func LoadIndex(path string) (*Index, error) {
	idx := &Index{}

	// #nosec G304 - path is under the skillhub root
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("failed to read index %q: %w", path, err)
	}

	if isTOML(path) {
		err = toml.Unmarshal(data, idx)
	} else {
		err = json.Unmarshal(data, idx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse index %q: %w", path, err)
	}
	return idx, nil
}

// Save writes the index in the format implied by the path's extension.
func (idx *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	var data []byte
	var err error
	if isTOML(path) {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(idx)
		data = []byte(sb.String())
	} else {
		data, err = json.MarshalIndent(idx, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	// #nosec G306 - index files are user configuration
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index %q: %w", path, err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// resolveIndexPath returns jsonPath, or its .toml sibling when only that exists.
func resolveIndexPath(jsonPath string) string {
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath
	}
	tomlPath := strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".toml"
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	return jsonPath
}

// RemoteIndexPath returns the remote index in effect for env.
func RemoteIndexPath(env util.Env) string {
	return resolveIndexPath(env.RemoteIndexPath())
}

// LocalIndexPath returns the local index in effect for env.
func LocalIndexPath(env util.Env) string {
	return resolveIndexPath(env.LocalIndexPath())
}

// LoadProviders builds providers from the remote index followed by the local
// index, preserving file order. Entries of the wrong type for their index are
// skipped. An unreadable index contributes nothing and its error is returned
// alongside the providers that could be built.
func LoadProviders(env util.Env, git Git) ([]Provider, error) {
	var providers []Provider
	var errs []error

	remote, err := LoadIndex(RemoteIndexPath(env))
	if err != nil {
		errs = append(errs, err)
	} else {
		providers = append(providers, remote.Providers(KindGit, env.Home, git)...)
	}

	local, err := LoadIndex(LocalIndexPath(env))
	if err != nil {
		errs = append(errs, err)
	} else {
		providers = append(providers, local.Providers(KindDirectory, env.Home, git)...)
	}

	return providers, errors.Join(errs...)
}

// Providers builds a provider for every entry of the given kind.
func (idx *Index) Providers(kind Kind, home string, git Git) []Provider {
	providers := make([]Provider, 0, len(idx.Sources))
	for _, e := range idx.Sources {
		if Kind(e.Type) != kind {
			logging.Warn("skipping source with unexpected type",
				logging.Scope(e.Scope),
				"type", e.Type,
				"want", string(kind),
			)
			continue
		}
		switch kind {
		case KindGit:
			providers = append(providers, NewGitProvider(e.Scope, e.URL, e.Skills, git))
		case KindDirectory:
			providers = append(providers, NewDirectoryProvider(e.Scope, e.Path, e.Skills, home))
		}
	}
	return providers
}

// AddSource appends entry to the index matching its type. A scope may only
// appear once per index.
func AddSource(env util.Env, entry Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	path := LocalIndexPath(env)
	if Kind(entry.Type) == KindGit {
		path = RemoteIndexPath(env)
	}

	idx, err := LoadIndex(path)
	if err != nil {
		return err
	}
	for _, e := range idx.Sources {
		if e.Scope == entry.Scope {
			return fmt.Errorf("source with scope %q already exists in %s", entry.Scope, filepath.Base(path))
		}
	}
	idx.Sources = append(idx.Sources, entry)
	return idx.Save(path)
}

// RemoveSource deletes every entry with scope from both indexes.
func RemoveSource(env util.Env, scope string) error {
	removed := 0
	for _, path := range []string{RemoteIndexPath(env), LocalIndexPath(env)} {
		idx, err := LoadIndex(path)
		if err != nil {
			return err
		}
		kept := idx.Sources[:0]
		for _, e := range idx.Sources {
			if e.Scope == scope {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == len(idx.Sources) {
			continue
		}
		idx.Sources = kept
		if err := idx.Save(path); err != nil {
			return err
		}
	}
	if removed == 0 {
		return fmt.Errorf("%w: no source with scope %q", ErrSourceNotFound, scope)
	}
	return nil
}
