// Package detector determines which target platforms are present on the host.
// A platform counts as installed when the parent of its skill directory
// exists; nothing else is probed.
package detector

import (
	"github.com/klauern/skillhub/internal/adapter"
	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/model"
	"github.com/klauern/skillhub/internal/util"
)

// All returns an adapter for every known platform in declaration order,
// whether or not it is installed.
func All(env util.Env) []adapter.Adapter {
	platforms := model.AllPlatforms()
	adapters := make([]adapter.Adapter, 0, len(platforms))
	for _, p := range platforms {
		a, err := adapter.For(p, env.Home)
		if err != nil {
			logging.Error("no adapter for platform", logging.Platform(p.String()), logging.Err(err))
			continue
		}
		adapters = append(adapters, a)
	}
	return adapters
}

// Detect returns the installed platforms in declaration order.
func Detect(env util.Env) []adapter.Adapter {
	var detected []adapter.Adapter
	for _, a := range All(env) {
		if a.IsInstalled() {
			detected = append(detected, a)
			continue
		}
		logging.Debug("platform not installed", logging.Platform(a.Name()), logging.Path(a.SkillsDir()))
	}
	return detected
}

// Names returns the platform names of adapters, in order.
func Names(adapters []adapter.Adapter) []string {
	names := make([]string, 0, len(adapters))
	for _, a := range adapters {
		names = append(names, a.Name())
	}
	return names
}
