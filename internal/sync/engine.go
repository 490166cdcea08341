package sync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/klauern/skillhub/internal/adapter"
	"github.com/klauern/skillhub/internal/config"
	"github.com/klauern/skillhub/internal/detector"
	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/model"
	"github.com/klauern/skillhub/internal/source"
	"github.com/klauern/skillhub/internal/state"
	"github.com/klauern/skillhub/internal/util"
)

var (
	// ErrInvalidRef is returned by InstallOne for a malformed reference.
	ErrInvalidRef = model.ErrInvalidRef

	// ErrNotFound is returned by InstallOne when no source has the scope or
	// the scope's source has no skill with the name.
	ErrNotFound = errors.New("skill not found in configured sources")
)

// Engine runs syncs against one environment.
type Engine struct {
	env      util.Env
	store    state.Store
	detect   func(util.Env) []adapter.Adapter
	now      func() time.Time
	policy   CollisionPolicy
	progress ProgressFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithDetector replaces platform detection.
func WithDetector(detect func(util.Env) []adapter.Adapter) Option {
	return func(e *Engine) { e.detect = detect }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCollisionPolicy sets how duplicate full names are handled.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) { e.progress = fn }
}

// New creates an Engine that records runs in store.
func New(env util.Env, store state.Store, opts ...Option) *Engine {
	e := &Engine{
		env:    env,
		store:  store,
		detect: detector.Detect,
		now:    time.Now,
		policy: PolicyLastWins,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sync fetches every provider in order, installs each discovered skill into
// every active platform it is eligible for, and replaces the stored state with
// the skills that installed at least once. Failures of single sources or
// pairs are recorded in the report. The returned error is non-nil only when
// state could not be saved; the report is complete either way.
func (e *Engine) Sync(ctx context.Context, providers []source.Provider) (*Report, error) {
	defer logging.Timer("sync")()

	platforms := e.detect(e.env)
	report := &Report{
		Platforms: detector.Names(platforms),
		Policy:    e.policy,
	}
	logging.Debug("detected platforms", logging.Count(len(platforms)), "platforms", report.Platforms)

	if len(providers) == 0 {
		report.NoSources = true
		logging.Info("no sources configured")
		return report, nil
	}

	e.emit(ProgressEvent{Kind: EventStart, Total: len(providers)})
	e.collect(ctx, providers, report)

	plan := e.plan(report.Skills, platforms)
	e.install(plan, report)

	now := e.now().UTC()
	report.SyncedAt = now
	e.emit(ProgressEvent{Kind: EventComplete, Current: len(report.Pairs), Total: len(report.Pairs)})

	st := state.Empty()
	st.Record(now, report.InstalledSkills())
	if err := e.store.Save(st); err != nil {
		logging.Error("failed to save sync state", logging.Err(err))
		return report, fmt.Errorf("failed to save sync state: %w", err)
	}

	logging.Info("sync complete",
		logging.Count(len(report.Installed())),
		"failed", len(report.Failed()),
		"collisions", len(report.Collisions),
	)
	return report, nil
}

// Discover fetches every provider and reports what was found without
// installing anything or touching state.
func (e *Engine) Discover(ctx context.Context, providers []source.Provider) *Report {
	report := &Report{Policy: e.policy, NoSources: len(providers) == 0}
	e.collect(ctx, providers, report)
	return report
}

// InstallOne installs the skill named by ref ("@scope/name") into every
// active platform it is eligible for. Only the first provider with the
// reference's scope is consulted. State is not modified.
func (e *Engine) InstallOne(ctx context.Context, providers []source.Provider, ref string) (*Report, error) {
	scope, name, err := model.ParseRef(ref)
	if err != nil {
		return nil, err
	}

	var provider source.Provider
	for _, p := range providers {
		if p.Scope() == scope {
			provider = p
			break
		}
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: %s (no source with scope %q)", ErrNotFound, ref, scope)
	}

	report := &Report{Policy: e.policy}
	result := e.fetch(ctx, provider, report)

	var skill *model.Skill
	for i := range result.Skills {
		if result.Skills[i].Name == name {
			skill = &result.Skills[i]
			break
		}
	}
	if skill == nil {
		if result.Err != nil {
			return report, fmt.Errorf("%w: %s (source %s: %v)", ErrNotFound, ref, result.Status, result.Err)
		}
		return report, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	report.Skills = []model.Skill{*skill}

	platforms := e.detect(e.env)
	report.Platforms = detector.Names(platforms)
	e.install(e.plan(report.Skills, platforms), report)
	return report, nil
}

// ShouldAutoSync reports whether an automatic sync is due: auto sync is on
// and either no sync has been recorded or at least the configured interval
// has passed since the last one.
func ShouldAutoSync(cfg *config.Config, st *state.State, now time.Time) bool {
	if !cfg.AutoSync {
		return false
	}
	if st == nil || st.LastSyncTime == nil {
		return true
	}
	return now.Sub(*st.LastSyncTime).Hours() >= cfg.SyncIntervalHours
}

// collect fetches providers sequentially, appending skills and collisions
// to report.
func (e *Engine) collect(ctx context.Context, providers []source.Provider, report *Report) {
	seen := make(map[string]int) // full name -> index into report.Collisions, -1 if single
	firstPath := make(map[string]string)

	for i, p := range providers {
		result := e.fetch(ctx, p, report)
		e.emit(ProgressEvent{
			Kind:    EventSource,
			Scope:   p.Scope(),
			Current: i + 1,
			Total:   len(providers),
			Err:     result.Err,
		})

		for _, skill := range result.Skills {
			full := skill.FullName()
			idx, dup := seen[full]
			switch {
			case !dup:
				seen[full] = -1
				firstPath[full] = skill.SourcePath
			case idx < 0:
				seen[full] = len(report.Collisions)
				report.Collisions = append(report.Collisions, Collision{
					FullName:    full,
					SourcePaths: []string{firstPath[full], skill.SourcePath},
				})
			default:
				report.Collisions[idx].SourcePaths = append(report.Collisions[idx].SourcePaths, skill.SourcePath)
			}
			report.Skills = append(report.Skills, skill)
		}
	}

	for _, c := range report.Collisions {
		logging.Warn("duplicate skill name across sources",
			logging.Skill(c.FullName),
			logging.Count(len(c.SourcePaths)),
			"policy", string(e.policy),
			"paths", c.SourcePaths,
		)
	}
}

func (e *Engine) fetch(ctx context.Context, p source.Provider, report *Report) source.FetchResult {
	result := p.Fetch(ctx, e.env.CacheDir())
	report.Sources = append(report.Sources, SourceOutcome{
		Scope:    p.Scope(),
		Kind:     p.Kind(),
		Location: p.Location(),
		Status:   result.Status,
		Skills:   len(result.Skills),
		Err:      result.Err,
	})
	logging.Debug("fetched source",
		logging.Scope(p.Scope()),
		logging.Source(p.Location()),
		logging.Status(string(result.Status)),
		logging.Count(len(result.Skills)),
	)
	return result
}

type pair struct {
	skill    model.Skill
	platform adapter.Adapter
	skip     bool
}

// plan lists eligible pairs, skill outer and platform inner. Under
// PolicyFirstWins every pair of a later duplicate is marked skip.
func (e *Engine) plan(skills []model.Skill, platforms []adapter.Adapter) []pair {
	installed := make(map[string]bool)
	var pairs []pair
	for _, skill := range skills {
		full := skill.FullName()
		skip := e.policy == PolicyFirstWins && installed[full]
		installed[full] = true

		for _, p := range platforms {
			if !skill.EligibleFor(p.Name()) {
				continue
			}
			pairs = append(pairs, pair{skill: skill, platform: p, skip: skip})
		}
	}
	return pairs
}

func (e *Engine) install(plan []pair, report *Report) {
	for i, pr := range plan {
		full := pr.skill.FullName()
		res := PairResult{
			Skill:      pr.skill,
			Platform:   pr.platform.Name(),
			TargetPath: filepath.Join(pr.platform.SkillsDir(), filepath.FromSlash(full)),
		}

		switch {
		case pr.skip:
			res.Action = ActionSkippedDuplicate
			logging.Debug("skipping duplicate", logging.Skill(full), logging.Platform(res.Platform))
		default:
			if err := pr.platform.InstallSkill(pr.skill.SourcePath, full); err != nil {
				res.Action = ActionFailed
				res.Error = err
				logging.Warn("install failed",
					logging.Skill(full),
					logging.Platform(res.Platform),
					logging.Err(err),
				)
			} else {
				res.Action = ActionInstalled
			}
		}

		report.Pairs = append(report.Pairs, res)
		e.emit(ProgressEvent{
			Kind:     EventInstall,
			Scope:    pr.skill.Scope,
			Skill:    full,
			Platform: res.Platform,
			Current:  i + 1,
			Total:    len(plan),
			Err:      res.Error,
		})
	}
}
