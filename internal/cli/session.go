package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/klauern/skillhub/internal/config"
	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/source"
	"github.com/klauern/skillhub/internal/state"
	"github.com/klauern/skillhub/internal/sync"
	"github.com/klauern/skillhub/internal/ui/tui"
	"github.com/klauern/skillhub/internal/util"
)

// Replaced in tests.
var (
	gitClient   source.Git = source.ExecGit{}
	interactive            = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) } // #nosec G115
	pickSkills             = tui.RunSkillPicker
)

// session is everything a command needs, resolved once per invocation.
type session struct {
	env   util.Env
	cfg   *config.Config
	store *state.FileStore
}

func loadSession() (*session, error) {
	env, err := util.LoadEnv()
	if err != nil {
		return nil, err
	}
	if err := env.EnsureRoot(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(env.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &session{
		env:   env,
		cfg:   cfg,
		store: state.NewFileStore(env.StatePath()),
	}, nil
}

// providers loads configured sources. A broken index is logged and the
// providers from the other index are still returned.
func (r *session) providers() []source.Provider {
	providers, err := source.LoadProviders(r.env, gitClient)
	if err != nil {
		logging.Warn("failed to read source index", logging.Err(err))
	}
	return providers
}

func (r *session) engine(opts ...sync.Option) (*sync.Engine, error) {
	policy, err := sync.ParseCollisionPolicy(r.cfg.Sync.OnDuplicate)
	if err != nil {
		return nil, err
	}
	opts = append([]sync.Option{sync.WithCollisionPolicy(policy)}, opts...)
	return sync.New(r.env, r.store, opts...), nil
}

// loadState reads sync state, logging a corrupt file and treating it as empty.
func (r *session) loadState() *state.State {
	st, err := r.store.Load()
	if err != nil {
		logging.Warn("ignoring unreadable sync state", logging.Path(r.store.Path()), logging.Err(err))
	}
	return st
}

func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func stderr(cmd *cli.Command) io.Writer {
	return cmd.Root().ErrWriter
}
