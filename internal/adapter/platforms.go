package adapter

import (
	"fmt"
	"path/filepath"

	"github.com/klauern/skillhub/internal/model"
)

// Claude installs into ~/.claude/skills.
type Claude struct{ dirAdapter }

// Codex installs into ~/.codex/skills.
type Codex struct{ dirAdapter }

// Gemini installs into ~/.gemini/skills.
type Gemini struct{ dirAdapter }

func NewClaude(home string) *Claude {
	return &Claude{platformDir(model.Claude, home)}
}

func NewCodex(home string) *Codex {
	return &Codex{platformDir(model.Codex, home)}
}

func NewGemini(home string) *Gemini {
	return &Gemini{platformDir(model.Gemini, home)}
}

func platformDir(p model.Platform, home string) dirAdapter {
	return dirAdapter{
		name:      p.String(),
		skillsDir: filepath.Join(home, "."+p.String(), "skills"),
	}
}

// For returns the adapter for a known platform.
func For(p model.Platform, home string) (Adapter, error) {
	switch p {
	case model.Claude:
		return NewClaude(home), nil
	case model.Codex:
		return NewCodex(home), nil
	case model.Gemini:
		return NewGemini(home), nil
	default:
		return nil, fmt.Errorf("no adapter for platform %q", p)
	}
}
