// Package sync implements the skill sync engine.
//
// A sync run detects the active target platforms, fetches every configured
// source in order, and installs each discovered skill into every active
// platform it is eligible for:
//
//	engine := sync.New(env, state.NewFileStore(env.StatePath()))
//	report, err := engine.Sync(ctx, providers)
//	if err != nil {
//	    // the run completed but its state could not be saved
//	}
//	fmt.Print(report.Summary())
//
// Failures are contained at the smallest unit. An unavailable source, an
// unreadable manifest or a failed copy is recorded in the Report and the run
// carries on; Sync only returns an error when the state store cannot be
// written.
//
// # Progress Reporting
//
// WithProgress registers a callback that receives one EventStart, one
// EventSource per provider, one EventInstall per attempted (skill, platform)
// pair and a final EventComplete. Events are delivered synchronously from
// the goroutine running Sync.
//
// # Duplicates
//
// Two skills with the same @scope/name (two sources sharing a scope, or two
// directories with the same name inside one source) are a Collision. Under
// PolicyLastWins both are installed and the later one is what remains on disk;
// under PolicyFirstWins the later ones are skipped. Either way the collision
// is recorded in the Report and logged.
package sync
