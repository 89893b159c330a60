package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thruflo/targetorder/internal/config"
	"github.com/thruflo/targetorder/internal/journal"
	"github.com/thruflo/targetorder/internal/logging"
	"github.com/thruflo/targetorder/internal/project"
	"github.com/thruflo/targetorder/internal/reorder"
	"github.com/thruflo/targetorder/internal/sequence"
)

// workspace is a loaded project ready for one command.
type workspace struct {
	base   string
	cfg    *config.Config
	store  *project.Store
	seq    *sequence.Sequence
	engine *reorder.Engine
	log    *logging.Logger
	dirty  bool

	// history is nil when disabled in config
	history *journal.FileStore
	args    []string
	pending []*journal.Entry
}

// resolvePaths returns the base directory, the loaded config and the
// project path selected by flags and config.
func resolvePaths(opts *options) (string, *config.Config, string, error) {
	base, err := filepath.Abs(opts.dir)
	if err != nil {
		return "", nil, "", fmt.Errorf("failed to resolve directory: %w", err)
	}

	cfg, err := config.LoadConfig(base)
	if err != nil {
		return "", nil, "", err
	}

	path := cfg.ProjectPath(base)
	if opts.project != "" {
		path = opts.project
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}
	}
	return base, cfg, path, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config, flagLevel string) (*logging.Logger, error) {
	level := cfg.LogLevel()
	if flagLevel != "" {
		var err error
		if level, err = logging.ParseLevel(flagLevel); err != nil {
			return nil, err
		}
	}

	l := logging.New()
	l.SetLevel(level)
	l.SetOutput(log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
	return l, nil
}

// openWorkspace loads config and project for cmd.
func openWorkspace(cmd *cobra.Command, opts *options) (*workspace, error) {
	base, cfg, path, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, cfg, opts.logLevel)
	if err != nil {
		return nil, err
	}

	store := project.NewStore(path)
	seq, err := store.Load()
	if err != nil {
		return nil, err
	}

	w := &workspace{
		base:  base,
		cfg:   cfg,
		store: store,
		seq:   seq,
		log:   logger.With("project", path),
	}
	if hp := cfg.HistoryPath(base); hp != "" {
		if w.history, err = journal.Open(hp); err != nil {
			return nil, err
		}
	}
	w.engine = reorder.New(seq,
		reorder.WithLogger(logger),
		reorder.WithGroupNameFormat(cfg.Groups.NameFormat),
		reorder.WithCommitObserver(w.record),
	)
	w.engine.OnSequenceChanged(func() { w.dirty = true })
	return w, nil
}

// apply runs op against the engine and saves the project if it changed.
// refs are the ids the user typed, used for suggestions on failure.
func (w *workspace) apply(op func(e *reorder.Engine) error, refs ...string) error {
	w.args = refs
	if err := op(w.engine); err != nil {
		return w.explain(err, refs...)
	}
	return w.save()
}

func (w *workspace) save() error {
	if !w.dirty {
		return nil
	}
	if err := w.store.Save(w.seq); err != nil {
		return err
	}
	w.log.Debug("project saved", "targets", w.seq.Len())
	w.dirty = false

	for _, e := range w.pending {
		if err := w.history.Append(e); err != nil {
			return fmt.Errorf("project saved but history not recorded: %w", err)
		}
	}
	w.pending = nil
	return nil
}

// record queues a history entry for c, written once the project is saved.
func (w *workspace) record(c reorder.Commit) {
	if w.history == nil {
		return
	}
	w.pending = append(w.pending, &journal.Entry{
		Txn:   c.Txn,
		Op:    c.Op,
		Args:  w.args,
		Order: c.Order,
	})
}
