package lint

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yaklabco/pepfix/internal/logging"
	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/fsutil"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// Fix enables correction. Without it each category is detected once.
	Fix bool

	// DryRun corrects in memory and produces a diff without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// MaxPasses caps correction passes per category.
	// Set to 0 to use config.DefaultMaxPasses.
	MaxPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:    fsutil.DefaultBackupConfig(),
		MaxPasses: config.DefaultMaxPasses,
	}
}

func (o PipelineOptions) maxPasses() int {
	if o.MaxPasses <= 0 {
		return config.DefaultMaxPasses
	}
	return o.MaxPasses
}

// CategoryOutcome is the result of one catalogue step for one file.
type CategoryOutcome struct {
	// Step is the 1-based position in the catalogue.
	Step int

	// RuleID is the category identifier.
	RuleID string

	// Found is the number of diagnostics on the first detection.
	Found int

	// Passes is the number of correction passes written.
	Passes int

	// Clean is true when the final detection found nothing.
	Clean bool

	// Diagnostics are the violations from the final detection.
	Diagnostics []Diagnostic

	// Err is a category-level error (convergence exceeded, structural
	// parse failure or correction failure), wrapped in a *RuleError.
	Err error
}

// PipelineResult contains the result of processing a single file.
type PipelineResult struct {
	// Path is the file path that was processed.
	Path string

	// OutputPath is where fixes were written. It differs from Path in
	// copy mode.
	OutputPath string

	// Outcomes holds one entry per catalogue step that ran. A repeated
	// step is skipped when the content is unchanged since its last run.
	Outcomes []CategoryOutcome

	// Original is the content before processing.
	Original []byte

	// Content is the content after processing.
	Content []byte

	// Modified is true if the content was changed.
	Modified bool

	// Diff is the unified diff for dry-run mode (nil otherwise).
	Diff *fix.Diff

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// TotalEditsApplied is the number of edits applied across all passes.
	TotalEditsApplied int

	// SkippedEdits is the number of edits dropped and left to re-detection.
	SkippedEdits int
}

// Diagnostics returns the remaining violations of every category in
// catalogue order.
func (pr *PipelineResult) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, outcome := range pr.Outcomes {
		out = append(out, outcome.Diagnostics...)
	}
	return out
}

// IssueCount returns the number of remaining violations.
func (pr *PipelineResult) IssueCount() int {
	count := 0
	for _, outcome := range pr.Outcomes {
		count += len(outcome.Diagnostics)
	}
	return count
}

// HasIssues returns true if any violations remain.
func (pr *PipelineResult) HasIssues() bool {
	return pr.IssueCount() > 0
}

// FixedCount returns the number of violations that were corrected.
func (pr *PipelineResult) FixedCount() int {
	count := 0
	for _, outcome := range pr.Outcomes {
		if outcome.Passes > 0 {
			count += max(outcome.Found-len(outcome.Diagnostics), 0)
		}
	}
	return count
}

// Errors returns the category-level errors in catalogue order.
func (pr *PipelineResult) Errors() []error {
	var errs []error
	for _, outcome := range pr.Outcomes {
		if outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
	}
	return errs
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// Pipeline runs the catalogue over one file at a time, alternating
// detection and correction per category until clean or capped.
type Pipeline struct {
	// Engine runs detectors and correctors.
	Engine *Engine

	// Catalogue is the ordered list of category steps.
	Catalogue *Catalogue

	// Store reads and writes file content.
	Store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPipeline creates a pipeline.
func NewPipeline(engine *Engine, catalogue *Catalogue, store Store) *Pipeline {
	return &Pipeline{
		Engine:    engine,
		Catalogue: catalogue,
		Store:     store,
		locks:     make(map[string]*sync.Mutex),
	}
}

// ProcessFile runs every catalogue step for the file at path.
//
// For each step it reads the current content, detects, and in fix mode
// corrects and persists, repeating until the category is clean or the pass
// cap is reached. Categories never interleave.
//
// I/O errors and malformed detector results abort the file and are
// returned together with the partial result. Category-level errors are
// recorded in the outcomes and processing continues.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	unlock := p.lock(path)
	defer unlock()

	logger := logging.FromContext(ctx)

	original, err := p.Store.Read(ctx, path)
	if err != nil {
		logger.Error("read failed", logging.FieldPath, path, logging.FieldError, err)
		return nil, &RuleError{Path: path, Err: err}
	}

	result := &PipelineResult{
		Path:       path,
		OutputPath: path,
		Original:   original,
		Content:    original,
	}
	run := p.newRun(path, original, opts, result)

	// lastRun holds the content each category last finished on. A repeated
	// step over unchanged content would only duplicate its diagnostics.
	lastRun := make(map[string]string)

	for idx, rule := range p.Catalogue.Steps() {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("processing cancelled: %w", err)
		}

		if prev, ok := lastRun[rule.ID()]; ok && prev == string(run.current) {
			logger.Debug("step skipped", logging.FieldPath, path, logging.FieldRule, rule.ID(), logging.FieldStep, idx+1)
			continue
		}

		outcome, err := p.runStep(ctx, run, idx+1, rule)
		lastRun[rule.ID()] = string(run.current)
		result.Outcomes = append(result.Outcomes, outcome)
		if err != nil {
			logger.Error("file aborted", logging.FieldPath, path, logging.FieldRule, rule.ID(), logging.FieldError, err)
			return result, err
		}
	}

	result.Content = run.current
	result.Modified = string(run.current) != string(original)
	result.Written = run.wrote && !opts.DryRun
	result.OutputPath = run.writePath
	if opts.DryRun && result.Modified {
		result.Diff = fix.GenerateDiff(path, original, run.current)
	}

	return result, nil
}

// fileRun tracks where one file is read from and written to across steps.
type fileRun struct {
	path      string
	readPath  string
	writePath string
	store     Store
	opts      PipelineOptions
	result    *PipelineResult
	current   []byte
	wrote     bool
}

func (p *Pipeline) newRun(path string, original []byte, opts PipelineOptions, result *PipelineResult) *fileRun {
	run := &fileRun{
		path:      path,
		readPath:  path,
		writePath: path,
		store:     p.Store,
		opts:      opts,
		result:    result,
		current:   original,
	}

	if !opts.Fix || opts.DryRun {
		mem := NewMemoryStore()
		mem.Seed(path, original)
		run.store = mem
		return run
	}

	if opts.Backup.Enabled && opts.Backup.Mode == fsutil.BackupModeCopy {
		run.writePath = fsutil.CopyPath(path)
		if fs, ok := p.Store.(*FileStore); ok {
			fs.Inherit(run.writePath, path)
		}
	}

	return run
}

func (r *fileRun) read(ctx context.Context) ([]byte, error) {
	content, err := r.store.Read(ctx, r.readPath)
	if err != nil {
		return nil, err
	}
	r.current = content
	return content, nil
}

func (r *fileRun) write(ctx context.Context, content []byte) error {
	if !r.wrote && r.writePath == r.path && r.opts.Fix && !r.opts.DryRun {
		created, err := fsutil.CreateBackup(ctx, r.path, r.opts.Backup)
		if err != nil {
			return fmt.Errorf("%w: create backup: %w", ErrWriteFailure, err)
		}
		r.result.BackupCreated = created
	}

	if err := r.store.Write(ctx, r.writePath, content); err != nil {
		return err
	}

	r.wrote = true
	r.readPath = r.writePath
	r.current = content
	return nil
}

func (p *Pipeline) runStep(ctx context.Context, run *fileRun, step int, rule Rule) (CategoryOutcome, error) {
	outcome := CategoryOutcome{Step: step, RuleID: rule.ID()}
	logger := logging.FromContext(ctx).With(
		logging.FieldPath, run.path,
		logging.FieldRule, rule.ID(),
		logging.FieldStep, step,
	)

	maxPasses := run.opts.maxPasses()
	if !rule.RerunUntilClean() {
		maxPasses = 1
	}

	for {
		if err := ctx.Err(); err != nil {
			return outcome, fmt.Errorf("processing cancelled: %w", err)
		}

		content, err := run.read(ctx)
		if err != nil {
			return outcome, &RuleError{Path: run.path, RuleID: rule.ID(), Err: err}
		}

		doc := pysrc.NewDocument(run.path, content)
		rc := p.Engine.Context(ctx, doc)

		diags, err := p.Engine.Detect(rc, rule)
		if err != nil {
			ruleErr := &RuleError{Path: run.path, RuleID: rule.ID(), Line: syntaxLine(err), Err: err}
			if errors.Is(err, ErrMalformedResult) {
				return outcome, ruleErr
			}
			logger.Error("category failed", logging.FieldError, err)
			outcome.Err = ruleErr
			return outcome, nil
		}

		if outcome.Passes == 0 {
			outcome.Found = len(diags)
		}
		outcome.Diagnostics = diags
		for _, diag := range diags {
			logger.Debug("violation",
				logging.FieldCode, diag.Code,
				logging.FieldLine, diag.Line,
				logging.FieldMessage, diag.Message,
			)
		}

		if len(diags) == 0 {
			outcome.Clean = true
			return outcome, nil
		}
		if !run.opts.Fix {
			return outcome, nil
		}

		if outcome.Passes >= maxPasses {
			outcome.Err = p.exceeded(run.path, rule.ID(), diags,
				fmt.Errorf("%w: %d violations remain after %d passes", ErrConvergenceExceeded, len(diags), outcome.Passes))
			logger.Warn("convergence exceeded", logging.FieldPass, outcome.Passes, logging.FieldDiagnostics, len(diags))
			return outcome, nil
		}

		correction, err := p.Engine.Correct(rc, rule, diags)
		if err != nil {
			logger.Error("correction failed", logging.FieldError, err)
			outcome.Err = &RuleError{Path: run.path, RuleID: rule.ID(), Err: err}
			return outcome, nil
		}

		if !correction.Changed(content) {
			outcome.Err = p.exceeded(run.path, rule.ID(), diags,
				fmt.Errorf("%w: correction made no progress", ErrConvergenceExceeded))
			logger.Warn("convergence exceeded", logging.FieldPass, outcome.Passes, logging.FieldDiagnostics, len(diags))
			return outcome, nil
		}

		if err := run.write(ctx, correction.Content); err != nil {
			return outcome, &RuleError{Path: run.path, RuleID: rule.ID(), Err: err}
		}

		outcome.Passes++
		run.result.TotalEditsApplied += correction.Applied
		run.result.SkippedEdits += correction.Skipped
		logger.Debug("pass",
			logging.FieldPass, outcome.Passes,
			logging.FieldEdits, correction.Applied,
			logging.FieldSkipped, correction.Skipped,
		)
	}
}

func (p *Pipeline) exceeded(path, ruleID string, diags []Diagnostic, err error) error {
	return &RuleError{Path: path, RuleID: ruleID, Line: diags[0].Line, Err: err}
}

// lock serializes processing of one path.
func (p *Pipeline) lock(path string) func() {
	p.mu.Lock()
	if p.locks == nil {
		p.locks = make(map[string]*sync.Mutex)
	}
	mu, ok := p.locks[path]
	if !ok {
		mu = &sync.Mutex{}
		p.locks[path] = mu
	}
	p.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func syntaxLine(err error) int {
	var syntaxErr *pysrc.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Line
	}
	return 0
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups && mode != fsutil.BackupModeNone,
		Mode:    mode,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:       cfg.Fix,
		DryRun:    cfg.DryRun,
		Backup:    BackupConfigFromConfig(cfg),
		MaxPasses: cfg.MaxPasses,
	}
}
