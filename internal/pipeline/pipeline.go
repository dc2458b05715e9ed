// Package pipeline implements the five gated stages that compile a statement
// of intent into a governed spec and an execution prompt.
//
// Each stage reads its upstream artifacts, re-validates them from scratch and
// either writes its own artifact in full or returns an error having written
// nothing. Stages report soft failures (pending questions, failing rules)
// through Result.Outcome rather than as errors.
package pipeline

import (
	stderrors "errors"
	"io"
	"log/slog"
	"time"

	"github.com/ariel-frischer/spec-compile/internal/artifact"
	"github.com/ariel-frischer/spec-compile/internal/config"
	clierrors "github.com/ariel-frischer/spec-compile/internal/errors"
	"github.com/ariel-frischer/spec-compile/internal/rules"
	"github.com/ariel-frischer/spec-compile/internal/schema"
)

// Stage names a pipeline step.
type Stage string

const (
	StageIntent     Stage = "intent"
	StageClarify    Stage = "clarify"
	StageNormalize  Stage = "normalize"
	StageValidate   Stage = "validate"
	StageSynthesize Stage = "synthesize"
)

// Outcome distinguishes a clean run from an expected, persisted failure.
type Outcome int

const (
	// OutcomeSuccess means the stage produced its artifact and nothing is outstanding.
	OutcomeSuccess Outcome = iota
	// OutcomeSoftFailure means the artifact was written but records unresolved
	// governance gaps: pending questions or failing rules.
	OutcomeSoftFailure
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == OutcomeSoftFailure {
		return "soft-failure"
	}
	return "success"
}

// Result describes a completed stage run.
type Result struct {
	Stage   Stage
	Outcome Outcome
	Message string
	Written []string // artifact paths relative to the working root
	SpecID  string

	Questions []schema.ClarificationQuestion // clarify only
	Report    *schema.ValidationReport       // validate only
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock sets the time source used for generated_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithRuleEngine replaces the governance rule engine used by validate.
func WithRuleEngine(engine *rules.Engine) Option {
	return func(p *Pipeline) {
		if engine != nil {
			p.engine = engine
		}
	}
}

// Pipeline runs stages against one working root.
type Pipeline struct {
	store  *artifact.Store
	now    func() time.Time
	logger *slog.Logger
	engine *rules.Engine
}

// New creates a pipeline rooted at root.
func New(root string, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:  artifact.NewStore(root),
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		engine: rules.DefaultEngine(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Root returns the working root.
func (p *Pipeline) Root() string {
	return p.store.Root()
}

// timestamp formats the current time as an ISO-8601 UTC instant with
// millisecond precision.
func (p *Pipeline) timestamp() string {
	return p.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func (p *Pipeline) loadConfig() (*config.FrameworkConfig, error) {
	cfg, err := config.Load(p.store.Root())
	if err != nil {
		path := "built-in config"
		var verr *config.ValidationError
		if stderrors.As(err, &verr) && verr.FilePath != "" {
			path = verr.FilePath
		}
		return nil, clierrors.ConfigParseError(path, err)
	}
	p.logger.Debug("config loaded", "source", cfg.Source, "concepts", len(cfg.Concepts), "synchronizations", len(cfg.Synchronizations))
	return cfg, nil
}

func (p *Pipeline) require(path string, producer Stage) error {
	if !p.store.Exists(path) {
		return clierrors.MissingArtifact(path, string(producer))
	}
	return nil
}

func (p *Pipeline) loadIntent() (schema.IntentRecord, error) {
	if err := p.require(artifact.IntentPath, StageIntent); err != nil {
		return schema.IntentRecord{}, err
	}
	node, err := p.store.ReadNode(artifact.IntentPath)
	if err != nil {
		return schema.IntentRecord{}, clierrors.SchemaViolation(artifact.IntentPath, err)
	}
	intent, err := schema.ValidateIntentFile(node)
	if err != nil {
		return schema.IntentRecord{}, clierrors.SchemaViolation(artifact.IntentPath, err)
	}
	return intent, nil
}

func (p *Pipeline) loadResponses(intent schema.IntentRecord) (schema.ClarificationResponses, error) {
	if err := p.require(artifact.ClarificationResponsePath, StageClarify); err != nil {
		return schema.ClarificationResponses{}, err
	}
	node, err := p.store.ReadNode(artifact.ClarificationResponsePath)
	if err != nil {
		return schema.ClarificationResponses{}, clierrors.SchemaViolation(artifact.ClarificationResponsePath, err)
	}
	responses, err := schema.ValidateResponses(node, intent)
	if err != nil {
		return schema.ClarificationResponses{}, clierrors.SchemaViolation(artifact.ClarificationResponsePath, err)
	}
	return responses, nil
}

// resolveSpecID returns the spec id a stage operates on. An override must
// agree with any id already recorded in the responses.
func resolveSpecID(override, recorded string, stage Stage) (string, error) {
	if recorded != "" && override != "" && override != recorded {
		return "", clierrors.SpecIDMismatch(recorded, override)
	}
	id := override
	if id == "" {
		id = recorded
	}
	if id == "" {
		return "", clierrors.SpecIDRequired(string(stage))
	}
	if !artifact.ValidSpecID(id) {
		return "", clierrors.InvalidSpecID(id)
	}
	return id, nil
}

func (p *Pipeline) write(files ...artifact.File) error {
	if err := p.store.Write(files...); err != nil {
		path := ""
		if len(files) > 0 {
			path = files[0].Path
		}
		return clierrors.FileNotWritable(path, err)
	}
	return nil
}

func paths(files ...artifact.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}
