// Package pipeline wires the statistics engine, the context builder, the
// rule modules and the aggregator into one ownership chain.
package pipeline

import (
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/advice"
	"github.com/JonnyWalker81/nutrisense/backend/internal/contextbuilder"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/stats"
)

// Config is the single configuration object for the whole pipeline
type Config struct {
	Stats   stats.Config          `mapstructure:"stats"`
	Advice  advice.Config         `mapstructure:"advice"`
	Context contextbuilder.Config `mapstructure:"context"`
}

// DefaultConfig returns defaults for every stage
func DefaultConfig() Config {
	return Config{
		Stats:   stats.DefaultConfig(),
		Advice:  advice.DefaultConfig(),
		Context: contextbuilder.DefaultConfig(),
	}
}

// Pipeline owns every stage. It is safe for concurrent use: no stage keeps
// state between calls.
type Pipeline struct {
	cfg        Config
	engine     *stats.Engine
	builder    *contextbuilder.Builder
	aggregator *advice.Aggregator
}

// New constructs the engine, then the rule modules, then the aggregator
func New(cfg Config, log logger.Logger) *Pipeline {
	return NewWithModules(cfg, advice.DefaultModules(cfg.Advice), log)
}

// NewWithModules is New with an explicit module set
func NewWithModules(cfg Config, modules []advice.RuleModule, log logger.Logger) *Pipeline {
	// tone and emotional state share the cutoff the aggregator adapts text with
	if cfg.Context == (contextbuilder.Config{}) {
		cfg.Context = contextbuilder.DefaultConfig()
	}
	if cfg.Advice.LowMoodCutoff > 0 {
		cfg.Context.LowMoodCutoff = cfg.Advice.LowMoodCutoff
	}
	engine := stats.NewEngine(cfg.Stats)
	return &Pipeline{
		cfg:        cfg,
		engine:     engine,
		builder:    contextbuilder.New(cfg.Context),
		aggregator: advice.NewAggregator(cfg.Advice, modules, log),
	}
}

// Config returns the pipeline configuration
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Engine returns the statistics engine
func (p *Pipeline) Engine() *stats.Engine {
	return p.engine
}

// Request is one advice evaluation
type Request struct {
	Today     models.DayRecord
	History   []models.DayRecord
	Profile   models.Profile
	PIndex    *models.ProductIndex
	Now       time.Time
	LastShown map[string]time.Time

	// Report skips the analysis step when the caller already has one
	Report *models.AnalysisReport
}

// Result is the output of one evaluation
type Result struct {
	Context advice.Context
	Report  models.AnalysisReport
	Advices []models.Candidate // full ranked list
}

// Analyze runs the statistics engine
func (p *Pipeline) Analyze(days []models.DayRecord, profile models.Profile, idx *models.ProductIndex) models.AnalysisReport {
	return p.engine.Analyze(days, profile, idx)
}

// Advise runs analysis, context derivation and advice generation
func (p *Pipeline) Advise(req Request) Result {
	var report models.AnalysisReport
	if req.Report != nil {
		report = *req.Report
	} else {
		days := make([]models.DayRecord, 0, len(req.History)+1)
		days = append(days, req.History...)
		days = append(days, req.Today)
		report = p.Analyze(days, req.Profile, req.PIndex)
	}

	actx := p.builder.Build(contextbuilder.Input{
		Today:   req.Today,
		History: req.History,
		Profile: req.Profile,
		PIndex:  req.PIndex,
		Report:  &report,
		Now:     req.Now,
	})

	h := advice.NewHelpers(actx.Now, req.LastShown, p.cfg.Advice.ReminderCooldown)
	return Result{
		Context: actx,
		Report:  report,
		Advices: p.aggregator.GenerateWith(actx, h),
	}
}
