package prior

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/yumyai/priornet/logger"
	"github.com/yumyai/priornet/pkg/artifact"
	"github.com/yumyai/priornet/pkg/coexpr"
	"github.com/yumyai/priornet/pkg/dataset"
	"github.com/yumyai/priornet/pkg/manifest"
	"github.com/yumyai/priornet/pkg/params"
)

// Config is one full run: input files, the motif source, where the artifact
// goes, and every fusion parameter.
type Config struct {
	ExpressionPath string
	PPIPath        string
	Motif          dataset.MotifSource
	ChIPPath       string // required when Params.AddChip > 0
	OutDir         string
	ManifestPath   string // empty disables provenance recording
	Params         params.Params
}

// Result reports what a run produced. RegNet stays available so external
// consumers (the inference driver) can feed it on without re-parsing.
type Result struct {
	RunID         string
	OutputPath    string
	TFs           []string
	Genes         []string
	RegNet        *mat.Dense
	NumConditions int
	KeptEdges     int
}

// Run executes the whole pipeline: load, normalize, fuse, write. A run
// either completes or fails outright; there is no partial output.
func Run(ctx context.Context, cfg Config) (*Result, error) {

	p := cfg.Params
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if cfg.Motif == nil {
		return nil, fmt.Errorf("no motif source given")
	}
	if p.AddChip > 0 && cfg.ChIPPath == "" {
		return nil, fmt.Errorf("addChip=%d requires a ChIP ground-truth file", p.AddChip)
	}

	runID := uuid.NewString()
	started := time.Now()

	expr, err := dataset.LoadExpression(cfg.ExpressionPath)
	if err != nil {
		return nil, err
	}
	tfs, err := dataset.LoadTFs(cfg.PPIPath)
	if err != nil {
		return nil, err
	}
	motif, err := dataset.ResolveMotif(cfg.Motif, tfs, expr.Genes)
	if err != nil {
		return nil, err
	}

	logger.Info("Inputs loaded",
		zap.String("run_id", runID),
		zap.Int("genes", expr.NumGenes()),
		zap.Int("conditions", expr.NumConditions()),
		zap.Int("tfs", len(tfs)),
		zap.Int("kept_edges", motif.KeptEdges))

	if motif.KeptEdges == 0 {
		logger.Warn("Empty motif intersection, prior starts all-zero",
			zap.String("run_id", runID),
			zap.Error(dataset.ErrEmptyIntersection))
	}

	regnet := Threshold(motif.RegNet, p)

	if p.AddChip > 0 {
		table, err := dataset.LoadChIP(cfg.ChIPPath)
		if err != nil {
			return nil, err
		}
		regnet = OverlayChIP(regnet, table, tfs, expr.Genes, p.AddChip)
	}

	if p.AddCorr > 0 {
		coreg := coexpr.Correlate(expr.Data)
		evidence := CoexEvidence(coreg, tfs, expr.Genes, p.ZeroDiagonal(), p.MotifCutOff)
		regnet = Fuse(regnet, evidence, p.MotifWeight)
	}

	outPath := filepath.Join(cfg.OutDir, artifact.OutputName(p, cfg.ExpressionPath, motif.Label))
	if err := artifact.WriteEdgeList(outPath, regnet, tfs, expr.Genes); err != nil {
		return nil, err
	}

	logger.Info("Prior written",
		zap.String("run_id", runID),
		zap.String("output", outPath),
		zap.Duration("elapsed", time.Since(started)))

	if cfg.ManifestPath != "" {
		recordRun(ctx, cfg, runID, started, motif, expr, tfs, outPath)
	}

	return &Result{
		RunID:         runID,
		OutputPath:    outPath,
		TFs:           tfs,
		Genes:         expr.Genes,
		RegNet:        regnet,
		NumConditions: expr.NumConditions(),
		KeptEdges:     motif.KeptEdges,
	}, nil
}

// Provenance is best effort: a broken manifest db must not fail a run whose
// artifact is already on disk.
func recordRun(ctx context.Context, cfg Config, runID string, started time.Time,
	motif *dataset.Motif, expr *dataset.Expression, tfs []string, outPath string) {

	m, err := manifest.Open(cfg.ManifestPath)
	if err != nil {
		logger.Warn("Cannot open manifest db", zap.String("path", cfg.ManifestPath), zap.Error(err))
		return
	}
	defer m.Close()

	err = m.Record(ctx, manifest.Run{
		ID:             runID,
		CreatedAt:      started,
		ExpressionPath: cfg.ExpressionPath,
		PPIPath:        cfg.PPIPath,
		MotifLabel:     motif.Label,
		ChIPPath:       cfg.ChIPPath,
		OutputPath:     outPath,
		NumTFs:         len(tfs),
		NumGenes:       expr.NumGenes(),
		NumConditions:  expr.NumConditions(),
		KeptEdges:      motif.KeptEdges,
		Params:         cfg.Params,
	})
	if err != nil {
		logger.Warn("Cannot record run in manifest", zap.String("run_id", runID), zap.Error(err))
	}
}
