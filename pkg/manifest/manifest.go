// Package manifest keeps an optional provenance log of runs in a small
// sqlite database: one row per produced artifact, every parameter included.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yumyai/priornet/pkg/params"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id            TEXT PRIMARY KEY,
	created_at        TEXT NOT NULL,
	expression_path   TEXT NOT NULL,
	ppi_path          TEXT NOT NULL,
	motif_label       TEXT NOT NULL,
	chip_path         TEXT NOT NULL,
	output_path       TEXT NOT NULL,
	num_tfs           INTEGER NOT NULL,
	num_genes         INTEGER NOT NULL,
	num_conditions    INTEGER NOT NULL,
	kept_edges        INTEGER NOT NULL,
	motif_weight      REAL NOT NULL,
	motif_cutoff      REAL NOT NULL,
	add_corr          INTEGER NOT NULL,
	abs_coex          INTEGER NOT NULL,
	thresh            REAL NOT NULL,
	old_motif         INTEGER NOT NULL,
	inc_coverage      INTEGER NOT NULL,
	qpval             INTEGER NOT NULL,
	bridging_proteins INTEGER NOT NULL,
	add_chip          INTEGER NOT NULL,
	ctrl              INTEGER NOT NULL
);`

// Run is one provenance row.
type Run struct {
	ID             string
	CreatedAt      time.Time
	ExpressionPath string
	PPIPath        string
	MotifLabel     string
	ChIPPath       string
	OutputPath     string
	NumTFs         int
	NumGenes       int
	NumConditions  int
	KeptEdges      int
	Params         params.Params
}

type Manifest struct {
	db *sql.DB
}

// Open opens (creating if needed) the manifest database and ensures the
// schema exists.
func Open(path string) (*Manifest, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create manifest schema: %w", err)
	}
	return &Manifest{db: db}, nil
}

func (m *Manifest) Close() error {
	return m.db.Close()
}

// Record inserts one run row.
func (m *Manifest) Record(ctx context.Context, run Run) error {

	qstring := `INSERT INTO runs (
		run_id, created_at, expression_path, ppi_path, motif_label, chip_path,
		output_path, num_tfs, num_genes, num_conditions, kept_edges,
		motif_weight, motif_cutoff, add_corr, abs_coex, thresh,
		old_motif, inc_coverage, qpval, bridging_proteins, add_chip, ctrl
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := m.db.ExecContext(ctx, qstring,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.ExpressionPath,
		run.PPIPath,
		run.MotifLabel,
		run.ChIPPath,
		run.OutputPath,
		run.NumTFs,
		run.NumGenes,
		run.NumConditions,
		run.KeptEdges,
		run.Params.MotifWeight,
		run.Params.MotifCutOff,
		run.Params.AddCorr,
		run.Params.AbsCoex,
		run.Params.Thresh,
		run.Params.OldMotif,
		run.Params.IncCoverage,
		run.Params.QPval,
		run.Params.BridgingProteins,
		run.Params.AddChip,
		run.Params.Ctrl,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Get returns the run with the given id.
func (m *Manifest) Get(ctx context.Context, id string) (*Run, error) {

	qstring := `SELECT
		run_id, created_at, expression_path, ppi_path, motif_label, chip_path,
		output_path, num_tfs, num_genes, num_conditions, kept_edges,
		motif_weight, motif_cutoff, add_corr, abs_coex, thresh,
		old_motif, inc_coverage, qpval, bridging_proteins, add_chip, ctrl
	FROM runs WHERE run_id = ?`

	var (
		run     Run
		created string
	)
	err := m.db.QueryRowContext(ctx, qstring, id).Scan(
		&run.ID,
		&created,
		&run.ExpressionPath,
		&run.PPIPath,
		&run.MotifLabel,
		&run.ChIPPath,
		&run.OutputPath,
		&run.NumTFs,
		&run.NumGenes,
		&run.NumConditions,
		&run.KeptEdges,
		&run.Params.MotifWeight,
		&run.Params.MotifCutOff,
		&run.Params.AddCorr,
		&run.Params.AbsCoex,
		&run.Params.Thresh,
		&run.Params.OldMotif,
		&run.Params.IncCoverage,
		&run.Params.QPval,
		&run.Params.BridgingProteins,
		&run.Params.AddChip,
		&run.Params.Ctrl,
	)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for run %s: %w", id, err)
	}
	return &run, nil
}
