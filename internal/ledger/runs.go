package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/digest"
)

// Run is one recorded canonicalization.
type Run struct {
	ID            string            `json:"id"`
	Seq           int64             `json:"seq"`
	Algorithm     string            `json:"algorithm"`
	HashAlg       string            `json:"hash_alg"`
	InputQuads    int               `json:"input_quads"`
	BlankNodes    int               `json:"blank_nodes"`
	CanonicalHash string            `json:"canonical_hash"`
	CID           string            `json:"cid"`
	Labels        map[string]string `json:"labels"`
}

// RunFromResult derives a ledger entry from a canonicalization result.
// The canonical hash and CID use the result's hash algorithm.
func RunFromResult(res *canon.Result) (Run, error) {
	alg, ok := digest.Lookup(res.Hash)
	if !ok {
		return Run{}, fmt.Errorf("unsupported hash algorithm: %q", res.Hash)
	}
	data := []byte(res.NQuads)
	c, err := alg.CID(data)
	if err != nil {
		return Run{}, fmt.Errorf("cid: %w", err)
	}
	return Run{
		Algorithm:     res.Algorithm,
		HashAlg:       alg.Name,
		InputQuads:    res.Stats.Quads,
		BlankNodes:    res.Stats.BlankNodes,
		CanonicalHash: alg.HexSum(data),
		CID:           c.String(),
		Labels:        res.Labels,
	}, nil
}

// Record appends run, assigning its ID (when empty) and the next seq.
// Returns the stored run.
func (l *Ledger) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = l.ids.Generate()
	}
	if run.Labels == nil {
		run.Labels = map[string]string{}
	}
	labels, err := json.Marshal(run.Labels)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, algorithm, hash_alg, input_quads, blank_nodes, canonical_hash, cid, labels_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Algorithm,
		run.HashAlg,
		run.InputQuads,
		run.BlankNodes,
		run.CanonicalHash,
		run.CID,
		string(labels),
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

const selectRuns = `
	SELECT id, seq, algorithm, hash_alg, input_quads, blank_nodes, canonical_hash, cid, labels_json
	FROM runs`

// List returns up to limit runs in seq order. limit <= 0 returns all.
func (l *Ledger) List(ctx context.Context, limit int) ([]Run, error) {
	query := selectRuns + ` ORDER BY seq ASC, id COLLATE BINARY ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return scanRuns(rows)
}

// ByHash returns every run whose canonical hash equals hash, in seq order.
func (l *Ledger) ByHash(ctx context.Context, hash string) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx,
		selectRuns+` WHERE canonical_hash = ? ORDER BY seq ASC, id COLLATE BINARY ASC`, hash)
	if err != nil {
		return nil, fmt.Errorf("runs by hash: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var r Run
		var labels string
		if err := rows.Scan(&r.ID, &r.Seq, &r.Algorithm, &r.HashAlg, &r.InputQuads,
			&r.BlankNodes, &r.CanonicalHash, &r.CID, &labels); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &r.Labels); err != nil {
			return nil, fmt.Errorf("decode labels of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
