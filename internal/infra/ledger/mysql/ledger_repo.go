package mysql

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// LedgerRepository persists evaluation records in the pitch_ledger table.
// It serves two ports: the Ledger (authoritative submission of attested
// reports during the commit stage) and the Repository (failure records and
// API queries).
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Submit durably records an attested report and returns its receipt.
func (r *LedgerRepository) Submit(ctx context.Context, sub domain.Submission) (domain.Receipt, error) {
	receipt := domain.Receipt{
		ID:         uuid.New().String(),
		TxHash:     newTxHash(),
		RecordedAt: time.Now().UTC(),
	}

	e := &domain.Evaluation{
		RunID:        sub.RunID,
		TenantID:     sub.Tenant,
		PitchID:      sub.Report.PitchID,
		EvaluatedAt:  receipt.RecordedAt,
		Status:       domain.StatusCompleted,
		Overall:      sub.Report.Overall,
		Clarity:      sub.Report.Component(domain.RubricClarity).Score,
		TeamStrength: sub.Report.Component(domain.RubricTeamStrength).Score,
		MarketFit:    sub.Report.Component(domain.RubricMarketFit).Score,
		Originality:  sub.Report.Component(domain.RubricOriginality).Score,
		Degraded:     sub.Report.Degraded,
		Token:        sub.Token,
		ReceiptID:    receipt.ID,
		TxHash:       receipt.TxHash,
	}
	if err := r.Save(ctx, e); err != nil {
		return domain.Receipt{}, fmt.Errorf("ledger submission failed: %w", err)
	}
	return receipt, nil
}

// Save insert/update an evaluation record
func (r *LedgerRepository) Save(ctx context.Context, e *domain.Evaluation) error {
	const q = `
INSERT INTO pitch_ledger
(run_id, tenant_id, pitch_id, evaluated_at, status,
 overall, clarity, team_strength, market_fit, originality, degraded,
 attestation_token, receipt_id, tx_hash, error)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 status=VALUES(status),
 overall=VALUES(overall),
 clarity=VALUES(clarity), team_strength=VALUES(team_strength),
 market_fit=VALUES(market_fit), originality=VALUES(originality),
 degraded=VALUES(degraded),
 attestation_token=VALUES(attestation_token),
 receipt_id=VALUES(receipt_id), tx_hash=VALUES(tx_hash),
 error=VALUES(error);
`
	tenant := stringOrDash(e.TenantID)
	status := stringOrDash(string(e.Status))
	evaluated := e.EvaluatedAt
	if evaluated.IsZero() {
		evaluated = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		e.RunID, tenant, e.PitchID, evaluated, status,
		e.Overall, e.Clarity, e.TeamStrength, e.MarketFit, e.Originality, e.Degraded,
		e.Token, e.ReceiptID, e.TxHash, e.Error,
	)
	return err
}

// Get by run ID + tenant
func (r *LedgerRepository) Get(ctx context.Context, tenant string, id domain.RunID) (*domain.Evaluation, error) {
	const q = `
SELECT run_id, tenant_id, pitch_id, evaluated_at, status,
       overall, clarity, team_strength, market_fit, originality, degraded,
       attestation_token, receipt_id, tx_hash, error
FROM pitch_ledger
WHERE tenant_id=? AND run_id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, tenant, id)
	return scanEvaluation(row.Scan)
}

// Latest evaluations per tenant
func (r *LedgerRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Evaluation, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT run_id, tenant_id, pitch_id, evaluated_at, status,
       overall, clarity, team_strength, market_fit, originality, degraded,
       attestation_token, receipt_id, tx_hash, error
FROM pitch_ledger
WHERE tenant_id=? ORDER BY evaluated_at DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Summary recaps the last N days of evaluations
func (r *LedgerRepository) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	const q = `
SELECT COUNT(*),
       COALESCE(SUM(status='completed'),0),
       COALESCE(SUM(status='failed'),0),
       COALESCE(AVG(CASE WHEN status='completed' THEN overall END),0)
FROM pitch_ledger
WHERE tenant_id=? AND evaluated_at >= NOW() - INTERVAL ? DAY;
`
	var s domain.Summary
	err := r.db.QueryRowContext(ctx, q, tenant, sinceDays).Scan(
		&s.TotalRuns, &s.Completed, &s.Failed, &s.AvgOverall,
	)
	return s, err
}

func scanEvaluation(scan func(dest ...any) error) (*domain.Evaluation, error) {
	var e domain.Evaluation
	if err := scan(
		&e.RunID, &e.TenantID, &e.PitchID, &e.EvaluatedAt, &e.Status,
		&e.Overall, &e.Clarity, &e.TeamStrength, &e.MarketFit, &e.Originality, &e.Degraded,
		&e.Token, &e.ReceiptID, &e.TxHash, &e.Error,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func newTxHash() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return "0x" + hex.EncodeToString(b)
}
