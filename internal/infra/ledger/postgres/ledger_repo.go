package postgres

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// LedgerRepository is the Postgres flavor of the pitch ledger. Same table
// shape as the MySQL variant, Postgres placeholders and upsert syntax.
type LedgerRepository struct{ db *sql.DB }

func NewLedgerRepository(db *sql.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
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
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
ON CONFLICT (run_id) DO UPDATE SET
 status = EXCLUDED.status,
 overall = EXCLUDED.overall,
 clarity = EXCLUDED.clarity,
 team_strength = EXCLUDED.team_strength,
 market_fit = EXCLUDED.market_fit,
 originality = EXCLUDED.originality,
 degraded = EXCLUDED.degraded,
 attestation_token = EXCLUDED.attestation_token,
 receipt_id = EXCLUDED.receipt_id,
 tx_hash = EXCLUDED.tx_hash,
 error = EXCLUDED.error;`

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
WHERE tenant_id=$1 AND run_id=$2
LIMIT 1;`
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
WHERE tenant_id=$1 ORDER BY evaluated_at DESC LIMIT $2;`
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
       COALESCE(COUNT(*) FILTER (WHERE status='completed'),0),
       COALESCE(COUNT(*) FILTER (WHERE status='failed'),0),
       COALESCE(AVG(overall) FILTER (WHERE status='completed'),0)
FROM pitch_ledger
WHERE tenant_id=$1 AND evaluated_at >= NOW() - ($2 || ' days')::interval;`
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

func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
