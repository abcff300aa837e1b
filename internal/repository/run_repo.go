package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/epeers/varstress/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRepository persists risk reports in PostgreSQL.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Save writes a report and its result rows in one transaction.
func (r *RunRepository) Save(ctx context.Context, report *models.RiskReport) error {
	warnings, err := json.Marshal(report.Warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}
	if report.Warnings == nil {
		warnings = []byte("[]")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO risk_run (id, owner, net_asset_value, horizon_days, confidence_option,
			confidence, z_score, horizon_end, total_var, total_var_pct, warnings, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, query,
		report.ID, report.OwnerID, report.Context.NetAssetValue, report.Context.HorizonDays,
		report.Confidence.Option, report.Confidence.Level, report.Context.ConfidenceZScore,
		report.HorizonEnd, report.TotalVaRAmount, report.TotalVaRPercentOfNAV, warnings, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert risk run: %w", err)
	}

	batch := &pgx.Batch{}
	for i, v := range report.VaR {
		batch.Queue(`
			INSERT INTO risk_run_var (run_id, seq, risk_class, percent_of_nav, annual_volatility, var_percent, var_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, report.ID, i, v.RiskClassID, v.PercentOfNAV, v.AnnualVolatility, v.VaRPercent, v.VaRAmount)
	}
	for i, s := range report.Stress {
		batch.Queue(`
			INSERT INTO risk_run_stress (run_id, seq, scenario, impact_pct, impact_amount)
			VALUES ($1, $2, $3, $4, $5)
		`, report.ID, i, s.ScenarioName, s.AggregateImpactPercent, s.AggregateImpactAmount)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert run results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Get loads a report with its result tables. Missing runs return nil, nil.
func (r *RunRepository) Get(ctx context.Context, id string) (*models.RiskReport, error) {
	query := `
		SELECT id, owner, net_asset_value, horizon_days, confidence_option, confidence, z_score,
			horizon_end, total_var, total_var_pct, warnings, created
		FROM risk_run
		WHERE id = $1
	`
	report := &models.RiskReport{}
	var warnings []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.OwnerID, &report.Context.NetAssetValue, &report.Context.HorizonDays,
		&report.Confidence.Option, &report.Confidence.Level, &report.Context.ConfidenceZScore,
		&report.HorizonEnd, &report.TotalVaRAmount, &report.TotalVaRPercentOfNAV, &warnings, &report.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get risk run: %w", err)
	}
	report.Confidence.ZScore = report.Context.ConfidenceZScore
	if err := json.Unmarshal(warnings, &report.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode warnings: %w", err)
	}

	if report.VaR, err = r.getVaRRows(ctx, id); err != nil {
		return nil, err
	}
	if report.Stress, err = r.getStressRows(ctx, id); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *RunRepository) getVaRRows(ctx context.Context, id string) ([]models.VaRResult, error) {
	query := `
		SELECT risk_class, percent_of_nav, annual_volatility, var_percent, var_amount
		FROM risk_run_var
		WHERE run_id = $1
		ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query VaR rows: %w", err)
	}
	defer rows.Close()

	results := []models.VaRResult{}
	for rows.Next() {
		var v models.VaRResult
		if err := rows.Scan(&v.RiskClassID, &v.PercentOfNAV, &v.AnnualVolatility, &v.VaRPercent, &v.VaRAmount); err != nil {
			return nil, fmt.Errorf("failed to scan VaR row: %w", err)
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

func (r *RunRepository) getStressRows(ctx context.Context, id string) ([]models.StressResult, error) {
	query := `
		SELECT scenario, impact_pct, impact_amount
		FROM risk_run_stress
		WHERE run_id = $1
		ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query stress rows: %w", err)
	}
	defer rows.Close()

	results := []models.StressResult{}
	for rows.Next() {
		var s models.StressResult
		if err := rows.Scan(&s.ScenarioName, &s.AggregateImpactPercent, &s.AggregateImpactAmount); err != nil {
			return nil, fmt.Errorf("failed to scan stress row: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// ListByOwner retrieves all runs of an owner (metadata only), newest first.
func (r *RunRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.RunListItem, error) {
	query := `
		SELECT id, net_asset_value, horizon_days, confidence, total_var, created
		FROM risk_run
		WHERE owner = $1
		ORDER BY created DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk runs: %w", err)
	}
	defer rows.Close()

	items := []models.RunListItem{}
	for rows.Next() {
		var item models.RunListItem
		if err := rows.Scan(&item.ID, &item.NetAssetValue, &item.HorizonDays, &item.Confidence, &item.TotalVaRAmount, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan risk run: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
