package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vcf-anon/internal/verify"
)

// ResultRow is one stored verification result.
type ResultRow struct {
	RunID             string
	CheckedAt         time.Time
	Filename          string
	Origin            string
	OriginSize        int64
	AnonySize         int64
	Level             string
	Status            string
	TotalTargets      int64
	MetadataTargets   int64
	VariantTargets    int64
	MetadataMasked    int64
	VariantMasked     int64
	UnmaskedPositions string
}

// NewRunID returns a fresh identifier for one verify run.
func NewRunID() string {
	return uuid.NewString()
}

// RowFromResult converts a verification result into a row, recording the
// current sizes of both files.
func RowFromResult(runID string, checkedAt time.Time, r verify.Result) ResultRow {
	origin, _ := StatFile(r.Origin)
	anon, _ := StatFile(r.Anonymized)
	return ResultRow{
		RunID:             runID,
		CheckedAt:         checkedAt,
		Filename:          r.Filename,
		Origin:            r.Origin,
		OriginSize:        origin.Size,
		AnonySize:         anon.Size,
		Level:             string(r.Level),
		Status:            r.Status(),
		TotalTargets:      int64(r.TotalTargets()),
		MetadataTargets:   int64(r.MetadataTargets),
		VariantTargets:    int64(r.VariantTargets),
		MetadataMasked:    int64(r.MetadataMasked),
		VariantMasked:     int64(r.VariantMasked),
		UnmaskedPositions: r.UnmaskedPositions(),
	}
}

// WriteResults batch-inserts rows using the Appender API.
func (s *Store) WriteResults(rows []ResultRow) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "verification_results")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range rows {
		if err := appender.AppendRow(
			r.RunID, r.CheckedAt, r.Filename, r.Origin, r.OriginSize, r.AnonySize,
			r.Level, r.Status, r.TotalTargets, r.MetadataTargets, r.VariantTargets,
			r.MetadataMasked, r.VariantMasked, r.UnmaskedPositions,
		); err != nil {
			return fmt.Errorf("append verification result: %w", err)
		}
	}

	return appender.Flush()
}

// RunSummary counts stored results for one run.
type RunSummary struct {
	RunID     string
	CheckedAt time.Time
	Pairs     int64
	Failed    int64
}

// Runs lists stored runs, most recent first.
func (s *Store) Runs() ([]RunSummary, error) {
	rows, err := s.db.Query(`SELECT
		run_id, min(checked_at), count(*),
		count(*) FILTER (WHERE status = 'fail')
		FROM verification_results
		GROUP BY run_id
		ORDER BY min(checked_at) DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.CheckedAt, &r.Pairs, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Failures returns failing rows for filename, or for every file when
// filename is empty, oldest first.
func (s *Store) Failures(filename string) ([]ResultRow, error) {
	query := `SELECT
		run_id, checked_at, filename, origin, origin_size, anony_size,
		level, status, total_targets, metadata_targets, variant_targets,
		metadata_masked, variant_masked, unmasked_positions
		FROM verification_results
		WHERE status = 'fail'`
	var args []any
	if filename != "" {
		query += ` AND filename = ?`
		args = append(args, filename)
	}
	query += ` ORDER BY checked_at, filename`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	return scanResultRows(rows)
}

// scanResultRows scans rows into ResultRow slices.
func scanResultRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]ResultRow, error) {
	var results []ResultRow
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(
			&r.RunID, &r.CheckedAt, &r.Filename, &r.Origin, &r.OriginSize, &r.AnonySize,
			&r.Level, &r.Status, &r.TotalTargets, &r.MetadataTargets, &r.VariantTargets,
			&r.MetadataMasked, &r.VariantMasked, &r.UnmaskedPositions,
		); err != nil {
			return nil, fmt.Errorf("scan verification result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification results: %w", err)
	}
	return results, nil
}
