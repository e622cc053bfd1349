package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"wheel-quiz-service/internal/domain"
)

// SegmentCatalog loads the active wheel from the wheel_segments table.
type SegmentCatalog struct {
	pool *pgxpool.Pool
}

func NewSegmentCatalog(pool *pgxpool.Pool) *SegmentCatalog {
	return &SegmentCatalog{pool: pool}
}

func (c *SegmentCatalog) ActiveSegments(ctx context.Context) ([]domain.Segment, error) {
	rows, err := c.pool.Query(ctx, `SELECT id, type, value, display_text, color, probability, active
		FROM wheel_segments WHERE active ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}
	defer rows.Close()

	var segments []domain.Segment
	for rows.Next() {
		var (
			seg     domain.Segment
			segType string
		)
		if err := rows.Scan(&seg.ID, &segType, &seg.Value, &seg.DisplayText, &seg.Color, &seg.Probability, &seg.Active); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		seg.Type = domain.SegmentType(segType)
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}
	return segments, nil
}
