package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

type herbRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHerbRepository creates a new herb repository
func NewHerbRepository(db *sql.DB, logger *zap.Logger) *herbRepository {
	return &herbRepository{
		db:     db,
		logger: logger,
	}
}

// herbWhere builds the WHERE clause shared by the search and count queries.
// Placeholders start at $1; the returned args match them in order.
func herbWhere(f repository.HerbFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	next := func(value string) string {
		args = append(args, "%"+value+"%")
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := next(q)
		conds = append(conds, fmt.Sprintf(
			`(h.common_name ILIKE %[1]s OR h.latin_name ILIKE %[1]s OR h.family ILIKE %[1]s OR h.folk_uses ILIKE %[1]s)`, p))
	}
	if a := strings.TrimSpace(f.Action); a != "" {
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM herb_medicinal_actions hma2
			JOIN medicinal_actions ma2 ON hma2.action_id = ma2.id
			WHERE hma2.herb_id = h.id AND ma2.name ILIKE %s)`, next(a)))
	}
	if p := strings.TrimSpace(f.Preparation); p != "" {
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM herb_preparations hp2
			JOIN preparations p2 ON hp2.preparation_id = p2.id
			WHERE hp2.herb_id = h.id AND p2.name ILIKE %s)`, next(p)))
	}
	if i := strings.TrimSpace(f.Indication); i != "" {
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM herb_indications hi2
			JOIN indications i2 ON hi2.indication_id = i2.id
			WHERE hi2.herb_id = h.id AND i2.name ILIKE %s)`, next(i)))
	}
	if c := strings.TrimSpace(f.Constituent); c != "" {
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM constituents c2
			WHERE c2.herb_id = h.id AND (c2.name ILIKE %[1]s OR c2.class ILIKE %[1]s))`, next(c)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// herbOrder puts priority herbs first for text searches and featured herbs
// first when browsing.
func herbOrder(f repository.HerbFilter) string {
	if strings.TrimSpace(f.Query) != "" {
		return "h.is_priority DESC, h.common_name"
	}
	return "h.is_featured DESC, h.is_priority DESC, h.common_name"
}

func (r *herbRepository) Search(ctx context.Context, filter repository.HerbFilter) ([]*domain.HerbSummary, int, error) {
	filter.Limit, filter.Offset = repository.NormalizeHerbPage(filter.Limit, filter.Offset)
	where, args := herbWhere(filter)

	var total int
	countQuery := `SELECT COUNT(DISTINCT h.id) FROM herbs h ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count herbs", zap.Error(err))
		return nil, 0, err
	}

	searchQuery := fmt.Sprintf(`
		SELECT h.id, h.common_name, h.latin_name, COALESCE(h.family, ''), COALESCE(h.folk_uses, ''),
			h.is_priority, h.is_featured,
			array_agg(DISTINCT pp.name) FILTER (WHERE pp.name IS NOT NULL),
			array_agg(DISTINCT ma.name) FILTER (WHERE ma.name IS NOT NULL),
			array_agg(DISTINCT i.name) FILTER (WHERE i.name IS NOT NULL),
			array_agg(DISTINCT p.name) FILTER (WHERE p.name IS NOT NULL),
			array_agg(DISTINCT t.name) FILTER (WHERE t.name IS NOT NULL)
		FROM herbs h
		LEFT JOIN herb_plant_parts hpp ON h.id = hpp.herb_id
		LEFT JOIN plant_parts pp ON hpp.part_id = pp.id
		LEFT JOIN herb_medicinal_actions hma ON h.id = hma.herb_id
		LEFT JOIN medicinal_actions ma ON hma.action_id = ma.id
		LEFT JOIN herb_indications hi ON h.id = hi.herb_id
		LEFT JOIN indications i ON hi.indication_id = i.id
		LEFT JOIN herb_preparations hp ON h.id = hp.herb_id
		LEFT JOIN preparations p ON hp.preparation_id = p.id
		LEFT JOIN herb_tags ht ON h.id = ht.herb_id
		LEFT JOIN tags t ON ht.tag_id = t.id
		%s
		GROUP BY h.id
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, herbOrder(filter), len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, searchQuery, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		r.logger.Error("Failed to search herbs", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var herbs []*domain.HerbSummary
	for rows.Next() {
		var h domain.HerbSummary
		err := rows.Scan(
			&h.ID,
			&h.CommonName,
			&h.LatinName,
			&h.Family,
			&h.FolkUses,
			&h.IsPriority,
			&h.IsFeatured,
			pq.Array(&h.PlantPartsUsed),
			pq.Array(&h.MedicinalActions),
			pq.Array(&h.Indications),
			pq.Array(&h.BestPreparations),
			pq.Array(&h.Tags),
		)
		if err != nil {
			r.logger.Error("Failed to scan herb", zap.Error(err))
			return nil, 0, err
		}
		herbs = append(herbs, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return herbs, total, nil
}

func (r *herbRepository) GetByID(ctx context.Context, id string) (*domain.Herb, error) {
	herbQuery := `
		SELECT h.id, h.common_name, h.latin_name, COALESCE(h.family, ''), COALESCE(h.folk_uses, ''),
			COALESCE(h.dosage, ''), COALESCE(h.safety, ''), h.is_priority, h.is_featured,
			array_agg(DISTINCT pp.name) FILTER (WHERE pp.name IS NOT NULL),
			array_agg(DISTINCT ma.name) FILTER (WHERE ma.name IS NOT NULL),
			array_agg(DISTINCT i.name) FILTER (WHERE i.name IS NOT NULL),
			array_agg(DISTINCT p.name) FILTER (WHERE p.name IS NOT NULL),
			array_agg(DISTINCT hint_i.name) FILTER (WHERE hint_i.name IS NOT NULL),
			array_agg(DISTINCT s.name) FILTER (WHERE s.name IS NOT NULL),
			array_agg(DISTINCT t.name) FILTER (WHERE t.name IS NOT NULL)
		FROM herbs h
		LEFT JOIN herb_plant_parts hpp ON h.id = hpp.herb_id
		LEFT JOIN plant_parts pp ON hpp.part_id = pp.id
		LEFT JOIN herb_medicinal_actions hma ON h.id = hma.herb_id
		LEFT JOIN medicinal_actions ma ON hma.action_id = ma.id
		LEFT JOIN herb_indications hi ON h.id = hi.herb_id
		LEFT JOIN indications i ON hi.indication_id = i.id
		LEFT JOIN herb_preparations hp ON h.id = hp.herb_id
		LEFT JOIN preparations p ON hp.preparation_id = p.id
		LEFT JOIN herb_interactions hint ON h.id = hint.herb_id
		LEFT JOIN interactions hint_i ON hint.interaction_id = hint_i.id
		LEFT JOIN herb_sources hs ON h.id = hs.herb_id
		LEFT JOIN sources s ON hs.source_id = s.id
		LEFT JOIN herb_tags ht ON h.id = ht.herb_id
		LEFT JOIN tags t ON ht.tag_id = t.id
		WHERE h.id = $1
		GROUP BY h.id
	`

	var herb domain.Herb
	err := r.db.QueryRowContext(ctx, herbQuery, id).Scan(
		&herb.ID,
		&herb.CommonName,
		&herb.LatinName,
		&herb.Family,
		&herb.FolkUses,
		&herb.Dosage,
		&herb.Safety,
		&herb.IsPriority,
		&herb.IsFeatured,
		pq.Array(&herb.PlantPartsUsed),
		pq.Array(&herb.MedicinalActions),
		pq.Array(&herb.Indications),
		pq.Array(&herb.BestPreparations),
		pq.Array(&herb.Interactions),
		pq.Array(&herb.Sources),
		pq.Array(&herb.Tags),
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "herb", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get herb by ID", zap.String("herb_id", id), zap.Error(err))
		return nil, err
	}

	if herb.Constituents, err = r.constituents(ctx, id); err != nil {
		return nil, err
	}
	if herb.SolventRecommendations, err = r.solventRecommendations(ctx, id); err != nil {
		return nil, err
	}

	return &herb, nil
}

func (r *herbRepository) constituents(ctx context.Context, herbID string) ([]domain.Constituent, error) {
	query := `
		SELECT name, COALESCE(class, ''), COALESCE(water_soluble, false),
			COALESCE(ethanol_range, ''), COALESCE(notes, '')
		FROM constituents
		WHERE herb_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, herbID)
	if err != nil {
		r.logger.Error("Failed to query constituents", zap.String("herb_id", herbID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []domain.Constituent
	for rows.Next() {
		var c domain.Constituent
		if err := rows.Scan(&c.Name, &c.Class, &c.WaterSoluble, &c.EthanolRange, &c.Notes); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *herbRepository) solventRecommendations(ctx context.Context, herbID string) ([]domain.SolventRecommendation, error) {
	query := `
		SELECT preparation_type, COALESCE(ethanol_percent, ''), COALESCE(ratio, ''), COALESCE(notes, '')
		FROM solvent_recommendations
		WHERE herb_id = $1
		ORDER BY preparation_type
	`

	rows, err := r.db.QueryContext(ctx, query, herbID)
	if err != nil {
		r.logger.Error("Failed to query solvent recommendations", zap.String("herb_id", herbID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []domain.SolventRecommendation
	for rows.Next() {
		var s domain.SolventRecommendation
		if err := rows.Scan(&s.PreparationType, &s.EthanolPercent, &s.Ratio, &s.Notes); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *herbRepository) ListActions(ctx context.Context) ([]string, error) {
	return r.names(ctx, `SELECT DISTINCT name FROM medicinal_actions ORDER BY name`)
}

func (r *herbRepository) ListPreparations(ctx context.Context) ([]string, error) {
	return r.names(ctx, `SELECT DISTINCT name FROM preparations ORDER BY name`)
}

func (r *herbRepository) names(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list names", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
