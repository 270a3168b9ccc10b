package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"billcore/contexts/catalog/plan-service/domain/entities"
	domainerrors "billcore/contexts/catalog/plan-service/domain/errors"
	"billcore/contexts/catalog/plan-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreatePlan(ctx context.Context, plan entities.Plan) error {
	row := planModelFromEntity(plan)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetPlan(ctx context.Context, planID string) (entities.Plan, error) {
	var row planModel
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", strings.TrimSpace(planID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Plan{}, domainerrors.ErrPlanNotFound
		}
		return entities.Plan{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPlans(ctx context.Context) ([]entities.Plan, error) {
	var rows []planModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Plan, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdatePlan(ctx context.Context, plan entities.Plan) error {
	result := r.db.WithContext(ctx).
		Model(&planModel{}).
		Where("plan_id = ?", strings.TrimSpace(plan.PlanID)).
		Updates(map[string]any{
			"name":          strings.TrimSpace(plan.Name),
			"price_cents":   plan.PriceCents,
			"billing_cycle": string(plan.BillingCycle),
			"active":        plan.Active,
			"updated_at":    plan.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPlanNotFound
	}
	return nil
}

func (r *Repository) DeletePlan(ctx context.Context, planID string) error {
	result := r.db.WithContext(ctx).
		Where("plan_id = ?", strings.TrimSpace(planID)).
		Delete(&planModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPlanNotFound
	}
	return nil
}

type planModel struct {
	PlanID       string    `gorm:"column:plan_id;primaryKey"`
	Name         string    `gorm:"column:name"`
	PriceCents   int64     `gorm:"column:price_cents"`
	BillingCycle string    `gorm:"column:billing_cycle"`
	Active       bool      `gorm:"column:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (planModel) TableName() string {
	return "plans"
}

func planModelFromEntity(item entities.Plan) planModel {
	return planModel{
		PlanID:       strings.TrimSpace(item.PlanID),
		Name:         strings.TrimSpace(item.Name),
		PriceCents:   item.PriceCents,
		BillingCycle: string(item.BillingCycle),
		Active:       item.Active,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m planModel) toEntity() entities.Plan {
	return entities.Plan{
		PlanID:       m.PlanID,
		Name:         m.Name,
		PriceCents:   m.PriceCents,
		BillingCycle: entities.BillingCycle(m.BillingCycle),
		Active:       m.Active,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
