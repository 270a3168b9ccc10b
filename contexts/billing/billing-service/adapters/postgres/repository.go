// Package postgresadapter persists the billing aggregate in Postgres via
// GORM. Multi-entity operations run in transactions with row locks; races on
// uniqueness constraints resolve by re-reading.
package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
	"billcore/contexts/billing/billing-service/domain/services"
	"billcore/contexts/billing/billing-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) CreateCustomer(ctx context.Context, customer entities.Customer) error {
	row := customerModelFromEntity(customer)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCustomerConflict
		}
		return err
	}
	return nil
}

func (r *Repository) GetOrCreateCustomerByOwner(ctx context.Context, candidate entities.Customer) (entities.Customer, error) {
	row := customerModelFromEntity(candidate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
	if err != nil && !isUniqueViolation(err) {
		return entities.Customer{}, err
	}
	// The insert may have lost the race; the row for the owner is the truth.
	return r.FindCustomerByOwner(ctx, candidate.OwnerID)
}

func (r *Repository) FindCustomerByOwner(ctx context.Context, ownerID string) (entities.Customer, error) {
	var row customerModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", strings.TrimSpace(ownerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Customer{}, domainerrors.ErrCustomerNotFound
		}
		return entities.Customer{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCustomer(ctx context.Context, customerID string) (entities.Customer, error) {
	var row customerModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", strings.TrimSpace(customerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Customer{}, domainerrors.ErrCustomerNotFound
		}
		return entities.Customer{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	var rows []customerModel
	if err := r.db.WithContext(ctx).
		Order("customer_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Customer, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateSubscriptionWithInvoice(ctx context.Context, subscription entities.Subscription, invoice entities.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subRow := subscriptionModelFromEntity(subscription)
		if err := tx.Create(&subRow).Error; err != nil {
			return err
		}
		invRow := invoiceModelFromEntity(invoice)
		return tx.Create(&invRow).Error
	})
}

func (r *Repository) GetSubscription(ctx context.Context, subscriptionID string) (entities.Subscription, error) {
	var row subscriptionModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", strings.TrimSpace(subscriptionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
		}
		return entities.Subscription{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSubscriptionsByCustomer(ctx context.Context, customerID string) ([]entities.Subscription, error) {
	var rows []subscriptionModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", strings.TrimSpace(customerID)).
		Order("created_at ASC, subscription_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Subscription, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateSubscription(ctx context.Context, subscription entities.Subscription) error {
	var next any
	if subscription.NextBillingDate != nil {
		next = subscription.NextBillingDate.UTC()
	}
	result := r.db.WithContext(ctx).
		Model(&subscriptionModel{}).
		Where("subscription_id = ?", strings.TrimSpace(subscription.SubscriptionID)).
		Updates(map[string]any{
			"plan_id":           strings.TrimSpace(subscription.PlanID),
			"status":            string(subscription.Status),
			"next_billing_date": next,
			"updated_at":        subscription.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubscriptionNotFound
	}
	return nil
}

func (r *Repository) AddInvoice(ctx context.Context, invoice entities.Invoice) error {
	row := invoiceModelFromEntity(invoice)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	var row invoiceModel
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", strings.TrimSpace(invoiceID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Invoice{}, domainerrors.ErrInvoiceNotFound
		}
		return entities.Invoice{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindOpenInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	var row invoiceModel
	err := r.db.WithContext(ctx).
		Where("invoice_id = ? AND status = ?", strings.TrimSpace(invoiceID), string(entities.InvoiceStatusOpen)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Invoice{}, domainerrors.ErrInvoiceNotFound
		}
		return entities.Invoice{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListInvoicesByCustomer(ctx context.Context, customerID string) ([]entities.Invoice, error) {
	var rows []invoiceModel
	err := r.db.WithContext(ctx).
		Model(&invoiceModel{}).
		Joins("JOIN subscriptions ON subscriptions.subscription_id = invoices.subscription_id").
		Where("subscriptions.customer_id = ?", strings.TrimSpace(customerID)).
		Order("invoices.issued_at DESC, invoices.invoice_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Invoice, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// SettleOpenInvoice locks the invoice row, re-checks OPEN status so a
// concurrent settlement of the same invoice fails with not-found, records the
// payment, flips the invoice to PAID, and advances the subscription schedule
// when this invoice opened the current period. One transaction commits or
// none of it happens.
func (r *Repository) SettleOpenInvoice(
	ctx context.Context,
	invoiceID string,
	payment entities.Payment,
	cycle entities.BillingCycle,
	now time.Time,
) (entities.Payment, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invRow invoiceModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("invoice_id = ? AND status = ?", strings.TrimSpace(invoiceID), string(entities.InvoiceStatusOpen)).
			First(&invRow).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvoiceNotFound
			}
			return err
		}

		var subRow subscriptionModel
		err = tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("subscription_id = ?", invRow.SubscriptionID).
			First(&subRow).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrSubscriptionNotFound
			}
			return err
		}

		payRow := paymentModelFromEntity(payment)
		if err := tx.Create(&payRow).Error; err != nil {
			return err
		}
		if payment.Status != entities.PaymentStatusSuccess {
			return nil
		}

		if err := tx.
			Model(&invoiceModel{}).
			Where("invoice_id = ?", invRow.InvoiceID).
			Update("status", string(entities.InvoiceStatusPaid)).
			Error; err != nil {
			return err
		}

		invoice := invRow.toEntity()
		invoice.Status = entities.InvoiceStatusPaid
		next, advance, err := services.AdvanceOnSettlement(subRow.toEntity(), invoice, cycle)
		if err != nil {
			return err
		}
		if !advance {
			return nil
		}
		return tx.
			Model(&subscriptionModel{}).
			Where("subscription_id = ?", subRow.SubscriptionID).
			Updates(map[string]any{
				"next_billing_date": next.UTC(),
				"updated_at":        now.UTC(),
			}).
			Error
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return payment, nil
}

func (r *Repository) GetPayment(ctx context.Context, paymentID string) (entities.Payment, error) {
	var row paymentModel
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", strings.TrimSpace(paymentID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Payment{}, domainerrors.ErrPaymentNotFound
		}
		return entities.Payment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPaymentsByCustomer(ctx context.Context, customerID string) ([]entities.Payment, error) {
	var rows []paymentModel
	err := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Joins("JOIN invoices ON invoices.invoice_id = payments.invoice_id").
		Joins("JOIN subscriptions ON subscriptions.subscription_id = invoices.subscription_id").
		Where("subscriptions.customer_id = ?", strings.TrimSpace(customerID)).
		Order("payments.paid_at DESC, payments.payment_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// GetPlan reads the catalog projection. Billing treats plans as read-only.
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

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, now.UTC()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}
	return ports.IdempotencyRecord{
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Payload:     row.Payload,
		ExpiresAt:   row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) Put(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:         record.Key,
		RequestHash: record.RequestHash,
		Payload:     record.Payload,
		ExpiresAt:   record.ExpiresAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.IdempotencyStore = (*Repository)(nil)
var _ ports.PlanCatalog = (*Repository)(nil)
