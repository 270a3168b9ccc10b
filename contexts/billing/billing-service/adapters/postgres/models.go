package postgresadapter

import (
	"strings"
	"time"

	"billcore/contexts/billing/billing-service/domain/entities"
)

type customerModel struct {
	CustomerID string    `gorm:"column:customer_id;primaryKey"`
	OwnerID    string    `gorm:"column:owner_id;uniqueIndex"`
	Name       string    `gorm:"column:name"`
	Email      string    `gorm:"column:email;uniqueIndex"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (customerModel) TableName() string { return "billing_customers" }

func customerModelFromEntity(item entities.Customer) customerModel {
	return customerModel{
		CustomerID: strings.TrimSpace(item.CustomerID),
		OwnerID:    strings.TrimSpace(item.OwnerID),
		Name:       strings.TrimSpace(item.Name),
		Email:      strings.TrimSpace(item.Email),
		CreatedAt:  item.CreatedAt.UTC(),
	}
}

func (m customerModel) toEntity() entities.Customer {
	return entities.Customer{
		CustomerID: m.CustomerID,
		OwnerID:    m.OwnerID,
		Name:       m.Name,
		Email:      m.Email,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type subscriptionModel struct {
	SubscriptionID  string     `gorm:"column:subscription_id;primaryKey"`
	CustomerID      string     `gorm:"column:customer_id;index"`
	PlanID          string     `gorm:"column:plan_id;index"`
	Status          string     `gorm:"column:status"`
	StartDate       time.Time  `gorm:"column:start_date"`
	NextBillingDate *time.Time `gorm:"column:next_billing_date"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (subscriptionModel) TableName() string { return "subscriptions" }

func subscriptionModelFromEntity(item entities.Subscription) subscriptionModel {
	row := subscriptionModel{
		SubscriptionID: strings.TrimSpace(item.SubscriptionID),
		CustomerID:     strings.TrimSpace(item.CustomerID),
		PlanID:         strings.TrimSpace(item.PlanID),
		Status:         string(item.Status),
		StartDate:      item.StartDate.UTC(),
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
	if item.NextBillingDate != nil {
		next := item.NextBillingDate.UTC()
		row.NextBillingDate = &next
	}
	return row
}

func (m subscriptionModel) toEntity() entities.Subscription {
	item := entities.Subscription{
		SubscriptionID: m.SubscriptionID,
		CustomerID:     m.CustomerID,
		PlanID:         m.PlanID,
		Status:         entities.SubscriptionStatus(m.Status),
		StartDate:      m.StartDate.UTC(),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
	if m.NextBillingDate != nil {
		next := m.NextBillingDate.UTC()
		item.NextBillingDate = &next
	}
	return item
}

type invoiceModel struct {
	InvoiceID      string    `gorm:"column:invoice_id;primaryKey"`
	SubscriptionID string    `gorm:"column:subscription_id;index"`
	AmountCents    int64     `gorm:"column:amount_cents"`
	Status         string    `gorm:"column:status;index"`
	IssuedAt       time.Time `gorm:"column:issued_at"`
	DueDate        time.Time `gorm:"column:due_date"`
}

func (invoiceModel) TableName() string { return "invoices" }

func invoiceModelFromEntity(item entities.Invoice) invoiceModel {
	return invoiceModel{
		InvoiceID:      strings.TrimSpace(item.InvoiceID),
		SubscriptionID: strings.TrimSpace(item.SubscriptionID),
		AmountCents:    item.AmountCents,
		Status:         string(item.Status),
		IssuedAt:       item.IssuedAt.UTC(),
		DueDate:        item.DueDate.UTC(),
	}
}

func (m invoiceModel) toEntity() entities.Invoice {
	return entities.Invoice{
		InvoiceID:      m.InvoiceID,
		SubscriptionID: m.SubscriptionID,
		AmountCents:    m.AmountCents,
		Status:         entities.InvoiceStatus(m.Status),
		IssuedAt:       m.IssuedAt.UTC(),
		DueDate:        m.DueDate.UTC(),
	}
}

type paymentModel struct {
	PaymentID   string    `gorm:"column:payment_id;primaryKey"`
	InvoiceID   string    `gorm:"column:invoice_id;index"`
	AmountCents int64     `gorm:"column:amount_cents"`
	Method      string    `gorm:"column:method"`
	Status      string    `gorm:"column:status"`
	PaidAt      time.Time `gorm:"column:paid_at"`
	Reference   string    `gorm:"column:reference;uniqueIndex"`
}

func (paymentModel) TableName() string { return "payments" }

func paymentModelFromEntity(item entities.Payment) paymentModel {
	return paymentModel{
		PaymentID:   strings.TrimSpace(item.PaymentID),
		InvoiceID:   strings.TrimSpace(item.InvoiceID),
		AmountCents: item.AmountCents,
		Method:      string(item.Method),
		Status:      string(item.Status),
		PaidAt:      item.PaidAt.UTC(),
		Reference:   strings.TrimSpace(item.Reference),
	}
}

func (m paymentModel) toEntity() entities.Payment {
	return entities.Payment{
		PaymentID:   m.PaymentID,
		InvoiceID:   m.InvoiceID,
		AmountCents: m.AmountCents,
		Method:      entities.PaymentMethod(m.Method),
		Status:      entities.PaymentStatus(m.Status),
		PaidAt:      m.PaidAt.UTC(),
		Reference:   m.Reference,
	}
}

// planModel is a read-only projection of the catalog's plans table. Billing
// never writes it.
type planModel struct {
	PlanID       string `gorm:"column:plan_id;primaryKey"`
	Name         string `gorm:"column:name"`
	PriceCents   int64  `gorm:"column:price_cents"`
	BillingCycle string `gorm:"column:billing_cycle"`
	Active       bool   `gorm:"column:active"`
}

func (planModel) TableName() string { return "plans" }

func (m planModel) toEntity() entities.Plan {
	return entities.Plan{
		PlanID:       m.PlanID,
		Name:         m.Name,
		PriceCents:   m.PriceCents,
		BillingCycle: entities.BillingCycle(m.BillingCycle),
		Active:       m.Active,
	}
}

type idempotencyModel struct {
	Key         string    `gorm:"column:key;primaryKey"`
	RequestHash string    `gorm:"column:request_hash"`
	Payload     []byte    `gorm:"column:payload"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index"`
}

func (idempotencyModel) TableName() string { return "billing_idempotency" }
