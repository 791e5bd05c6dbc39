package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

func newInvoiceService(store *mockStore) *service.InvoiceService {
	return service.NewInvoiceService(store, observability.NewMetrics(), zap.NewNop())
}

func TestInvoiceUpdateRejectsNegativeValue(t *testing.T) {
	svc := newInvoiceService(&mockStore{})

	_, err := svc.Update(context.Background(), "chave-1", 1, &domain.Invoice{Value: ptrF(-10)})
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if verr.Field != "valor" {
		t.Errorf("field = %q, want valor", verr.Field)
	}
}

func TestInvoiceUpdateSetsTenantKey(t *testing.T) {
	var got *domain.Invoice
	store := &mockStore{
		updateInvoiceFn: func(ctx context.Context, id int64, inv *domain.Invoice) (*domain.Invoice, error) {
			got = inv
			return inv, nil
		},
	}
	svc := newInvoiceService(store)

	if _, err := svc.Update(context.Background(), "chave-1", 1, &domain.Invoice{Value: ptrF(100)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.TenantKey != "chave-1" {
		t.Errorf("tenant key = %q, want chave-1", got.TenantKey)
	}
}

func TestRegisterPaymentValidation(t *testing.T) {
	svc := newInvoiceService(&mockStore{})

	err := svc.RegisterPayment(context.Background(), "chave-1", 1, day(2025, time.March, 5), 0)
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) || verr.Field != "formaPagamentoId" {
		t.Fatalf("err = %v, want validation on formaPagamentoId", err)
	}

	err = svc.RegisterPayment(context.Background(), "chave-1", 1, time.Time{}, 3)
	if !errors.As(err, &verr) || verr.Field != "dataPagamento" {
		t.Fatalf("err = %v, want validation on dataPagamento", err)
	}
}

func TestRegisterPaymentForwardsToStore(t *testing.T) {
	var gotID, gotMethod int64
	var gotDate time.Time
	store := &mockStore{
		registerPaymentFn: func(ctx context.Context, id int64, paidDate time.Time, paymentMethodID int64) error {
			gotID, gotDate, gotMethod = id, paidDate, paymentMethodID
			return nil
		},
	}
	svc := newInvoiceService(store)

	paid := day(2025, time.March, 5)
	if err := svc.RegisterPayment(context.Background(), "chave-1", 9, paid, 3); err != nil {
		t.Fatalf("RegisterPayment returned error: %v", err)
	}
	if gotID != 9 || gotMethod != 3 || !gotDate.Equal(paid) {
		t.Errorf("store got id=%d method=%d date=%v", gotID, gotMethod, gotDate)
	}
}

func TestInvoiceDeleteWrapsStoreError(t *testing.T) {
	store := &mockStore{
		deleteInvoiceFn: func(ctx context.Context, id int64) error {
			return errors.New("boom")
		},
	}
	svc := newInvoiceService(store)

	if err := svc.Delete(context.Background(), "chave-1", 1); err == nil {
		t.Fatal("expected error from store")
	}
}
