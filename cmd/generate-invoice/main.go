// Command generate-invoice creates a draft invoice for a client and
// fills it from the client's approved time entries. It is a one-shot
// tool intended for operators and external cron jobs.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/adapter/postgres"
	billingrulerepo "github.com/heartmarshall/billops-backend/internal/adapter/postgres/billingrule"
	entryrepo "github.com/heartmarshall/billops-backend/internal/adapter/postgres/entry"
	invoicerepo "github.com/heartmarshall/billops-backend/internal/adapter/postgres/invoice"
	"github.com/heartmarshall/billops-backend/internal/app"
	"github.com/heartmarshall/billops-backend/internal/config"
	"github.com/heartmarshall/billops-backend/internal/domain"
	"github.com/heartmarshall/billops-backend/internal/service/analytics"
	"github.com/heartmarshall/billops-backend/internal/service/billing"
)

func main() {
	var (
		clientFlag  = flag.String("client", "", "client UUID (required)")
		projectFlag = flag.String("project", "", "project UUID (optional, defaults to all projects)")
		monthFlag   = flag.String("month", "", "billing month as YYYY-MM (optional, defaults to last month)")
		numberFlag  = flag.String("number", "", "invoice number (optional, generated when empty)")
		taxFlag     = flag.Int("tax-cents", 0, "tax amount in cents added to the subtotal")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	clientID, err := uuid.Parse(*clientFlag)
	if err != nil {
		logger.Error("invalid -client flag", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var projectID *uuid.UUID
	if *projectFlag != "" {
		id, err := uuid.Parse(*projectFlag)
		if err != nil {
			logger.Error("invalid -project flag", slog.String("error", err.Error()))
			os.Exit(1)
		}
		projectID = &id
	}

	periodStart, periodEnd, err := billingPeriod(*monthFlag)
	if err != nil {
		logger.Error("invalid -month flag", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	entries := entryrepo.New(pool)
	rules := billingrulerepo.New(pool)
	invoices := invoicerepo.New(pool)
	collector := analytics.NewCollector()
	svc := billing.NewService(logger, entries, rules, invoices, postgres.NewTxManager(pool), collector)

	now := time.Now().UTC()
	number := *numberFlag
	if number == "" {
		number = fmt.Sprintf("INV-%s-%s", now.Format("200601"), uuid.New().String()[:8])
	}
	dueDate := now.AddDate(0, 0, cfg.Billing.DueDays)

	draft, err := invoices.Create(ctx, &domain.Invoice{
		ID:          uuid.New(),
		ClientID:    clientID,
		ProjectID:   projectID,
		Number:      number,
		Currency:    cfg.Billing.DefaultCurrency,
		Status:      domain.InvoiceStatusDraft,
		IssueDate:   now,
		DueDate:     &dueDate,
		TaxCents:    *taxFlag,
		PeriodStart: &periodStart,
		PeriodEnd:   &periodEnd,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		logger.Error("create draft invoice", slog.String("error", err.Error()))
		os.Exit(1)
	}

	res, err := svc.GenerateInvoice(ctx, billing.GenerateInvoiceInput{
		InvoiceID:   draft.ID,
		ClientID:    clientID,
		ProjectID:   projectID,
		PeriodStart: &periodStart,
		PeriodEnd:   &periodEnd,
	})
	if err != nil {
		logger.Error("generate invoice",
			slog.String("invoice_id", draft.ID.String()),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("invoice generated",
		slog.String("invoice_id", draft.ID.String()),
		slog.String("number", number),
		slog.Int("entries_billed", res.EntriesBilled),
		slog.Int("line_items", len(res.LineItems)),
		slog.Int("subtotal_cents", res.SubtotalCents),
		slog.Int("total_cents", res.TotalCents),
	)
}

// billingPeriod parses YYYY-MM into [start of month, start of next month).
// An empty month means the previous calendar month.
func billingPeriod(month string) (time.Time, time.Time, error) {
	if month == "" {
		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return start, start.AddDate(0, 1, 0), nil
	}

	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("expected YYYY-MM: %w", err)
	}
	return start, start.AddDate(0, 1, 0), nil
}
