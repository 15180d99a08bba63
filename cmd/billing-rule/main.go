// Command billing-rule manages a project's billing rules: it creates a
// new rule, optionally closing the project's currently active one at the
// new rule's start. One-shot operator tool.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/adapter/postgres"
	billingrulerepo "github.com/heartmarshall/billops-backend/internal/adapter/postgres/billingrule"
	"github.com/heartmarshall/billops-backend/internal/app"
	"github.com/heartmarshall/billops-backend/internal/config"
	"github.com/heartmarshall/billops-backend/internal/domain"
	"github.com/heartmarshall/billops-backend/internal/service/billing"
)

func main() {
	var (
		projectFlag   = flag.String("project", "", "project UUID (required)")
		rateFlag      = flag.Int("rate-cents", 0, "hourly rate in cents")
		currencyFlag  = flag.String("currency", "", "ISO currency code (defaults to config)")
		incrementFlag = flag.Int("increment-minutes", 0, "rounding increment in minutes")
		overtimeFlag  = flag.Float64("overtime-multiplier", 1.0, "rate multiplier past the hour cap")
		capFlag       = flag.Float64("cap-hours", 0, "hour cap before overtime pricing (0 = none)")
		fromFlag      = flag.String("effective-from", "", "rule start as YYYY-MM-DD (defaults to now)")
		replaceFlag   = flag.Bool("replace", false, "close the currently active rule at the new rule's start")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	projectID, err := uuid.Parse(*projectFlag)
	if err != nil {
		logger.Error("invalid -project flag", slog.String("error", err.Error()))
		os.Exit(1)
	}

	now := time.Now().UTC()
	effectiveFrom := now
	if *fromFlag != "" {
		effectiveFrom, err = time.Parse(time.DateOnly, *fromFlag)
		if err != nil {
			logger.Error("invalid -effective-from flag", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	rules := billingrulerepo.New(pool)

	if *replaceFlag {
		existing, err := rules.ListByProject(ctx, projectID)
		if err != nil {
			logger.Error("list billing rules", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if active := billing.ResolveActiveRule(existing, projectID, effectiveFrom); active != nil {
			if err := rules.Close(ctx, active.ID, effectiveFrom); err != nil {
				logger.Error("close active rule",
					slog.String("rule_id", active.ID.String()),
					slog.String("error", err.Error()),
				)
				os.Exit(1)
			}
			logger.Info("closed previous rule", slog.String("rule_id", active.ID.String()))
		}
	}

	currency := *currencyFlag
	if currency == "" {
		currency = cfg.Billing.DefaultCurrency
	}
	var capHours *float64
	if *capFlag > 0 {
		capHours = capFlag
	}

	rule, err := rules.Create(ctx, &domain.BillingRule{
		ID:                       uuid.New(),
		ProjectID:                projectID,
		RuleType:                 domain.RuleTypeHourly,
		RateCents:                *rateFlag,
		Currency:                 currency,
		RoundingIncrementMinutes: *incrementFlag,
		OvertimeMultiplier:       *overtimeFlag,
		CapHours:                 capHours,
		EffectiveFrom:            effectiveFrom,
		CreatedAt:                now,
		UpdatedAt:                now,
	})
	if err != nil {
		logger.Error("create billing rule", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("billing rule created",
		slog.String("rule_id", rule.ID.String()),
		slog.String("project_id", projectID.String()),
		slog.Int("rate_cents", rule.RateCents),
		slog.String("currency", rule.Currency),
		slog.Time("effective_from", rule.EffectiveFrom),
	)
}
