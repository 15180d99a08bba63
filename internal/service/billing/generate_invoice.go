package billing

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// GenerateInvoice prices all approved time entries in scope and commits
// them onto the given draft invoice: line items, exact totals, and the
// approved→billed transition happen in one transaction.
//
// At-most-once billing: the conditional status updates run first inside
// the transaction, and a shortfall in affected rows aborts the whole
// transaction with ErrAlreadyBilled. Two concurrent runs over
// overlapping entries therefore cannot both commit line items for the
// same entry — the losing run writes nothing.
func (s *Service) GenerateInvoice(ctx context.Context, in GenerateInvoiceInput) (*GenerateInvoiceResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	invoice, err := s.invoices.GetByID(ctx, in.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", in.InvoiceID, err)
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return nil, fmt.Errorf("invoice %s is %s, expected draft: %w", invoice.ID, invoice.Status, domain.ErrConflict)
	}

	entries, err := s.entries.ListApproved(ctx, in.ClientID, in.ProjectID, in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("list approved entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("invoice %s: %w", in.InvoiceID, domain.ErrNoBillableEntries)
	}

	items, claims, subtotalCents, err := s.priceEntries(ctx, invoice.ID, entries)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].ID = uuid.New()
	}
	totalCents := subtotalCents + invoice.TaxCents

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		billed := 0
		for _, c := range claims {
			n, err := s.entries.MarkBilled(ctx, c.entryIDs, c.ruleID)
			if err != nil {
				return fmt.Errorf("mark entries billed: %w", err)
			}
			billed += n
		}
		if billed != len(entries) {
			return fmt.Errorf("claimed %d of %d entries: %w", billed, len(entries), domain.ErrAlreadyBilled)
		}
		if err := s.invoices.InsertLineItems(ctx, items); err != nil {
			return fmt.Errorf("insert line items: %w", err)
		}
		if err := s.invoices.UpdateTotals(ctx, invoice.ID, subtotalCents, totalCents); err != nil {
			return fmt.Errorf("update invoice totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate invoice %s: %w", invoice.ID, err)
	}

	s.collector.RecordInvoice(len(items), subtotalCents)
	s.log.InfoContext(ctx, "invoice generated",
		"invoice_id", invoice.ID,
		"entries_billed", len(entries),
		"line_items", len(items),
		"subtotal_cents", subtotalCents,
		"total_cents", totalCents,
	)

	return &GenerateInvoiceResult{
		LineItems:     items,
		EntriesBilled: len(entries),
		SubtotalCents: subtotalCents,
		TotalCents:    totalCents,
	}, nil
}

// entryClaim groups the entries of one project with the rule id they
// were priced under, so the billed transition can stamp it.
type entryClaim struct {
	ruleID   *uuid.UUID
	entryIDs []uuid.UUID
}

// priceEntries resolves a rule and computes line items per project, so an
// invoice spanning several of a client's projects prices each project
// under its own active rule. Hour caps accumulate per project.
func (s *Service) priceEntries(ctx context.Context, invoiceID uuid.UUID, entries []domain.TimeEntry) ([]domain.InvoiceLineItem, []entryClaim, int, error) {
	ordered := make([]domain.TimeEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.Before(ordered[j].StartedAt)
	})

	byProject := make(map[uuid.UUID][]domain.TimeEntry)
	var projectOrder []uuid.UUID
	for _, e := range ordered {
		if _, seen := byProject[e.ProjectID]; !seen {
			projectOrder = append(projectOrder, e.ProjectID)
		}
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e)
	}

	at := s.now()
	var items []domain.InvoiceLineItem
	var claims []entryClaim
	subtotalCents := 0
	for _, projectID := range projectOrder {
		rules, err := s.rules.ListByProject(ctx, projectID)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("list billing rules for project %s: %w", projectID, err)
		}
		rule := ResolveActiveRule(rules, projectID, at)
		if rule == nil {
			s.log.WarnContext(ctx, "no active billing rule, billing at zero rate",
				"project_id", projectID,
				"at", at,
			)
		}

		projectItems, projectSubtotal, err := ComputeLineItems(invoiceID, byProject[projectID], rule)
		if err != nil {
			return nil, nil, 0, err
		}
		items = append(items, projectItems...)
		subtotalCents += projectSubtotal

		claim := entryClaim{entryIDs: make([]uuid.UUID, 0, len(byProject[projectID]))}
		if rule != nil {
			ruleID := rule.ID
			claim.ruleID = &ruleID
		}
		for _, e := range byProject[projectID] {
			claim.entryIDs = append(claim.entryIDs, e.ID)
		}
		claims = append(claims, claim)
	}

	return items, claims, subtotalCents, nil
}
