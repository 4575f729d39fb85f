// Package jobs runs the scheduled financial digest: a periodic rollup
// of the current year's payroll emailed to the configured recipient.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hranalytics/internal/domain/analytics"
	"hranalytics/internal/platform/config"
	"hranalytics/internal/platform/email"
)

type Service struct {
	Analytics *analytics.Service
	Mailer    email.Mailer
	Cfg       config.Config
}

func New(svc *analytics.Service, mailer email.Mailer, cfg config.Config) *Service {
	return &Service{Analytics: svc, Mailer: mailer, Cfg: cfg}
}

// Start launches the digest loop; it is a no-op when no interval is
// configured.
func (s *Service) Start(ctx context.Context) {
	if s.Cfg.DigestInterval <= 0 {
		return
	}
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.Cfg.DigestInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunDigest(ctx); err != nil {
				slog.Error("financial digest failed", "err", err)
			}
		}
	}
}

// RunDigest computes the current-year financial summary and mails it.
func (s *Service) RunDigest(ctx context.Context) error {
	year := time.Now().Year()
	summary, err := s.Analytics.FinancialSummary(ctx, year)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Payroll financial digest %d", year)
	if err := s.Mailer.Send(ctx, s.Cfg.DigestRecipient, subject, FormatDigest(summary)); err != nil {
		return err
	}
	slog.Info("financial digest sent", "year", year, "to", s.Cfg.DigestRecipient)
	return nil
}

// FormatDigest renders the summary as a plain-text email body.
func FormatDigest(summary analytics.FinancialSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Financial summary for %d\n\n", summary.Year)

	if len(summary.MonthlyPayroll) == 0 {
		b.WriteString("No completed payroll runs recorded this year.\n")
	} else {
		b.WriteString("Monthly payroll:\n")
		for _, month := range summary.MonthlyPayroll {
			fmt.Fprintf(&b, "  %s: gross %.2f, deductions %.2f, net %.2f\n",
				time.Month(month.Month), month.TotalGross, month.TotalDeductions, month.TotalNet)
		}
	}

	if len(summary.BenefitsBreakdown) > 0 {
		b.WriteString("\nDeductions by type:\n")
		for _, item := range summary.BenefitsBreakdown {
			fmt.Fprintf(&b, "  %s: %.2f\n", item.DeductionType, item.TotalAmount)
		}
	}

	totals := summary.AnnualTotals
	if totals.TotalGrossPay != nil {
		fmt.Fprintf(&b, "\nAnnual totals: gross %.2f, deductions %.2f, net %.2f\n",
			*totals.TotalGrossPay, *totals.TotalDeductions, *totals.TotalNetPay)
	}
	return b.String()
}
