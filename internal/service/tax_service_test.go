package service

import (
	"testing"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
)

func TestEstimateAnnualTax_FirstBracket(t *testing.T) {
	svc := NewTaxService(nil)

	// $50,000 entirely inside the 15% bracket
	if got := svc.EstimateAnnualTax(5_000_000); got != 750_000 {
		t.Errorf("Expected 750000, got %d", got)
	}
}

func TestEstimateAnnualTax_CrossesBrackets(t *testing.T) {
	svc := NewTaxService(nil)

	// $60,000: 15% up to the first threshold, 20.5% on the rest
	// 5586700*0.15 + 413300*0.205 = 838005 + 84726.5
	if got := svc.EstimateAnnualTax(6_000_000); got != 922_732 {
		t.Errorf("Expected 922732, got %d", got)
	}
}

func TestEstimateAnnualTax_NonPositiveIncome(t *testing.T) {
	svc := NewTaxService(nil)

	if got := svc.EstimateAnnualTax(0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if got := svc.EstimateAnnualTax(-100); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestEstimateNetMonthlyIncome(t *testing.T) {
	svc := NewTaxService(nil)

	// ($50,000 - $7,500) / 12
	if got := svc.EstimateNetMonthlyIncome(5_000_000); got != 354_167 {
		t.Errorf("Expected 354167, got %d", got)
	}
}

func TestTaxService_CustomBrackets(t *testing.T) {
	svc := NewTaxService([]TaxBracket{
		{Threshold: 0, Rate: 1000},
		{Threshold: 1_000_000, Rate: 2000},
	})

	// 1000000*0.10 + 500000*0.20
	if got := svc.EstimateAnnualTax(1_500_000); got != domain.Cents(200_000) {
		t.Errorf("Expected 200000, got %d", got)
	}
}
