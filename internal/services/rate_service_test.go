package services

import (
	"testing"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func uintPtr(v uint) *uint        { return &v }

func TestChargeableWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                          string
		weight, length, width, height float64
		expected                      float64
	}{
		{"no dimensions", 7, 0, 0, 0, 7},
		{"one dimension missing", 7, 40, 30, 0, 7},
		{"volumetric below actual", 7, 20, 20, 20, 7},
		{"volumetric dominates", 2, 50, 40, 30, 12}, // 60000 / 5000
		{"negative dimension ignored", 3, -10, 20, 20, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChargeableWeight(tt.weight, tt.length, tt.width, tt.height, 5000)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestTierTotal(t *testing.T) {
	t.Parallel()

	t.Run("weight within base allowance", func(t *testing.T) {
		total, additional := TierTotal(14, 1, 5, 4.5)
		assert.InDelta(t, 14.0, total, 1e-9)
		assert.Zero(t, additional)
	})

	t.Run("weight at the cap exactly", func(t *testing.T) {
		total, _ := TierTotal(14, 1, 5, 5)
		assert.InDelta(t, 14.0, total, 1e-9)
	})

	t.Run("excess weight billed per kg", func(t *testing.T) {
		// DOM tier 14.00 AED base, 1.00/kg over 5 kg, 7 kg parcel.
		total, additional := TierTotal(14, 1, 5, 7)
		assert.InDelta(t, 16.0, total, 1e-9)
		assert.InDelta(t, 2.0, additional, 1e-9)
	})
}

func TestCODFeeClamp(t *testing.T) {
	t.Parallel()

	t.Run("percentage within bounds", func(t *testing.T) {
		// 500.00 at 3.3% between 8.00 and 50.00 -> 16.50.
		assert.InDelta(t, 16.5, CODFee(500, 3.3, 8, 50), 1e-9)
	})

	t.Run("minimum floor applies", func(t *testing.T) {
		// 100.00 at 3.3% is 3.30, floored to 8.00.
		assert.InDelta(t, 8.0, CODFee(100, 3.3, 8, 0), 1e-9)
	})

	t.Run("maximum cap applies", func(t *testing.T) {
		assert.InDelta(t, 50.0, CODFee(10000, 3.3, 8, 50), 1e-9)
	})

	t.Run("zero max means unbounded", func(t *testing.T) {
		assert.InDelta(t, 330.0, CODFee(10000, 3.3, 8, 0), 1e-9)
	})

	t.Run("monotonic below the cap", func(t *testing.T) {
		prev := 0.0
		for amount := 50.0; amount <= 1500; amount += 50 {
			fee := CODFee(amount, 3.3, 8, 50)
			assert.GreaterOrEqual(t, fee, prev, "fee decreased at amount %.2f", amount)
			prev = fee
		}
	})
}

func newRateFixture() (*fakeClientRepo, *fakeTierRepo, RateService) {
	clientRepo := newFakeClientRepo(&models.ClientAccount{ID: 1, CompanyName: "Acme Trading", IsActive: true})
	tierRepo := newFakeTierRepo(
		&models.RateTier{ID: 1, Name: "DOM starter", ServiceType: models.ServiceDOM, MinVolume: 0, MaxVolume: intPtr(100), BaseRate: 14, AdditionalKgRate: 1, MaxWeight: 5, IsActive: true},
		&models.RateTier{ID: 2, Name: "DOM volume", ServiceType: models.ServiceDOM, MinVolume: 101, BaseRate: 12, AdditionalKgRate: 0.8, MaxWeight: 5, IsActive: true},
		&models.RateTier{ID: 3, Name: "SDD flat", ServiceType: models.ServiceSDD, MinVolume: 0, BaseRate: 25, AdditionalKgRate: 2, MaxWeight: 5, IsActive: true},
	)
	return clientRepo, tierRepo, NewRateService(clientRepo, tierRepo, newFakeSettings())
}

func TestCalculateRate(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive weight", func(t *testing.T) {
		_, _, svc := newRateFixture()
		_, err := svc.CalculateRate(1, models.ServiceDOM, 0, 0, 0, 0)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	t.Run("rejects unknown service type", func(t *testing.T) {
		_, _, svc := newRateFixture()
		_, err := svc.CalculateRate(1, "EXPRESS", 2, 0, 0, 0)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	t.Run("unknown client is NOT_FOUND", func(t *testing.T) {
		_, _, svc := newRateFixture()
		_, err := svc.CalculateRate(99, models.ServiceDOM, 2, 0, 0, 0)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})

	t.Run("auto tier by monthly volume", func(t *testing.T) {
		clientRepo, _, svc := newRateFixture()
		clientRepo.volume = 50

		quote, err := svc.CalculateRate(1, models.ServiceDOM, 7, 0, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, models.RateSourceAutoTier, quote.Source)
		assert.InDelta(t, 16.0, quote.TotalRate, 1e-9)
		assert.InDelta(t, 7.0, quote.ChargeableWeight, 1e-9)
	})

	t.Run("higher volume lands the cheaper bracket", func(t *testing.T) {
		clientRepo, _, svc := newRateFixture()
		clientRepo.volume = 250

		quote, err := svc.CalculateRate(1, models.ServiceDOM, 7, 0, 0, 0)
		require.NoError(t, err)
		assert.InDelta(t, 12+2*0.8, quote.TotalRate, 1e-9)
	})

	t.Run("manual tier beats auto tier", func(t *testing.T) {
		clientRepo, _, svc := newRateFixture()
		clientRepo.clients[1].ManualRateTierID = uintPtr(3)

		quote, err := svc.CalculateRate(1, models.ServiceDOM, 4, 0, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, models.RateSourceManualTier, quote.Source)
		assert.InDelta(t, 25.0, quote.TotalRate, 1e-9)
	})

	t.Run("custom rates beat everything", func(t *testing.T) {
		clientRepo, _, svc := newRateFixture()
		clientRepo.clients[1].ManualRateTierID = uintPtr(3)
		clientRepo.clients[1].CustomDomBaseRate = floatPtr(10)
		clientRepo.clients[1].CustomDomPerKgRate = floatPtr(0.5)

		quote, err := svc.CalculateRate(1, models.ServiceDOM, 8, 0, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, models.RateSourceCustom, quote.Source)
		// Custom rates use the standard 5 kg allowance.
		assert.InDelta(t, 10+3*0.5, quote.TotalRate, 1e-9)
	})

	t.Run("custom rates for one service do not leak into the other", func(t *testing.T) {
		clientRepo, _, svc := newRateFixture()
		clientRepo.clients[1].CustomDomBaseRate = floatPtr(10)
		clientRepo.clients[1].CustomDomPerKgRate = floatPtr(0.5)

		quote, err := svc.CalculateRate(1, models.ServiceSDD, 2, 0, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, models.RateSourceAutoTier, quote.Source)
	})

	t.Run("volumetric weight drives the charge", func(t *testing.T) {
		clientRepo, _, svc := newRateFixture()
		clientRepo.volume = 10

		// Volumetric: 50*40*30/5000 = 12 kg against 2 kg actual.
		quote, err := svc.CalculateRate(1, models.ServiceDOM, 2, 50, 40, 30)
		require.NoError(t, err)
		assert.InDelta(t, 12.0, quote.ChargeableWeight, 1e-9)
		assert.InDelta(t, 14+7*1, quote.TotalRate, 1e-9)
	})

	t.Run("no covering tier is NOT_FOUND", func(t *testing.T) {
		clientRepo, tierRepo, svc := newRateFixture()
		delete(tierRepo.tiers, 2)
		clientRepo.volume = 500 // past the only remaining DOM bracket

		_, err := svc.CalculateRate(1, models.ServiceDOM, 2, 0, 0, 0)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}

func TestCalculateCODFee(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, _, svc := newRateFixture()
		_, err := svc.CalculateCODFee(0, nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	t.Run("platform defaults without a client", func(t *testing.T) {
		_, _, svc := newRateFixture()
		fee, err := svc.CalculateCODFee(500, nil)
		require.NoError(t, err)
		assert.InDelta(t, 16.5, fee, 1e-9)
	})

	t.Run("minimum floor from defaults", func(t *testing.T) {
		_, _, svc := newRateFixture()
		fee, err := svc.CalculateCODFee(100, nil)
		require.NoError(t, err)
		assert.InDelta(t, 8.0, fee, 1e-9)
	})

	t.Run("client overrides win", func(t *testing.T) {
		clientRepo, _, svc := newRateFixture()
		clientRepo.clients[1].CODFeePercent = floatPtr(2)
		clientRepo.clients[1].CODMinFee = floatPtr(5)
		clientRepo.clients[1].CODMaxFee = floatPtr(30)

		clientID := uint(1)
		fee, err := svc.CalculateCODFee(500, &clientID)
		require.NoError(t, err)
		assert.InDelta(t, 10.0, fee, 1e-9)

		fee, err = svc.CalculateCODFee(100000, &clientID)
		require.NoError(t, err)
		assert.InDelta(t, 30.0, fee, 1e-9)
	})
}
