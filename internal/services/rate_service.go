package services

import (
	"errors"
	"time"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/repository"

	"gorm.io/gorm"
)

// volumeWindow is the trailing period over which a client's shipment
// volume is counted when resolving the automatic rate tier.
const volumeWindow = 30 * 24 * time.Hour

type RateService interface {
	// CalculateRate prices one shipment for the client. Dimensions are
	// optional; pass zero to price on actual weight alone.
	CalculateRate(clientID uint, serviceType models.ServiceType, weight, length, width, height float64) (*models.RateQuote, error)
	// CalculateCODFee computes the handling fee for collecting a COD
	// amount. A nil clientID uses the platform default fee schedule.
	CalculateCODFee(codAmount float64, clientID *uint) (float64, error)
}

type rateService struct {
	clientRepo   repository.ClientRepository
	rateTierRepo repository.RateTierRepository
	settings     SettingsService
}

func NewRateService(clientRepo repository.ClientRepository, rateTierRepo repository.RateTierRepository, settings SettingsService) RateService {
	return &rateService{clientRepo: clientRepo, rateTierRepo: rateTierRepo, settings: settings}
}

// ChargeableWeight returns the greater of actual and volumetric weight.
// Volumetric weight only applies when all three dimensions are present;
// a zero or missing dimension contributes nothing rather than dividing
// the package into a crash.
func ChargeableWeight(weight, length, width, height, divisor float64) float64 {
	if length <= 0 || width <= 0 || height <= 0 || divisor <= 0 {
		return weight
	}
	volumetric := (length * width * height) / divisor
	if volumetric > weight {
		return volumetric
	}
	return weight
}

// TierTotal applies the tier formula: the base rate covers weight up to
// maxWeight, every kg above it bills at the additional rate.
func TierTotal(baseRate, additionalKgRate, maxWeight, chargeableWeight float64) (total, additionalCharges float64) {
	excess := chargeableWeight - maxWeight
	if excess < 0 {
		excess = 0
	}
	additionalCharges = excess * additionalKgRate
	return baseRate + additionalCharges, additionalCharges
}

// CODFee clamps amount × percent/100 between min and max. A max of
// zero means unbounded.
func CODFee(codAmount, feePercent, feeMin, feeMax float64) float64 {
	fee := codAmount * feePercent / 100
	if fee < feeMin {
		fee = feeMin
	}
	if feeMax > 0 && fee > feeMax {
		fee = feeMax
	}
	return fee
}

func (s *rateService) CalculateRate(clientID uint, serviceType models.ServiceType, weight, length, width, height float64) (*models.RateQuote, error) {
	if weight <= 0 {
		return nil, apperrors.Validation("weight must be greater than zero")
	}
	if !serviceType.Valid() {
		return nil, apperrors.Validation("unknown service type %q", serviceType)
	}

	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, notFoundOr(err, "client")
	}

	cfg, err := s.settings.GetConfig()
	if err != nil {
		return nil, err
	}
	chargeable := ChargeableWeight(weight, length, width, height, cfg.VolumetricDivisor)

	quote := &models.RateQuote{ChargeableWeight: chargeable}
	switch {
	case client.HasCustomRates(serviceType):
		baseRate, perKgRate := client.CustomRates(serviceType)
		quote.Source = models.RateSourceCustom
		quote.BaseRate = baseRate
		quote.TotalRate, quote.AdditionalCharges = TierTotal(baseRate, perKgRate, models.DefaultTierMaxWeight, chargeable)

	case client.ManualRateTierID != nil:
		tier, err := s.rateTierRepo.GetByID(*client.ManualRateTierID)
		if err != nil {
			return nil, notFoundOr(err, "rate tier")
		}
		quote.Source = models.RateSourceManualTier
		quote.RateTierID = &tier.ID
		quote.BaseRate = tier.BaseRate
		quote.TotalRate, quote.AdditionalCharges = TierTotal(tier.BaseRate, tier.AdditionalKgRate, tier.MaxWeight, chargeable)

	default:
		volume, err := s.clientRepo.MonthlyShipmentVolume(clientID, time.Now().Add(-volumeWindow))
		if err != nil {
			return nil, err
		}
		tier, err := s.resolveVolumeTier(serviceType, volume)
		if err != nil {
			return nil, err
		}
		quote.Source = models.RateSourceAutoTier
		quote.RateTierID = &tier.ID
		quote.BaseRate = tier.BaseRate
		quote.TotalRate, quote.AdditionalCharges = TierTotal(tier.BaseRate, tier.AdditionalKgRate, tier.MaxWeight, chargeable)
	}

	return quote, nil
}

func (s *rateService) resolveVolumeTier(serviceType models.ServiceType, volume int) (*models.RateTier, error) {
	tiers, err := s.rateTierRepo.GetActiveByService(serviceType)
	if err != nil {
		return nil, err
	}
	for i := range tiers {
		if tiers[i].Covers(volume) {
			return &tiers[i], nil
		}
	}
	return nil, apperrors.NotFound("no active %s rate tier covers a monthly volume of %d", serviceType, volume)
}

func (s *rateService) CalculateCODFee(codAmount float64, clientID *uint) (float64, error) {
	if codAmount <= 0 {
		return 0, apperrors.Validation("COD amount must be greater than zero")
	}

	cfg, err := s.settings.GetConfig()
	if err != nil {
		return 0, err
	}
	feePercent, feeMin, feeMax := cfg.CODFeePercent, cfg.CODMinFee, cfg.CODMaxFee

	if clientID != nil {
		client, err := s.clientRepo.GetByID(*clientID)
		if err != nil {
			return 0, notFoundOr(err, "client")
		}
		if client.CODFeePercent != nil {
			feePercent = *client.CODFeePercent
		}
		if client.CODMinFee != nil {
			feeMin = *client.CODMinFee
		}
		if client.CODMaxFee != nil {
			feeMax = *client.CODMaxFee
		}
	}

	return CODFee(codAmount, feePercent, feeMin, feeMax), nil
}

// notFoundOr translates a gorm missing-row error into the NOT_FOUND
// taxonomy, passing anything else through untouched.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("%s not found", what)
	}
	return err
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
