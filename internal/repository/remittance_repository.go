package repository

import (
	"errors"
	"time"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"

	"gorm.io/gorm"
)

type RemittanceRepository interface {
	// CreateWithItems assigns the next remittance number, claims every
	// referenced COD record and persists the batch, all in one
	// transaction. A record already claimed by a concurrent batch
	// aborts the whole call with a CONFLICT error.
	CreateWithItems(remittance *models.CODRemittance, codRecordIDs []uint) error
	GetByID(id uint) (*models.CODRemittance, error)
	GetItems(remittanceID uint) ([]models.CODRemittanceItem, error)
	ListByClient(clientID uint) ([]models.CODRemittance, error)
	// AdvanceStatus moves the remittance one step forward; reaching
	// completed flips every member COD record to remitted in the same
	// transaction.
	AdvanceStatus(remittanceID uint, next models.RemittanceStatus) (*models.CODRemittance, error)
}

type remittanceRepository struct {
	db *gorm.DB
}

func NewRemittanceRepository(db *gorm.DB) RemittanceRepository {
	return &remittanceRepository{db: db}
}

func (r *remittanceRepository) CreateWithItems(remittance *models.CODRemittance, codRecordIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, models.SequenceRemittance)
		if err != nil {
			return err
		}
		remittance.RemittanceNumber = models.FormatRemittanceNumber(time.Now(), seq)

		if err := tx.Create(remittance).Error; err != nil {
			return err
		}

		// Claim the records with a status-guarded update. If any row
		// was already claimed or is no longer collected, the affected
		// count falls short and the transaction rolls back.
		res := tx.Model(&models.CODRecord{}).
			Where("id IN ? AND client_id = ? AND status = ? AND remittance_id IS NULL",
				codRecordIDs, remittance.ClientID, models.CODCollected).
			Update("remittance_id", remittance.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(codRecordIDs)) {
			return apperrors.Conflict("one or more COD records are already part of another remittance")
		}

		var records []models.CODRecord
		if err := tx.Where("remittance_id = ?", remittance.ID).Find(&records).Error; err != nil {
			return err
		}
		items := make([]models.CODRemittanceItem, 0, len(records))
		for _, record := range records {
			items = append(items, models.CODRemittanceItem{
				RemittanceID: remittance.ID,
				CODRecordID:  record.ID,
				Amount:       record.CODAmount,
			})
		}
		return tx.Create(&items).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.CodeConflict, "remittance number or COD record already used", err)
	}
	return err
}

func (r *remittanceRepository) GetByID(id uint) (*models.CODRemittance, error) {
	var remittance models.CODRemittance
	err := r.db.First(&remittance, id).Error
	if err != nil {
		return nil, err
	}
	return &remittance, nil
}

func (r *remittanceRepository) GetItems(remittanceID uint) ([]models.CODRemittanceItem, error) {
	var items []models.CODRemittanceItem
	err := r.db.Where("remittance_id = ?", remittanceID).Find(&items).Error
	return items, err
}

func (r *remittanceRepository) ListByClient(clientID uint) ([]models.CODRemittance, error) {
	var remittances []models.CODRemittance
	err := r.db.Where("client_id = ?", clientID).Order("created_at desc").Find(&remittances).Error
	return remittances, err
}

func (r *remittanceRepository) AdvanceStatus(remittanceID uint, next models.RemittanceStatus) (*models.CODRemittance, error) {
	var remittance models.CODRemittance
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&remittance, remittanceID).Error; err != nil {
			return err
		}
		if !remittance.Status.CanTransitionTo(next) {
			return apperrors.Validation("cannot move remittance from %s to %s", remittance.Status, next)
		}

		remittance.Status = next
		if next == models.RemittanceCompleted {
			now := time.Now()
			remittance.CompletedAt = &now
			// Payout is final: member records become remitted.
			res := tx.Model(&models.CODRecord{}).
				Where("remittance_id = ? AND status = ?", remittanceID, models.CODCollected).
				Updates(map[string]interface{}{
					"status":                  models.CODRemitted,
					"remitted_to_client_date": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(remittance.ShipmentCount) {
				return apperrors.Conflict("remittance %s no longer matches its COD records", remittance.RemittanceNumber)
			}
		}
		return tx.Save(&remittance).Error
	})
	if err != nil {
		return nil, err
	}
	return &remittance, nil
}
