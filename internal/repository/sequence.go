package repository

import (
	"pathxpress/internal/models"

	"gorm.io/gorm"
)

// nextSequence atomically advances the named counter inside tx and
// returns the new value. The atomic UPDATE keeps concurrent document
// creation from handing out the same number; the documents' unique
// number indexes are the backstop.
func nextSequence(tx *gorm.DB, name string) (int64, error) {
	res := tx.Model(&models.NumberSequence{}).
		Where("name = ?", name).
		Update("next_value", gorm.Expr("next_value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		seq := models.NumberSequence{Name: name, NextValue: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}

	var seq models.NumberSequence
	if err := tx.Where("name = ?", name).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.NextValue, nil
}
