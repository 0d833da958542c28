package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutrihub/models"
)

// linkSupplementIngredients legt für ein Produkt die noch fehlenden
// Rohstoff-Verknüpfungen an. Bereits verknüpfte Rohstoffe bleiben
// unangetastet, auch wenn die Quelle inzwischen einen anderen Gehalt
// nennt. Der Insert passiert als ein Bulk in einer Transaktion.
func linkSupplementIngredients(db *gorm.DB, supplementID uuid.UUID, candidates map[string]float64, ingredientIDs map[string]uuid.UUID) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	var existingIDs []uuid.UUID
	err := db.Model(&models.SupplementIngredient{}).
		Where("supplement_id = ?", supplementID).
		Pluck("ingredient_id", &existingIDs).Error
	if err != nil {
		return 0, err
	}

	existing := make(map[uuid.UUID]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	var links []models.SupplementIngredient
	for name, content := range candidates {
		ingredientID, ok := ingredientIDs[name]
		if !ok || existing[ingredientID] {
			continue
		}
		links = append(links, models.SupplementIngredient{
			SupplementID: supplementID,
			IngredientID: ingredientID,
			Content:      content,
		})
	}
	if len(links) == 0 {
		return 0, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&links, len(links)).Error
	})
	if err != nil {
		return 0, err
	}
	return len(links), nil
}
