package db

import (
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Profile{},
		&model.PasswordReset{},
		&model.Tag{},
		&model.Empresa{},
		&model.EmpresaImage{},
		&model.Avaliacao{},
		&model.EmpresaFavorite{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedTags(); err != nil {
		logger.Error("Failed to seed tags", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedTags creates the root category tree used by the catalog filters
func seedTags() error {
	var count int64
	if err := DB.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Tags already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding tag data...")

	// categorias raiz e suas subcategorias
	roots := map[string][]string{
		"Alimentação": {"Restaurante", "Lanchonete", "Pizzaria", "Padaria", "Sorveteria", "Cafeteria"},
		"Hospedagem":  {"Hotel", "Pousada", "Camping"},
		"Comércio":    {"Mercado", "Farmácia", "Vestuário", "Artesanato"},
		"Serviços":    {"Agência de Turismo", "Transporte", "Salão de Beleza"},
		"Lazer":       {"Praia", "Trilha", "Parque", "Vida Noturna"},
	}

	totalInserted := 0
	for rootName, children := range roots {
		root := model.Tag{Nome: rootName}
		if err := DB.Create(&root).Error; err != nil {
			logger.Error("Failed to create tag", err, map[string]interface{}{
				"tag": rootName,
			})
			return err
		}
		totalInserted++

		for _, childName := range children {
			child := model.Tag{Nome: childName, ParentID: &root.ID}
			if err := DB.Create(&child).Error; err != nil {
				logger.Error("Failed to create tag", err, map[string]interface{}{
					"tag":    childName,
					"parent": rootName,
				})
				return err
			}
			totalInserted++
		}
	}

	logger.Info("Tags seeded successfully", map[string]interface{}{
		"total_tags": totalInserted,
	})

	return nil
}
