package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plateful/config"
	"plateful/internal/database"
	"plateful/internal/models"
	"plateful/pkg/logger"
)

func main() {
	ingredientsCSV := flag.String("ingredients", "", "path to an ingredients CSV (name,measurement_unit) to seed")
	tagsCSV := flag.String("tags", "", "path to a tags CSV (name,slug) to seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logger.L().Fatal("database connection failed", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
	logger.L().Info("schema migrated")

	if *ingredientsCSV != "" {
		n, err := seedIngredients(db, *ingredientsCSV)
		if err != nil {
			logger.L().Fatal("ingredient seeding failed", zap.Error(err))
		}
		logger.L().Info("ingredients seeded", zap.Int("count", n))
	}
	if *tagsCSV != "" {
		n, err := seedTags(db, *tagsCSV)
		if err != nil {
			logger.L().Fatal("tag seeding failed", zap.Error(err))
		}
		logger.L().Info("tags seeded", zap.Int("count", n))
	}
}

func seedIngredients(db *gorm.DB, path string) (int, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return 0, err
	}
	ingredients := make([]models.Ingredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, models.Ingredient{
			Name:            row[0],
			MeasurementUnit: row[1],
		})
	}
	if len(ingredients) == 0 {
		return 0, nil
	}
	err = db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(ingredients, 500).Error
	return len(ingredients), err
}

func seedTags(db *gorm.DB, path string) (int, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return 0, err
	}
	tags := make([]models.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, models.Tag{Name: row[0], Slug: row[1]})
	}
	if len(tags) == 0 {
		return 0, nil
	}
	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error
	return len(tags), err
}

func readCSV(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = fields
	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
