package models

// Tag is a curated recipe label. Tags are seeded by cmd/migrate and have
// no write API.
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
}

// Ingredient is a catalog entry. Shopping-list aggregation groups by the
// (name, measurement unit) text pair rather than the id, so two rows that
// share both fields are merged in the output.
type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"size:100;not null;index" json:"name"`
	MeasurementUnit string `gorm:"size:100;not null" json:"measurement_unit"`
}
