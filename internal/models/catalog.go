package models

// Tag labels recipes, e.g. breakfast or dinner.
type Tag struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;size:32;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:32;not null"`
}

// Ingredient is a catalog entry. The same name may exist with several units.
type Ingredient struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name            string `json:"name" gorm:"size:128;not null;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:64;not null;uniqueIndex:idx_ingredient_name_unit"`
}
