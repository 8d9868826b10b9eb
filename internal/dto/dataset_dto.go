package dto

import (
	"time"

	"github.com/fadilmartias/stress-manometer/internal/model"
	"github.com/google/uuid"
)

type DatasetDTO struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Schools   []string  `json:"schools"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

func NewDatasetDTO(ds *model.Dataset) DatasetDTO {
	return DatasetDTO{
		ID:        ds.ID,
		Filename:  ds.Filename,
		Schools:   ds.Schools,
		Rows:      len(ds.Responses),
		CreatedAt: ds.CreatedAt,
	}
}
