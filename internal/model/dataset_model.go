package model

import (
	"time"

	"github.com/google/uuid"
)

// Dataset is an uploaded survey sheet held for the length of a session.
type Dataset struct {
	ID        uuid.UUID
	Filename  string
	Header    []string
	Responses []SurveyResponse
	Schools   []string
	CreatedAt time.Time
}
