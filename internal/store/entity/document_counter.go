package entity

// DocumentCounter holds the last assigned value of one reference-number
// sequence. The row is incremented inside the same transaction as the
// invoice insert, so two concurrent creations can never draw the same
// number.
type DocumentCounter struct {
	Kind  string `gorm:"size:32;primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

func (DocumentCounter) TableName() string {
	return "document_counters"
}
