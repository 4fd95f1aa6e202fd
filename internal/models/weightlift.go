package models

// DateLayout is the canonical format of a record's achievement date.
const DateLayout = "2006-01-02"

// WeightliftRecord is a lift result for one catalog movement.
type WeightliftRecord struct {
	ID       int64   `db:"id" json:"id"`
	UserID   int64   `db:"user_id" json:"user_id"`
	Movement string  `db:"movement" json:"movement"`
	Value    float64 `db:"value" json:"value"` // weight
	Unit     string  `db:"unit" json:"unit"`   // lbs | kg
	Date     string  `db:"date" json:"date"`   // YYYY-MM-DD
	Note     string  `db:"note" json:"note,omitempty"`
}
