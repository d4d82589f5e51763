package models

// Grade is immutable reference data such as "Lớp 5".
type Grade struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
