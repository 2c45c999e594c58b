package db

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate is a GORM scope that takes a row lock on the selected rows.
// SQLite has no row locks (writers are serialized by the database lock), so
// the clause is skipped there.
//
//	tx.Scopes(db.ForUpdate()).First(&model, id)
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if strings.EqualFold(db.Dialector.Name(), "sqlite") {
			return db
		}
		return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
}

// OrderByIDAsc is a GORM scope for the stable ascending-id ordering used by ticket listings.
func OrderByIDAsc(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}})
	}
}
