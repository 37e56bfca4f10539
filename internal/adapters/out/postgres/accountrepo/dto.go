// Package accountrepo maps company accounting purposes to ledger account
// identifiers.
package accountrepo

import (
	"github.com/google/uuid"
)

// AccountDTO represents the database structure for chart-of-accounts
// rows. Each company carries at most one account per purpose.
type AccountDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_accounts_company_purpose"`
	Purpose   string    `gorm:"uniqueIndex:idx_accounts_company_purpose"`
}

// TableName specifies the database table name for accounts.
func (AccountDTO) TableName() string {
	return "accounts"
}
