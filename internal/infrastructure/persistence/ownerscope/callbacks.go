package ownerscope

import (
	"gorm.io/gorm"
)

// immutableColumns are stamped once at creation and must survive any update.
var immutableColumns = []string{"owner_id", "outlet_id", "created_by"}

// immutableFields are the schema field names matching immutableColumns.
var immutableFields = []string{"OwnerID", "OutletID", "CreatedBy"}

// RegisterCallbacks installs the update guard on the GORM instance. Every
// update statement drops the owner, outlet and creator columns so a mass
// update can never move a row to another tenant.
func RegisterCallbacks(db *gorm.DB) error {
	return db.Callback().Update().
		Before("gorm:update").
		Register("ownerscope:protect_immutable", protectImmutable)
}

func protectImmutable(db *gorm.DB) {
	if db.Statement.Schema == nil {
		return
	}
	for i, field := range immutableFields {
		if db.Statement.Schema.LookUpField(field) == nil {
			continue
		}
		db.Statement.Omits = append(db.Statement.Omits, immutableColumns[i])
	}
}
