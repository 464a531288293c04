package postgres

import "github.com/Badsnus/qrgen-studio/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.QRCode{},
	&entity.AnonymousSession{},
	&entity.Event{},
}
