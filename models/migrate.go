package models

// All lists every table-backed model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Admin{},
		&AdminSession{},
		&ActivityLog{},
		&Vehicle{},
		&Part{},
		&OBDCode{},
		&Solution{},
		&OBDSubmission{},
		&Order{},
		&OrderItem{},
	}
}
