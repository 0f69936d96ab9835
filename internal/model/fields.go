package model

// setIf records column=value when the payload explicitly carried the field.
func setIf[T any](changes map[string]interface{}, column string, value *T) {
	if value != nil {
		changes[column] = *value
	}
}

// All lists every persisted entity, in dependency order, for migrations.
func All() []interface{} {
	return []interface{}{
		&Organization{},
		&User{},
		&Company{},
		&Contact{},
		&Mandate{},
		&Deal{},
		&Task{},
		&Document{},
		&ICWorkflow{},
		&Intelligence{},
	}
}
