package models

// All lists every entity in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{&User{}, &Order{}, &AssignedOrder{}, &Receipt{}, &Message{}}
}
