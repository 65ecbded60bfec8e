package model

// All lists every table model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&RDGroup{},
		&Request{},
		&RequestKeyword{},
		&RequestTechArea{},
		&RequestAttachment{},
		&RequestRDGroup{},
		&StageHistory{},
		&StageTarget{},
		&StageTargetHistory{},
		&NotificationLog{},
	}
}
