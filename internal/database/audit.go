package database

import "aerocode/internal/models"

// CreateAuditLog appends an entry to the audit trail. Failures are ignored:
// the trail never blocks the operation it describes.
func CreateAuditLog(employeeID, entity, entityID, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		EmployeeID: employeeID,
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	}
	_ = DB.Create(&record).Error
}
