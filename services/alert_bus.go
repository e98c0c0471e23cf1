package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{db: db, rt: rt, ps: ps}
}

// EmitAlert persists an alert for a person and fans it out to their open
// websocket sessions and registered devices. Safe to call anywhere; a no-op
// before InitAlertDeps.
func EmitAlert(personID, typ, message string) {
	if _alert.db == nil {
		return
	}
	a := &models.Alert{PersonID: personID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.BroadcastAlert(personID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if _alert.ps != nil {
		_alert.ps.PushToPerson(personID, "NutriRenal", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

func ListAlerts(db *gorm.DB, personID string, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []models.Alert
	err := db.Where("person_id = ?", personID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
