package services

import (
	"time"

	"github.com/mayaaank/MyCanteen-sub000/models"

	"gorm.io/gorm"
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

// EmitBillingAlert persists the alert and fans it out to websocket and
// push. Safe to call anywhere, including before InitAlertDeps (no-op).
func EmitBillingAlert(userID uint, kind, message string) {
	if _alert.db == nil {
		return
	}
	a := &models.Alert{UserID: userID, Kind: kind, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.BroadcastEvent(userID, Event{Kind: kind, Payload: a})
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(userID, "MyCanteen", message, map[string]string{
			"kind": kind,
		})
	}
}
