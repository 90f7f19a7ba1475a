package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// Audit actions recorded for hire mutations.
const (
	auditInviteSent         = "invite_sent"
	auditInterviewScheduled = "interview_scheduled"
	auditDecisionAccepted   = "decision_accepted"
	auditDecisionRejected   = "decision_rejected"
)

type hireEventModel struct {
	ID            int64      `gorm:"primaryKey"`
	SessionID     *uuid.UUID `gorm:"type:uuid;index"`
	JobID         string     `gorm:"type:text;not null;index"`
	CandidateID   string     `gorm:"type:text;not null"`
	ApplicationID string     `gorm:"type:text"`
	Action        string     `gorm:"type:text;not null"`
	Payload       datatypes.JSONMap
	At            time.Time `gorm:"autoCreateTime"`
}

func (hireEventModel) TableName() string { return "hire_events" }

// recordHireEvent appends to the audit trail. Audit failures are logged and
// swallowed so they never block the mutation that already succeeded upstream.
func (g *Gateway) recordHireEvent(ctx context.Context, session Session, action, jobID, candidateID, applicationID string, payload map[string]any) {
	sessionID := session.ID
	event := hireEventModel{
		SessionID:     &sessionID,
		JobID:         jobID,
		CandidateID:   candidateID,
		ApplicationID: applicationID,
		Action:        action,
		Payload:       datatypes.JSONMap(payload),
	}
	if err := g.store.ORM.WithContext(ctx).Create(&event).Error; err != nil {
		log.Warn().Err(err).Str("action", action).Msg("record hire event")
	}
}
