package models

import (
	"encoding/json"
	"time"

	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers/idgen"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/types"
	"gorm.io/gorm"
)

const (
	EventCreated          = "CREATED"
	EventAssigned         = "ASSIGNED"
	EventReassigned       = "REASSIGNED"
	EventSplit            = "SPLIT"
	EventCompleted        = "COMPLETED"
	EventCancelled        = "CANCELLED"
	EventCountRecorded    = "COUNT_RECORDED"
	EventVarianceApproved = "VARIANCE_APPROVED"
)

// AuditEvent is an append-only record of a state change on a work unit or a
// cycle count task. Rows are created inside the same transaction as the
// change they describe and are never updated afterwards.
type AuditEvent struct {
	ID           types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	WorkUnitID   *uint             `json:"work_unit_id,omitempty" gorm:"index"`
	CycleCountID *uint             `json:"cycle_count_id,omitempty" gorm:"index"`
	EventType    string            `json:"event_type" gorm:"index"`
	ActorID      uint              `json:"actor_id"`
	Metadata     string            `json:"metadata" gorm:"type:text"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == 0 {
		e.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}

// Event metadata is a fixed shape per event type, not an open map, so
// consumers can decode it exhaustively.

type ReassignedMetadata struct {
	FromUserID     uint   `json:"from_user_id"`
	ToUserID       uint   `json:"to_user_id"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes,omitempty"`
	CompletedItems int    `json:"completed_items"`
	TotalItems     int    `json:"total_items"`
}

type SplitMetadata struct {
	FromUserID        uint   `json:"from_user_id"`
	ToUserID          uint   `json:"to_user_id"`
	Reason            string `json:"reason"`
	PartialItems      int    `json:"partial_items"`
	UntouchedItems    int    `json:"untouched_items"`
	ContinuationBatch string `json:"continuation_batch"`
}

type AssignedMetadata struct {
	ToUserID    uint   `json:"to_user_id"`
	OriginBatch string `json:"origin_batch,omitempty"`
}

type CompletedMetadata struct {
	TotalItems int `json:"total_items"`
}

type CancelledMetadata struct {
	CancelledBy uint   `json:"cancelled_by"`
	Reason      string `json:"reason,omitempty"`
}

type CountRecordedMetadata struct {
	SystemQuantity     int     `json:"system_quantity"`
	CountedQuantity    int     `json:"counted_quantity"`
	Variance           int     `json:"variance"`
	VariancePercentage float64 `json:"variance_percentage"`
	RequiresReview     bool    `json:"requires_review"`
}

type VarianceApprovedMetadata struct {
	ApprovedBy uint   `json:"approved_by"`
	Notes      string `json:"notes,omitempty"`
}

// NewWorkUnitEvent builds an audit event for a work unit with the given
// typed metadata.
func NewWorkUnitEvent(workUnitID uint, eventType string, actorID uint, meta interface{}) (*AuditEvent, error) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return &AuditEvent{
		WorkUnitID: &workUnitID,
		EventType:  eventType,
		ActorID:    actorID,
		Metadata:   string(payload),
	}, nil
}

// NewCycleCountEvent builds an audit event for a cycle count task.
func NewCycleCountEvent(cycleCountID uint, eventType string, actorID uint, meta interface{}) (*AuditEvent, error) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return &AuditEvent{
		CycleCountID: &cycleCountID,
		EventType:    eventType,
		ActorID:      actorID,
		Metadata:     string(payload),
	}, nil
}
