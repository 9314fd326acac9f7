package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

// Strategy selects how a work unit changes hands.
type Strategy string

const (
	// StrategySimple transfers the whole unit to the new assignee.
	StrategySimple Strategy = "simple"
	// StrategySplit freezes completed work on the original unit and moves
	// the outstanding portion onto a new continuation unit.
	StrategySplit Strategy = "split"
	// StrategyAuto picks split when the unit has completed work, else simple.
	StrategyAuto Strategy = "auto"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategySimple, StrategySplit, StrategyAuto:
		return Strategy(s), nil
	case "":
		return StrategyAuto, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrValidation, s)
	}
}

// ItemPartition groups a unit's items by progress. The three sets are
// disjoint and together cover every item.
type ItemPartition struct {
	Complete  []models.WorkUnitItem
	Partial   []models.WorkUnitItem
	Untouched []models.WorkUnitItem
}

// HasProgress reports whether any quantity has been completed at all.
func (p ItemPartition) HasProgress() bool {
	return len(p.Complete) > 0 || len(p.Partial) > 0
}

// PartitionItems splits items into complete, partial and untouched sets.
func PartitionItems(items []models.WorkUnitItem) ItemPartition {
	var p ItemPartition
	for _, item := range items {
		switch {
		case item.QuantityCompleted >= item.QuantityRequired:
			p.Complete = append(p.Complete, item)
		case item.QuantityCompleted > 0:
			p.Partial = append(p.Partial, item)
		default:
			p.Untouched = append(p.Untouched, item)
		}
	}
	return p
}

type ReassignRequest struct {
	TargetUserID uint
	Strategy     Strategy
	Reason       string
	Notes        string
}

type ReassignSummary struct {
	TotalItems     int      `json:"total_items"`
	CompleteItems  int      `json:"complete_items"`
	PartialItems   int      `json:"partial_items"`
	UntouchedItems int      `json:"untouched_items"`
	Strategy       Strategy `json:"strategy"`
}

type ReassignResult struct {
	Original     *models.WorkUnit `json:"original"`
	Continuation *models.WorkUnit `json:"continuation,omitempty"`
	Summary      ReassignSummary  `json:"summary"`
}

type BulkFailure struct {
	WorkUnitID uint   `json:"id"`
	Error      string `json:"error"`
}

type BulkSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type BulkResult struct {
	Results []ReassignResult `json:"results"`
	Errors  []BulkFailure    `json:"errors"`
	Summary BulkSummary      `json:"summary"`
}

// ReassignmentService moves work units between users, splitting partially
// completed units into a frozen original and a continuation when asked to.
type ReassignmentService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewReassignmentService(db *gorm.DB, notifier Notifier) *ReassignmentService {
	return &ReassignmentService{db: db, notifier: notifier}
}

// Reassign hands a single work unit over to another user. The whole
// mutation (item updates, continuation creation, order pointer moves, audit
// events) commits atomically; the new assignee is notified afterwards.
func (s *ReassignmentService) Reassign(principal models.Principal, workUnitID uint, req ReassignRequest) (*ReassignResult, error) {
	if !principal.CanManageWork() {
		return nil, ErrForbidden
	}
	if req.TargetUserID == 0 {
		return nil, fmt.Errorf("%w: target user is required", ErrValidation)
	}

	var (
		result ReassignResult
		target models.User
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit models.WorkUnit
		if err := tx.Preload("Items").First(&unit, workUnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if unit.IsTerminal() {
			return ErrInvalidState
		}

		if err := tx.First(&target, req.TargetUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !target.IsActive {
			return ErrUserNotFound
		}

		partition := PartitionItems(unit.Items)
		if len(partition.Complete) == len(unit.Items) {
			return ErrNothingToReassign
		}

		strategy := req.Strategy
		if strategy == StrategyAuto {
			if partition.HasProgress() {
				strategy = StrategySplit
			} else {
				strategy = StrategySimple
			}
		}

		result.Summary = ReassignSummary{
			TotalItems:     len(unit.Items),
			CompleteItems:  len(partition.Complete),
			PartialItems:   len(partition.Partial),
			UntouchedItems: len(partition.Untouched),
			Strategy:       strategy,
		}

		switch strategy {
		case StrategySimple:
			return s.reassignSimple(tx, principal, &unit, partition, target, req, &result)
		case StrategySplit:
			if !partition.HasProgress() {
				return fmt.Errorf("%w: no completed work to split, use the simple strategy", ErrValidation)
			}
			return s.reassignSplit(tx, principal, &unit, partition, target, req, &result)
		default:
			return fmt.Errorf("%w: unknown strategy %q", ErrValidation, strategy)
		}
	})
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Work unit %s assigned to you", result.assignedBatch())
	body := fmt.Sprintf("You have been assigned work unit <b>%s</b>.<br>Reason: %s", result.assignedBatch(), req.Reason)
	dispatchNotification(s.notifier, target, subject, body)

	return &result, nil
}

func (r *ReassignResult) assignedBatch() string {
	if r.Continuation != nil {
		return r.Continuation.BatchNumber
	}
	if r.Original != nil {
		return r.Original.BatchNumber
	}
	return ""
}

// reassignSimple flips the assignee on the unit itself. Status falls back
// to ASSIGNED when nothing has been completed yet.
func (s *ReassignmentService) reassignSimple(tx *gorm.DB, principal models.Principal, unit *models.WorkUnit, partition ItemPartition, target models.User, req ReassignRequest, result *ReassignResult) error {
	status := models.WorkUnitStatusAssigned
	if partition.HasProgress() {
		status = models.WorkUnitStatusInProgress
	}

	res := tx.Model(&models.WorkUnit{}).
		Where("id = ? AND version = ?", unit.ID, unit.Version).
		Updates(map[string]interface{}{
			"assigned_user_id": target.ID,
			"status":           status,
			"version":          gorm.Expr("version + ?", 1),
			"updated_by":       int(principal.UserID),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	event, err := models.NewWorkUnitEvent(unit.ID, models.EventReassigned, principal.UserID, models.ReassignedMetadata{
		FromUserID:     unit.AssignedUserID,
		ToUserID:       target.ID,
		Reason:         req.Reason,
		Notes:          req.Notes,
		CompletedItems: len(partition.Complete),
		TotalItems:     len(unit.Items),
	})
	if err != nil {
		return err
	}
	if err := tx.Create(event).Error; err != nil {
		return err
	}

	var updated models.WorkUnit
	if err := tx.Preload("Items").First(&updated, unit.ID).Error; err != nil {
		return err
	}
	result.Original = &updated
	return nil
}

// reassignSplit freezes what was actually done on the original unit and
// carries the outstanding work onto a new continuation unit owned by the
// target user.
func (s *ReassignmentService) reassignSplit(tx *gorm.DB, principal models.Principal, unit *models.WorkUnit, partition ItemPartition, target models.User, req ReassignRequest, result *ReassignResult) error {
	now := time.Now()

	continuation := models.WorkUnit{
		BatchNumber:      unit.BatchNumber + "-CONT",
		Kind:             unit.Kind,
		Status:           models.WorkUnitStatusAssigned,
		AssignedUserID:   target.ID,
		Priority:         unit.Priority + 1,
		ParentWorkUnitID: &unit.ID,
		Notes:            fmt.Sprintf("Continuation of %s", unit.BatchNumber),
		CreatedBy:        int(principal.UserID),
	}
	if err := tx.Create(&continuation).Error; err != nil {
		return err
	}

	orderIDs := map[uint]bool{}
	sequence := 1

	// Partial items: clamp the original down to what was actually done and
	// stage the remainder on the continuation.
	for _, item := range partition.Partial {
		remaining := item.QuantityRequired - item.QuantityCompleted

		res := tx.Model(&models.WorkUnitItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"quantity_required": item.QuantityCompleted,
				"status":            models.WorkUnitItemStatusCompleted,
				"notes":             fmt.Sprintf("Remainder moved to %s", continuation.BatchNumber),
			})
		if res.Error != nil {
			return res.Error
		}

		staged := models.WorkUnitItem{
			WorkUnitID:       continuation.ID,
			OrderID:          item.OrderID,
			OrderItemID:      item.OrderItemID,
			ProductID:        item.ProductID,
			LocationID:       item.LocationID,
			Sequence:         sequence,
			QuantityRequired: remaining,
			Status:           models.WorkUnitItemStatusPending,
			Notes:            fmt.Sprintf("Continued from %s", unit.BatchNumber),
		}
		if err := tx.Create(&staged).Error; err != nil {
			return err
		}
		sequence++
		if item.OrderID != 0 {
			orderIDs[item.OrderID] = true
		}
	}

	// Untouched items move wholesale onto the continuation.
	for _, item := range partition.Untouched {
		res := tx.Model(&models.WorkUnitItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"work_unit_id": continuation.ID,
				"sequence":     sequence,
				"notes":        fmt.Sprintf("Moved from %s", unit.BatchNumber),
			})
		if res.Error != nil {
			return res.Error
		}
		sequence++
		if item.OrderID != 0 {
			orderIDs[item.OrderID] = true
		}
	}

	notes := unit.Notes
	if notes != "" {
		notes += " | "
	}
	notes += fmt.Sprintf("Continued in %s", continuation.BatchNumber)

	res := tx.Model(&models.WorkUnit{}).
		Where("id = ? AND version = ?", unit.ID, unit.Version).
		Updates(map[string]interface{}{
			"status":       models.WorkUnitStatusPartiallyCompleted,
			"completed_at": now,
			"notes":        notes,
			"version":      gorm.Expr("version + ?", 1),
			"updated_by":   int(principal.UserID),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	// Orders carried by the continuation now belong to the new assignee.
	if len(orderIDs) > 0 {
		ids := make([]uint, 0, len(orderIDs))
		for id := range orderIDs {
			ids = append(ids, id)
		}
		if err := tx.Model(&models.Order{}).
			Where("id IN ?", ids).
			Update("assigned_staff_id", target.ID).Error; err != nil {
			return err
		}
	}

	splitEvent, err := models.NewWorkUnitEvent(unit.ID, models.EventSplit, principal.UserID, models.SplitMetadata{
		FromUserID:        unit.AssignedUserID,
		ToUserID:          target.ID,
		Reason:            req.Reason,
		PartialItems:      len(partition.Partial),
		UntouchedItems:    len(partition.Untouched),
		ContinuationBatch: continuation.BatchNumber,
	})
	if err != nil {
		return err
	}
	if err := tx.Create(splitEvent).Error; err != nil {
		return err
	}

	assignedEvent, err := models.NewWorkUnitEvent(continuation.ID, models.EventAssigned, principal.UserID, models.AssignedMetadata{
		ToUserID:    target.ID,
		OriginBatch: unit.BatchNumber,
	})
	if err != nil {
		return err
	}
	if err := tx.Create(assignedEvent).Error; err != nil {
		return err
	}

	var updatedOriginal, updatedContinuation models.WorkUnit
	if err := tx.Preload("Items").First(&updatedOriginal, unit.ID).Error; err != nil {
		return err
	}
	if err := tx.Preload("Items").First(&updatedContinuation, continuation.ID).Error; err != nil {
		return err
	}
	result.Original = &updatedOriginal
	result.Continuation = &updatedContinuation
	return nil
}

// ReassignBulk processes each unit independently: a failure on one unit is
// recorded and never aborts the rest.
func (s *ReassignmentService) ReassignBulk(principal models.Principal, workUnitIDs []uint, req ReassignRequest) (*BulkResult, error) {
	if !principal.CanManageWork() {
		return nil, ErrForbidden
	}
	if len(workUnitIDs) == 0 {
		return nil, fmt.Errorf("%w: no work unit ids given", ErrValidation)
	}
	if req.TargetUserID == 0 {
		return nil, fmt.Errorf("%w: target user is required", ErrValidation)
	}

	bulk := &BulkResult{Summary: BulkSummary{Total: len(workUnitIDs)}}

	for _, id := range workUnitIDs {
		res, err := s.Reassign(principal, id, req)
		if err != nil {
			bulk.Errors = append(bulk.Errors, BulkFailure{WorkUnitID: id, Error: err.Error()})
			bulk.Summary.Failed++
			continue
		}
		bulk.Results = append(bulk.Results, *res)
		bulk.Summary.Succeeded++
	}

	logrus.WithFields(logrus.Fields{
		"actor":     principal.UserID,
		"target":    req.TargetUserID,
		"total":     bulk.Summary.Total,
		"succeeded": bulk.Summary.Succeeded,
		"failed":    bulk.Summary.Failed,
	}).Info("bulk reassignment finished")

	return bulk, nil
}
