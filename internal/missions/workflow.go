package missions

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openvol/missionhub/internal/database"
	"github.com/openvol/missionhub/internal/model"
)

// ApplicationStats is the admin rollup over the workflow's store. Pending
// is everything that is not approved.
type ApplicationStats struct {
	Total    int64 `json:"totalApplications"`
	Approved int64 `json:"approvedApplications"`
	Pending  int64 `json:"pendingApplications"`
}

// Workflow owns application records and the apply/cancel/approve/reject
// state machine. It reads missions through the catalog, never writes them.
type Workflow struct {
	dbm     *database.DatabaseManager
	catalog *Catalog
	logger  *slog.Logger
}

func NewWorkflow(dbm *database.DatabaseManager, catalog *Catalog) *Workflow {
	return &Workflow{
		dbm:     dbm,
		catalog: catalog,
		logger:  slog.Default().With("logger", "workflow"),
	}
}

// Apply creates a pending application for (userID, missionID). A pending or
// approved application blocks re-applying; a rejected one is reset in place
// so the (mission, user) unique index always holds one row per pair. If two
// requests race past the existence check the index decides, and the loser
// gets ErrAlreadyApplied.
func (w *Workflow) Apply(userID, missionID uint, seats int, message string) (uint, error) {
	m := w.catalog.Get(missionID)

	if m == nil {
		return 0, ErrMissionNotFound
	}

	if !m.IsActive {
		return 0, ErrMissionInactive
	}

	if seats < 1 {
		seats = 1
	}

	existing := w.dbm.ApplicationQuery().MissionId(missionID).UserId(userID).One()

	if existing != nil {
		if existing.State != model.StateRejected {
			return 0, ErrAlreadyApplied
		}

		existing.State = model.StatePending
		existing.AppliedDate = time.Now()
		existing.Seats = seats
		existing.Message = message
		existing.Comments = ""

		if err := w.dbm.Save(existing); err != nil {
			return 0, fmt.Errorf("apply: %w", err)
		}

		w.logger.Info("application re-opened",
			slog.Uint64("id", uint64(existing.ID)), slog.Uint64("user", uint64(userID)))

		return existing.ID, nil
	}

	app := &model.Application{
		MissionID:   missionID,
		UserID:      userID,
		AppliedDate: time.Now(),
		Seats:       seats,
		Message:     message,
		State:       model.StatePending,
	}

	if err := w.dbm.Create(app); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrAlreadyApplied
		}

		return 0, fmt.Errorf("apply: %w", err)
	}

	w.logger.Info("application created",
		slog.Uint64("id", uint64(app.ID)),
		slog.Uint64("user", uint64(userID)),
		slog.Uint64("mission", uint64(missionID)))

	return app.ID, nil
}

// Cancel removes the caller's application. Approved applications cannot be
// cancelled; rejected ones can.
func (w *Workflow) Cancel(applicationID, userID uint) error {
	app := w.dbm.ApplicationQuery().Id(applicationID).UserId(userID).One()

	if app == nil {
		return ErrApplicationNotFound
	}

	if app.State == model.StateApproved {
		return ErrCannotCancelApproved
	}

	if err := w.dbm.DeleteApplication(app.ID); err != nil {
		return fmt.Errorf("cancel: %w", err)
	}

	w.logger.Info("application cancelled",
		slog.Uint64("id", uint64(applicationID)), slog.Uint64("user", uint64(userID)))

	return nil
}

// Approve sets the state unconditionally - an admin may override an earlier
// decision, including re-approving or approving a rejected application.
func (w *Workflow) Approve(applicationID, adminID uint, comments string) error {
	return w.setState(applicationID, adminID, model.StateApproved, comments)
}

// Reject mirrors Approve.
func (w *Workflow) Reject(applicationID, adminID uint, comments string) error {
	return w.setState(applicationID, adminID, model.StateRejected, comments)
}

func (w *Workflow) setState(applicationID, adminID uint, state model.ApplicationState, comments string) error {
	updates := map[string]any{"state": state}

	if comments != "" {
		updates["comments"] = comments
	}

	err := w.dbm.ApplicationQuery().Id(applicationID).Update(updates)

	if errors.Is(err, database.ErrNoRecord) {
		return ErrApplicationNotFound
	}

	if err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	w.logger.Info("application "+string(state),
		slog.Uint64("id", uint64(applicationID)), slog.Uint64("admin", uint64(adminID)))

	return nil
}

func (w *Workflow) ListMy(userID uint) []*model.Application {
	return w.dbm.ApplicationQuery().UserId(userID).Get()
}

func (w *Workflow) ListPending(page, pageSize int) ([]*model.Application, int64) {
	q := w.dbm.ApplicationQuery().State(model.StatePending).Page(page, pageSize)

	return q.Get(), q.Count()
}

// ListAll filters by state and/or mission; empty values mean no filter.
func (w *Workflow) ListAll(page, pageSize int, state model.ApplicationState, missionID uint) ([]*model.Application, int64) {
	q := w.dbm.ApplicationQuery().State(state).MissionId(missionID).Page(page, pageSize)

	return q.Get(), q.Count()
}

func (w *Workflow) Statistics() *ApplicationStats {
	total := w.dbm.ApplicationQuery().Count()
	approved := w.dbm.ApplicationQuery().State(model.StateApproved).Count()

	return &ApplicationStats{
		Total:    total,
		Approved: approved,
		Pending:  total - approved,
	}
}
