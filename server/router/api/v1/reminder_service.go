package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/speaknote/remind/server/auth"
	apierrors "github.com/speaknote/remind/server/internal/errors"
	"github.com/speaknote/remind/server/timezone"
	"github.com/speaknote/remind/store"
)

// upcomingWindowDays is how far ahead the upcoming feed looks.
const upcomingWindowDays = 7

type CreateReminderRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ScheduledTs     int64   `json:"scheduled_ts"`
	Timezone        string  `json:"timezone"`
	IsImportant     bool    `json:"is_important"`
	OriginalText    string  `json:"original_text"`
	ConfidenceScore float64 `json:"confidence_score"`
	SourceType      string  `json:"source_type"`
	ImageURL        string  `json:"image_url"`
}

type UpdateReminderRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ScheduledTs *int64  `json:"scheduled_ts"`
	Timezone    *string `json:"timezone"`
	IsImportant *bool   `json:"is_important"`
	IsCompleted *bool   `json:"is_completed"`
}

type ReminderResponse struct {
	UID         string `json:"uid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ScheduledTs int64  `json:"scheduled_ts"`

	// ScheduledTime is scheduled_ts rendered in the reminder's timezone.
	ScheduledTime   string  `json:"scheduled_time"`
	Timezone        string  `json:"timezone"`
	IsCompleted     bool    `json:"is_completed"`
	IsImportant     bool    `json:"is_important"`
	OriginalText    string  `json:"original_text"`
	ConfidenceScore float64 `json:"confidence_score"`
	SourceType      string  `json:"source_type"`
	ImageURL        string  `json:"image_url"`
	CreatedTs       int64   `json:"created_ts"`
	UpdatedTs       int64   `json:"updated_ts"`
}

func toReminderResponse(reminder *store.Reminder) *ReminderResponse {
	// The timezone was validated on write; a bad stored value degrades
	// to UTC rather than failing the read.
	loc, _ := timezone.ParseTimezone(reminder.Timezone)
	return &ReminderResponse{
		UID:             reminder.UID,
		Title:           reminder.Title,
		Description:     reminder.Description,
		ScheduledTs:     reminder.ScheduledTs,
		ScheduledTime:   timezone.FormatReminderTime(reminder.ScheduledTs, loc),
		Timezone:        reminder.Timezone,
		IsCompleted:     reminder.IsCompleted,
		IsImportant:     reminder.IsImportant,
		OriginalText:    reminder.OriginalText,
		ConfidenceScore: reminder.ConfidenceScore,
		SourceType:      string(reminder.Source),
		ImageURL:        reminder.ImageURL,
		CreatedTs:       reminder.CreatedTs,
		UpdatedTs:       reminder.UpdatedTs,
	}
}

func toReminderListResponse(reminders []*store.Reminder) []*ReminderResponse {
	out := make([]*ReminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		out = append(out, toReminderResponse(reminder))
	}
	return out
}

// CreateReminder stores a new reminder for the authenticated user.
func (s *APIV1Service) CreateReminder(c echo.Context) error {
	user := auth.UserFromContext(c)
	req := &CreateReminderRequest{}
	if err := c.Bind(req); err != nil {
		return apierrors.InvalidArgument("malformed request body")
	}
	if req.Title == "" {
		return apierrors.InvalidArgument("title is required")
	}
	if req.ScheduledTs == 0 {
		return apierrors.InvalidArgument("scheduled_ts is required")
	}
	if req.Timezone != "" && !timezone.IsValidTimezone(req.Timezone) {
		return apierrors.InvalidArgument("unknown timezone")
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	source := store.SourceTypeManual
	switch store.SourceType(req.SourceType) {
	case store.SourceTypeText, store.SourceTypeVoice, store.SourceTypeImage, store.SourceTypeManual:
		source = store.SourceType(req.SourceType)
	case "":
	default:
		return apierrors.InvalidArgument("unknown source_type")
	}

	reminder, err := s.Store.CreateReminder(c.Request().Context(), &store.Reminder{
		UID:             shortuuid.New(),
		UserID:          user.ID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledTs:     req.ScheduledTs,
		Timezone:        req.Timezone,
		IsImportant:     req.IsImportant,
		OriginalText:    req.OriginalText,
		ConfidenceScore: req.ConfidenceScore,
		Source:          source,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		return apierrors.Internal("failed to create reminder", err)
	}
	return c.JSON(http.StatusCreated, toReminderResponse(reminder))
}

// ListReminders returns all reminders of the authenticated user ordered
// by scheduled time.
func (s *APIV1Service) ListReminders(c echo.Context) error {
	user := auth.UserFromContext(c)
	list, err := s.Store.ListReminders(c.Request().Context(), &store.FindReminder{
		UserID: &user.ID,
	})
	if err != nil {
		return apierrors.Internal("failed to list reminders", err)
	}
	return c.JSON(http.StatusOK, toReminderListResponse(list))
}

// UpcomingReminders returns incomplete reminders scheduled within the
// next seven days. The window runs through the end of the seventh day,
// not just to the current clock time on it.
func (s *APIV1Service) UpcomingReminders(c echo.Context) error {
	user := auth.UserFromContext(c)
	now := s.now()
	after := now.Unix()
	before := timezone.StartOfDay(now.AddDate(0, 0, upcomingWindowDays+1), timezone.UTC).Unix()
	incomplete := false

	list, err := s.Store.ListReminders(c.Request().Context(), &store.FindReminder{
		UserID:          &user.ID,
		ScheduledAfter:  &after,
		ScheduledBefore: &before,
		IsCompleted:     &incomplete,
	})
	if err != nil {
		return apierrors.Internal("failed to list reminders", err)
	}
	return c.JSON(http.StatusOK, toReminderListResponse(list))
}

// GetReminder returns a single reminder by uid.
func (s *APIV1Service) GetReminder(c echo.Context) error {
	reminder, err := s.findOwnedReminder(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReminderResponse(reminder))
}

// UpdateReminder applies a partial update to a reminder.
func (s *APIV1Service) UpdateReminder(c echo.Context) error {
	reminder, err := s.findOwnedReminder(c)
	if err != nil {
		return err
	}
	req := &UpdateReminderRequest{}
	if err := c.Bind(req); err != nil {
		return apierrors.InvalidArgument("malformed request body")
	}
	if req.Timezone != nil && !timezone.IsValidTimezone(*req.Timezone) {
		return apierrors.InvalidArgument("unknown timezone")
	}

	updated, err := s.Store.UpdateReminder(c.Request().Context(), &store.UpdateReminder{
		ID:          reminder.ID,
		Title:       req.Title,
		Description: req.Description,
		ScheduledTs: req.ScheduledTs,
		Timezone:    req.Timezone,
		IsImportant: req.IsImportant,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		return apierrors.Internal("failed to update reminder", err)
	}
	return c.JSON(http.StatusOK, toReminderResponse(updated))
}

// DeleteReminder removes a reminder.
func (s *APIV1Service) DeleteReminder(c echo.Context) error {
	reminder, err := s.findOwnedReminder(c)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteReminder(c.Request().Context(), &store.DeleteReminder{ID: reminder.ID}); err != nil {
		return apierrors.Internal("failed to delete reminder", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteReminder marks a reminder as done.
func (s *APIV1Service) CompleteReminder(c echo.Context) error {
	reminder, err := s.findOwnedReminder(c)
	if err != nil {
		return err
	}
	completed := true
	updated, err := s.Store.UpdateReminder(c.Request().Context(), &store.UpdateReminder{
		ID:          reminder.ID,
		IsCompleted: &completed,
	})
	if err != nil {
		return apierrors.Internal("failed to complete reminder", err)
	}
	return c.JSON(http.StatusOK, toReminderResponse(updated))
}

// findOwnedReminder resolves :uid and enforces ownership. Reminders of
// other users read as not found.
func (s *APIV1Service) findOwnedReminder(c echo.Context) (*store.Reminder, error) {
	user := auth.UserFromContext(c)
	uid := c.Param("uid")
	if uid == "" {
		return nil, apierrors.InvalidArgument("reminder uid is required")
	}
	reminder, err := s.Store.GetReminder(c.Request().Context(), &store.FindReminder{
		UID:    &uid,
		UserID: &user.ID,
	})
	if err != nil {
		return nil, apierrors.Internal("failed to load reminder", err)
	}
	if reminder == nil {
		return nil, apierrors.NotFound("reminder not found")
	}
	return reminder, nil
}
