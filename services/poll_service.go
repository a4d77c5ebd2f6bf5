package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/models"

	"gorm.io/gorm"
)

type PollService struct{ db *gorm.DB }

func NewPollService(db *gorm.DB) *PollService { return &PollService{db: db} }

// DayUTC truncates to day granularity; poll dates are stored at midnight UTC.
func DayUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthWindow returns the first and last calendar day of a month.
func MonthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// SubmitResponse creates or updates the caller's answer for one day.
// Any edit drops the response back to "pending" so an admin has to
// confirm it again before it becomes billable.
func (s *PollService) SubmitResponse(userID uint, date time.Time, present bool, portion string) (*models.PollResponse, error) {
	if portion != models.PortionHalf {
		portion = models.PortionFull
	}
	day := DayUTC(date)

	var resp models.PollResponse
	err := s.db.Where("user_id = ? AND date = ?", userID, day).First(&resp).Error
	if err == nil {
		resp.Present = present
		resp.PortionSize = portion
		resp.ConfirmationStatus = models.ConfirmationPending
		if err := s.db.Save(&resp).Error; err != nil {
			return nil, fmt.Errorf("update poll response: %w", err)
		}
		return &resp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup poll response: %w", err)
	}

	resp = models.PollResponse{
		UserID:             userID,
		Date:               day,
		Present:            present,
		PortionSize:        portion,
		ConfirmationStatus: models.ConfirmationPending,
	}
	if err := s.db.Create(&resp).Error; err != nil {
		return nil, fmt.Errorf("create poll response: %w", err)
	}
	return &resp, nil
}

func (s *PollService) UserResponses(userID uint, from, to time.Time) ([]models.PollResponse, error) {
	var rows []models.PollResponse
	err := s.db.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, DayUTC(from), DayUTC(to)).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

// DayResponse joins user display fields for the admin day view.
type DayResponse struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"user_id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Date               time.Time `json:"date"`
	Present            bool      `json:"present"`
	PortionSize        string    `json:"portion_size"`
	ConfirmationStatus string    `json:"confirmation_status"`
}

func (s *PollService) DayResponses(date time.Time) ([]DayResponse, error) {
	var rows []DayResponse
	err := s.db.
		Table("poll_responses").
		Select("poll_responses.id, poll_responses.user_id, users.full_name, users.email, poll_responses.date, poll_responses.present, poll_responses.portion_size, poll_responses.confirmation_status").
		Joins("JOIN users ON users.id = poll_responses.user_id").
		Where("poll_responses.date = ? AND poll_responses.deleted_at IS NULL", DayUTC(date)).
		Order("users.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

// ConfirmDay marks present responses for the day as confirmed. An empty
// userIDs slice confirms the whole day. Returns how many rows changed.
func (s *PollService) ConfirmDay(date time.Time, userIDs []uint) (int64, error) {
	q := s.db.Model(&models.PollResponse{}).
		Where("date = ? AND present = ?", DayUTC(date), true)
	if len(userIDs) > 0 {
		q = q.Where("user_id IN ?", userIDs)
	}
	res := q.Update("confirmation_status", models.ConfirmationConfirmed)
	if res.Error != nil {
		return 0, fmt.Errorf("confirm responses: %w", res.Error)
	}
	return res.RowsAffected, nil
}

type MealCounts struct {
	HalfMeals int
	FullMeals int
}

// AggregateMonth counts billable meals per user for one month. Only rows
// that are confirmed AND present count; a portion size of exactly "half"
// increments the half counter, anything else counts as a full meal.
func (s *PollService) AggregateMonth(month, year int) (map[uint]MealCounts, error) {
	start, end := MonthWindow(month, year)

	var rows []models.PollResponse
	if err := s.db.
		Where("confirmation_status = ? AND present = ? AND date BETWEEN ? AND ?",
			models.ConfirmationConfirmed, true, start, end).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch poll responses: %w", err)
	}

	counts := make(map[uint]MealCounts)
	for _, r := range rows {
		c := counts[r.UserID]
		if r.PortionSize == models.PortionHalf {
			c.HalfMeals++
		} else {
			c.FullMeals++
		}
		counts[r.UserID] = c
	}
	return counts, nil
}
