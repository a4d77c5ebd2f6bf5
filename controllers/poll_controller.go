package controllers

import (
	"net/http"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/middlewares"
	"github.com/mayaaank/MyCanteen-sub000/services"

	"github.com/gin-gonic/gin"
)

type PollController struct {
	Polls *services.PollService
}

func NewPollController(polls *services.PollService) *PollController {
	return &PollController{Polls: polls}
}

const dateLayout = "2006-01-02"

type pollResponseInput struct {
	Date        string `json:"date" binding:"required"`
	Present     bool   `json:"present"`
	PortionSize string `json:"portion_size" binding:"omitempty,oneof=half full"`
}

// POST /polls/response
func (pc *PollController) SubmitResponse(c *gin.Context) {
	caller, ok := middlewares.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input pollResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	resp, err := pc.Polls.SubmitResponse(caller.UserID, date, input.Present, input.PortionSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /polls/my?from=&to=
func (pc *PollController) MyResponses(c *gin.Context) {
	caller, ok := middlewares.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	from, err := time.Parse(dateLayout, c.DefaultQuery("from", first.Format(dateLayout)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.Parse(dateLayout, c.DefaultQuery("to", last.Format(dateLayout)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return
	}

	rows, err := pc.Polls.UserResponses(caller.UserID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": rows})
}

// GET /polls/day?date= (admin)
func (pc *PollController) DayResponses(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required, want YYYY-MM-DD"})
		return
	}

	rows, err := pc.Polls.DayResponses(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": rows})
}

type confirmInput struct {
	Date    string `json:"date" binding:"required"`
	UserIDs []uint `json:"user_ids"`
}

// POST /polls/confirm (admin). Empty user_ids confirms the whole day.
func (pc *PollController) ConfirmDay(c *gin.Context) {
	var input confirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	n, err := pc.Polls.ConfirmDay(date, input.UserIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "responses confirmed", "confirmed": n})
}
