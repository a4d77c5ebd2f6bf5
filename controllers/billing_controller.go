package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/config"
	"github.com/mayaaank/MyCanteen-sub000/middlewares"
	"github.com/mayaaank/MyCanteen-sub000/models"
	"github.com/mayaaank/MyCanteen-sub000/services"
	"github.com/mayaaank/MyCanteen-sub000/utils"

	"github.com/gin-gonic/gin"
)

// BillingController is the single external entry point for billing:
// generate, fetch and pay, behind one route with an action discriminator.
// Every action resolves the caller first — authorization failures happen
// before any store access.
type BillingController struct {
	Bills    *services.BillingService
	Payments *services.PaymentService
}

func NewBillingController(bills *services.BillingService, payments *services.PaymentService) *BillingController {
	return &BillingController{Bills: bills, Payments: payments}
}

func validMonth(m int) bool { return m >= 1 && m <= 12 }
func validYear(y int) bool  { return y >= 1000 && y <= 9999 }

// GET /api/billing?action=...
func (bc *BillingController) HandleGet(c *gin.Context) {
	caller, ok := middlewares.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	switch c.Query("action") {
	case "get-all-bills":
		bc.getAllBills(c, caller)
	case "get-user-bills":
		bc.getUserBills(c, caller)
	case "get-user-bill":
		bc.getUserBill(c, caller)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
	}
}

func (bc *BillingController) getAllBills(c *gin.Context, caller middlewares.CallerContext) {
	if !caller.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	var month, year *int
	if c.Query("month") != "" || c.Query("year") != "" {
		m, errM := strconv.Atoi(c.Query("month"))
		y, errY := strconv.Atoi(c.Query("year"))
		if errM != nil || errY != nil || !validMonth(m) || !validYear(y) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month or year"})
			return
		}
		month, year = &m, &y
	}

	bills, err := bc.Bills.GetAllBills(month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

func (bc *BillingController) getUserBills(c *gin.Context, caller middlewares.CallerContext) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	if !caller.IsAdmin() && caller.UserID != uint(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	bills, err := bc.Bills.GetUserBills(uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

func (bc *BillingController) getUserBill(c *gin.Context, caller middlewares.CallerContext) {
	userID, errU := strconv.ParseUint(c.Query("userId"), 10, 32)
	month, errM := strconv.Atoi(c.Query("month"))
	year, errY := strconv.Atoi(c.Query("year"))
	if errU != nil || errM != nil || errY != nil || !validMonth(month) || !validYear(year) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, month and year are required"})
		return
	}
	if !caller.IsAdmin() && caller.UserID != uint(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	bill, err := bc.Bills.GetBill(uint(userID), month, year)
	if errors.Is(err, services.ErrBillNotFound) {
		c.JSON(http.StatusOK, gin.H{"bill": nil})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

type billingAction struct {
	Action        string  `json:"action" binding:"required"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	UserID        uint    `json:"userId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
}

// POST /api/billing
func (bc *BillingController) HandlePost(c *gin.Context) {
	caller, ok := middlewares.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body billingAction
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch body.Action {
	case "generate-bills":
		bc.generateBills(c, caller, body)
	case "record-payment":
		bc.recordPayment(c, caller, body)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
	}
}

func (bc *BillingController) generateBills(c *gin.Context, caller middlewares.CallerContext, body billingAction) {
	if !caller.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	if !validMonth(body.Month) || !validYear(body.Year) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month and year are required"})
		return
	}

	bills, err := bc.Bills.GenerateBills(body.Month, body.Year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// best effort, failures only logged
	for _, b := range bills {
		if b.Email == "" {
			continue
		}
		if err := utils.SendBillReadyEmail(b.Email, time.Month(b.Month), b.Year, b.TotalAmount); err != nil {
			log.Printf("bill email to %s failed: %v", b.Email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         fmt.Sprintf("Bills generated for %d/%d", body.Month, body.Year),
		"bills_generated": len(bills),
		"bills":           bills,
	})
}

func (bc *BillingController) recordPayment(c *gin.Context, caller middlewares.CallerContext, body billingAction) {
	if !caller.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	if body.UserID == 0 || !validMonth(body.Month) || !validYear(body.Year) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, month and year are required"})
		return
	}
	if body.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	payment, err := bc.Payments.RecordPayment(body.UserID, body.Month, body.Year, body.Amount, body.PaymentMethod, body.Notes, caller.UserID)
	switch {
	case errors.Is(err, services.ErrBillNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no bill for that user and month"})
		return
	case errors.Is(err, services.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// receipt email with the freshly derived due amount
	var user models.User
	if err := config.DB.First(&user, body.UserID).Error; err == nil {
		if bill, err := bc.Bills.GetBill(body.UserID, body.Month, body.Year); err == nil {
			if err := utils.SendPaymentReceiptEmail(user.Email, payment.Amount, payment.Reference, bill.DueAmount); err != nil {
				log.Printf("receipt email to %s failed: %v", user.Email, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment recorded",
		"payment": payment,
	})
}
