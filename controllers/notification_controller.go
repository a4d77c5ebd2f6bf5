package controllers

import (
    "net/http"

    "github.com/mayaaank/MyCanteen-sub000/config"
    "github.com/mayaaank/MyCanteen-sub000/models"

    "github.com/gin-gonic/gin"
)

// GET /user/alerts
func ListAlerts(c *gin.Context) {
    uid := c.GetUint("userID")

    var alerts []models.Alert
    if err := config.DB.
        Where("user_id = ?", uid).
        Order("created_at DESC").
        Limit(50).
        Find(&alerts).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// POST /user/alerts/read — marks everything read
func MarkAlertsRead(c *gin.Context) {
    uid := c.GetUint("userID")

    if err := config.DB.Model(&models.Alert{}).
        Where("user_id = ? AND read = ?", uid, false).
        Update("read", true).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "alerts marked read"})
}

type toggleReq struct {
    Enabled bool `json:"enabled"`
}

// POST /user/notifications/toggle
func ToggleNotifications(c *gin.Context) {
    uid := c.GetUint("userID")

    var req toggleReq
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
        return
    }

    if err := config.DB.Model(&models.UserDevice{}).
        Where("user_id = ?", uid).
        Update("enabled", req.Enabled).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "message": "notifications updated",
        "enabled": req.Enabled,
    })
}
