package routes

import (
    "log"

    "github.com/mayaaank/MyCanteen-sub000/config"
    "github.com/mayaaank/MyCanteen-sub000/controllers"
    "github.com/mayaaank/MyCanteen-sub000/middlewares"
    "github.com/mayaaank/MyCanteen-sub000/services"

    "github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
    r := gin.Default()

    hub := services.NewRealtimeHub()
    push, err := services.NewPushService(config.DB)
    if err != nil {
        log.Printf("push service unavailable: %v", err)
        push = nil
    }
    services.InitAlertDeps(config.DB, hub, push)

    pollCtl := controllers.NewPollController(services.NewPollService(config.DB))
    billingCtl := controllers.NewBillingController(
        services.NewBillingService(config.DB),
        services.NewPaymentService(config.DB),
    )
    summaryCtl := controllers.NewSummaryController(services.NewSummaryService(config.DB))
    deviceCtl := controllers.NewDeviceController(push)
    realtimeCtl := controllers.NewRealtimeController(hub)

    // Public auth routes
    auth := r.Group("/auth")
    {
        auth.POST("/register", controllers.Register)
        auth.POST("/login", controllers.Login)
    }

    // Protected user routes
    user := r.Group("/user")
    user.Use(middlewares.AuthMiddleware())
    {
        user.GET("/profile", controllers.GetProfile)
        user.PUT("/profile", controllers.UpdateProfile)
        user.GET("/summary", summaryCtl.GetSummary)
        user.GET("/alerts", controllers.ListAlerts)
        user.POST("/alerts/read", controllers.MarkAlertsRead)
        user.POST("/notifications/toggle", controllers.ToggleNotifications)
        user.POST("/devices", deviceCtl.Register)
    }

    // Daily meal poll
    polls := r.Group("/polls")
    polls.Use(middlewares.AuthMiddleware())
    {
        polls.POST("/response", pollCtl.SubmitResponse)
        polls.GET("/my", pollCtl.MyResponses)

        admin := polls.Group("")
        admin.Use(middlewares.AdminMiddleware())
        {
            admin.GET("/day", pollCtl.DayResponses)
            admin.POST("/confirm", pollCtl.ConfirmDay)
        }
    }

    // Billing gateway: one route, action discriminator
    billing := r.Group("/api/billing")
    billing.Use(middlewares.AuthMiddleware())
    {
        billing.GET("", billingCtl.HandleGet)
        billing.POST("", billingCtl.HandlePost)
    }

    // Realtime billing events
    ws := r.Group("/ws")
    ws.Use(middlewares.AuthMiddleware())
    {
        ws.GET("/alerts", realtimeCtl.AlertsWS)
    }

    return r
}
