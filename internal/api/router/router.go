package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/config"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/api/handler"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/api/middleware"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/jwt"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 学籍模块
			students := authorized.Group("/students")
			{
				students.POST("", middleware.RoleAuth("admin"), h.Student.CreateStudent)
				students.GET("", middleware.RoleAuth("admin", "teacher"), h.Student.ListStudents)
				students.GET("/:id", h.Student.GetStudent)
				students.PUT("/:id", middleware.RoleAuth("admin"), h.Student.UpdateStudent)
				students.DELETE("/:id", middleware.RoleAuth("admin"), h.Student.DeleteStudent)
				students.GET("/:id/attendance", h.Student.GetAttendanceSummary)

				// 成绩查询挂在学生资源下
				students.GET("/:id/grades", h.Grade.ListStudentGrades)
				students.GET("/:id/grades/failing", middleware.RoleAuth("admin", "teacher"), h.Grade.ListFailingGrades)
				students.GET("/:id/gpa", h.Grade.GetStudentGPA)
				students.GET("/:id/subjects/:subject_id/average", h.Grade.GetSubjectAverage)

				// 离校清查
				students.GET("/:id/clearance", middleware.RoleAuth("admin"), h.TransferCert.CheckClearance)
			}

			// 考勤录入（教师/管理员）
			authorized.POST("/attendance", middleware.RoleAuth("admin", "teacher"), h.Student.RecordAttendance)

			// 班级模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.SchoolClass.ListClasses)
				classes.GET("/:id", h.SchoolClass.GetClass)
				classes.POST("", middleware.RoleAuth("admin"), h.SchoolClass.CreateClass)
				classes.PUT("/:id", middleware.RoleAuth("admin"), h.SchoolClass.UpdateClass)
				classes.DELETE("/:id", middleware.RoleAuth("admin"), h.SchoolClass.DeleteClass)
				classes.GET("/:id/roster", middleware.RoleAuth("admin", "teacher"), h.SchoolClass.GetClassRoster)
			}

			// 费用台账模块
			fees := authorized.Group("/fees")
			{
				fees.POST("", middleware.RoleAuth("admin"), h.Fee.CreateFee)
				fees.GET("", middleware.RoleAuth("admin"), h.Fee.ListFees)
				fees.GET("/overdue", middleware.RoleAuth("admin"), h.Fee.ListOverdueFees)
				fees.GET("/totals", middleware.RoleAuth("admin"), h.Fee.GetFeeTotals)
				fees.GET("/:id", h.Fee.GetFee)
				fees.POST("/:id/payment", middleware.RoleAuth("admin"), h.Fee.RecordPayment)
			}

			// 成绩模块（录入与发布）
			grades := authorized.Group("/grades")
			{
				grades.POST("", middleware.RoleAuth("admin", "teacher"), h.Grade.CreateGrade)
				grades.PATCH("/:id/publish", middleware.RoleAuth("admin", "teacher"), h.Grade.PublishGrade)
			}

			// 校园卡模块
			idCards := authorized.Group("/id-cards")
			{
				idCards.POST("", middleware.RoleAuth("admin"), h.IDCard.GenerateCard)
				idCards.GET("", middleware.RoleAuth("admin"), h.IDCard.ListHolderCards)
				idCards.GET("/:id", h.IDCard.GetCard)
				idCards.PATCH("/:id/report-lost", h.IDCard.ReportLost)
				idCards.POST("/:id/reissue", middleware.RoleAuth("admin"), h.IDCard.ReissueCard)
				idCards.POST("/:id/cancel", middleware.RoleAuth("admin"), h.IDCard.CancelCard)
			}

			// 转学证明模块
			tcs := authorized.Group("/transfer-certificates")
			{
				tcs.POST("", middleware.RoleAuth("admin"), h.TransferCert.GenerateTC)
				tcs.GET("", middleware.RoleAuth("admin"), h.TransferCert.ListTCs)
				tcs.GET("/:id", h.TransferCert.GetTC)
				tcs.POST("/:id/submit", middleware.RoleAuth("admin"), h.TransferCert.SubmitTC)
				tcs.PATCH("/:id/approve", middleware.RoleAuth("admin"), h.TransferCert.ApproveTC)
				tcs.PATCH("/:id/issue", middleware.RoleAuth("admin"), h.TransferCert.IssueTC)
				tcs.POST("/:id/cancel", middleware.RoleAuth("admin"), h.TransferCert.CancelTC)
			}

			// 家长看板模块（家长仅能访问自己，Handler 内鉴权）
			parents := authorized.Group("/parents")
			{
				parents.GET("/:id/dashboard", middleware.RoleAuth("admin", "parent"), h.Parent.GetDashboard)
				parents.GET("/:id/children/:student_id", middleware.RoleAuth("admin", "parent"), h.Parent.GetChildOverview)
				parents.POST("/:id/children", middleware.RoleAuth("admin"), h.Parent.LinkStudent)
				parents.DELETE("/:id/children/:student_id", middleware.RoleAuth("admin"), h.Parent.UnlinkStudent)
			}

			// 公告模块
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.ListAnnouncements)
				announcements.POST("", middleware.RoleAuth("admin", "teacher"), h.Announcement.PublishAnnouncement)
				announcements.DELETE("/:id", middleware.RoleAuth("admin"), h.Announcement.DeleteAnnouncement)
			}

			// 校历模块
			calendar := authorized.Group("/calendar")
			{
				calendar.GET("/events", h.Calendar.ListEvents)
				calendar.POST("/events", middleware.RoleAuth("admin"), h.Calendar.CreateEvent)
				calendar.DELETE("/events/:id", middleware.RoleAuth("admin"), h.Calendar.DeleteEvent)
				calendar.GET("/export.ics", h.Calendar.ExportICS)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/fees", middleware.RoleAuth("admin"), h.Export.ExportFeeLedger)
			}
		}
	}

	return r
}
