package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/teamshift-dev/workforce-manager/backend/internal/config"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
			// 时薪表只有本人可以查看和编辑
			r.Route("/wage-table", func(r chi.Router) {
				r.Get("/", h.GetMyWageTable)
				r.Put("/", h.UpdateMyWageTable)
			})
			r.Route("/payroll", func(r chi.Router) {
				r.Get("/monthly", h.GetMyMonthlyPayroll)
				r.Get("/weekly", h.GetMyWeeklyPayroll)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 花名册是公开信息，所有登录用户都能查看
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/units", func(r chi.Router) {
			r.Get("/", h.GetAllUnits)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUnit)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.unit)
				r.Get("/", h.GetUnit)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUnit)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUnit)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/members/{userID}", h.AddUnitMember)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/members/{userID}", h.RemoveUnitMember)
			})
		})

		r.Get("/schedule", h.GetWeeklySchedule)

		r.Route("/shifts", func(r chi.Router) {
			scheduleRoles := []domain.Role{domain.RoleScheduler, domain.RoleAdmin}
			r.With(h.RequiredRole(scheduleRoles)).Post("/", h.CreateShift)
			r.With(h.RequiredRole(scheduleRoles)).Get("/publish-preview", h.GetPublishPreview)
			r.With(h.RequiredRole(scheduleRoles)).Post("/publish", h.PublishShifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shift)
				r.With(h.RequiredRole(scheduleRoles)).Patch("/", h.UpdateShift)
				r.With(h.RequiredRole(scheduleRoles)).Delete("/", h.DeleteShift)
			})
		})

		r.Route("/business-hours", func(r chi.Router) {
			r.Get("/", h.GetBusinessHours)
			r.With(h.RequiredRole([]domain.Role{domain.RoleScheduler, domain.RoleAdmin})).Put("/", h.UpdateBusinessHours)
		})

		r.Route("/display-settings", func(r chi.Router) {
			scheduleRoles := []domain.Role{domain.RoleScheduler, domain.RoleAdmin}
			r.Get("/", h.GetDisplaySettings)
			r.With(h.RequiredRole(scheduleRoles)).Put("/", h.UpdateDisplaySettings)
			r.With(h.RequiredRole(scheduleRoles)).Post("/move-user", h.MoveDisplayUser)
			r.With(h.RequiredRole(scheduleRoles)).Post("/move-group", h.MoveDisplayGroup)
			r.With(h.RequiredRole(scheduleRoles)).Post("/hide/{userID}", h.HideDisplayUser)
			r.With(h.RequiredRole(scheduleRoles)).Post("/show/{userID}", h.ShowDisplayUser)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.ClockIn)
			r.Get("/", h.GetMyTimeEntries)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.timeEntry)
				r.Patch("/clock-out", h.ClockOut)
			})
		})

		r.Route("/leave-requests", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateLeaveRequest)
			r.Get("/", h.GetMyLeaveRequests)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/all", h.GetAllLeaveRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.leaveRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/review", h.ReviewLeaveRequest)
			})
		})

		r.Route("/email-configs", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Use(h.myInfo) // 审计记录需要知道操作者是谁
			r.Route("/{serviceID}", func(r chi.Router) {
				r.Get("/", h.GetEmailConfig)
				r.Put("/", h.UpdateEmailConfig)
			})
		})
		r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/email-test", h.TestEmail)
	})
}
