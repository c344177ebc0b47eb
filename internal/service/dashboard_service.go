package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/dto"
	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	"github.com/escolalink/escola-api/pkg/config"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

const adminDashboardCacheKey = "dash:admin"

type dashboardComposer func(ctx context.Context, user *models.User) (*dto.Dashboard, error)

// DashboardService selects and composes the role-specific dashboard. The
// role tag maps to a composer strategy; unrecognised roles fall back to the
// generic welcome payload.
type DashboardService struct {
	store     *store.Store
	views     *views.Views
	finance   *FinanceService
	grades    *GradeService
	cache     *CacheService
	logger    *zap.Logger
	cfg       config.DashboardConfig
	composers map[models.UserRole]dashboardComposer
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(st *store.Store, vw *views.Views, finance *FinanceService, grades *GradeService, cache *CacheService, logger *zap.Logger, cfg config.DashboardConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UpcomingEventsLimit <= 0 {
		cfg.UpcomingEventsLimit = 5
	}
	s := &DashboardService{
		store:   st,
		views:   vw,
		finance: finance,
		grades:  grades,
		cache:   cache,
		logger:  logger,
		cfg:     cfg,
	}
	s.composers = map[models.UserRole]dashboardComposer{
		models.RoleAdmin:       s.composeAdmin,
		models.RoleDirection:   s.composeAdmin,
		models.RoleSecretariat: s.composeSecretariat,
		models.RoleTeacher:     s.composeTeacher,
		models.RoleStudent:     s.composeStudent,
		models.RoleGuardian:    s.composeStudent,
	}
	return s
}

// ForUser resolves the dashboard for the authenticated account.
func (s *DashboardService) ForUser(ctx context.Context, claims *models.JWTClaims) (*dto.Dashboard, error) {
	if claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	user, ok := s.store.FindUser(claims.UserID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
	}
	composer, ok := s.composers[user.Role]
	if !ok {
		settings, _ := s.store.Settings()
		return &dto.Dashboard{
			Role: user.Role,
			Kind: dto.KindWelcome,
			Welcome: &dto.WelcomeDashboard{
				Message:    "Bem-vindo ao painel da escola.",
				SchoolName: settings.Name,
			},
		}, nil
	}
	return composer(ctx, &user)
}

func (s *DashboardService) composeAdmin(ctx context.Context, user *models.User) (*dto.Dashboard, error) {
	var cached dto.AdminDashboard
	if hit, err := s.cache.Get(ctx, adminDashboardCacheKey, &cached); err == nil && hit {
		return &dto.Dashboard{Role: user.Role, Kind: dto.KindAdmin, Admin: &cached}, nil
	}

	students, _ := s.store.Students()
	teachers, _ := s.store.Teachers()
	summary, err := s.finance.Summary(ctx)
	if err != nil {
		return nil, err
	}
	announcements, _ := s.store.Announcements()
	classes := s.views.ClassesWithDetails()

	payload := dto.AdminDashboard{
		TotalStudents:  len(students),
		TotalTeachers:  len(teachers),
		TotalClasses:   len(classes),
		Finance:        *summary,
		Classes:        classes,
		UpcomingEvents: s.views.UpcomingEvents(s.cfg.UpcomingEventsLimit),
		Announcements:  announcements,
	}
	if err := s.cache.Set(ctx, adminDashboardCacheKey, payload, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache admin dashboard", zap.Error(err))
	}
	return &dto.Dashboard{Role: user.Role, Kind: dto.KindAdmin, Admin: &payload}, nil
}

func (s *DashboardService) composeSecretariat(ctx context.Context, user *models.User) (*dto.Dashboard, error) {
	students, _ := s.store.Students()
	active := 0
	for _, st := range students {
		if st.Status == models.StatusActive {
			active++
		}
	}
	tuition, _ := s.store.Tuition()
	pending, overdue := 0, 0
	for _, rec := range tuition {
		switch rec.Status {
		case models.PaymentPending:
			pending++
		case models.PaymentOverdue:
			overdue++
		}
	}
	loans, _ := s.store.Loans()
	open := 0
	for _, loan := range loans {
		if loan.Open() {
			open++
		}
	}
	announcements, _ := s.store.Announcements()

	return &dto.Dashboard{
		Role: user.Role,
		Kind: dto.KindSecretariat,
		Secretariat: &dto.SecretariatDashboard{
			ActiveStudents: active,
			PendingTuition: pending,
			OverdueTuition: overdue,
			OpenLoans:      open,
			UpcomingEvents: s.views.UpcomingEvents(s.cfg.UpcomingEventsLimit),
			Announcements:  announcements,
		},
	}, nil
}

func (s *DashboardService) composeTeacher(ctx context.Context, user *models.User) (*dto.Dashboard, error) {
	teacher, ok := s.store.FindTeacherByEmail(user.Email)
	if !ok {
		// An account with the TEACHER role but no roster entry renders a
		// placeholder, never an error.
		return &dto.Dashboard{
			Role: user.Role,
			Kind: dto.KindTeacher,
			Teacher: &dto.TeacherDashboard{
				Found:   false,
				Message: "teacher data not found",
			},
		}, nil
	}

	entries, _ := s.store.Curriculum()
	curriculum := make([]models.CurriculumRow, 0)
	seenClasses := make(map[string]struct{})
	for _, entry := range entries {
		if entry.TeacherID != teacher.ID {
			continue
		}
		if _, seen := seenClasses[entry.ClassID]; !seen {
			seenClasses[entry.ClassID] = struct{}{}
		}
		for _, row := range s.views.CurriculumForClass(entry.ClassID) {
			if row.TeacherID == teacher.ID {
				curriculum = append(curriculum, row)
			}
		}
	}

	plans, _ := s.store.LessonPlans()
	ownPlans := make([]models.LessonPlan, 0)
	for _, plan := range plans {
		if plan.TeacherID == teacher.ID {
			ownPlans = append(ownPlans, plan)
		}
	}

	return &dto.Dashboard{
		Role: user.Role,
		Kind: dto.KindTeacher,
		Teacher: &dto.TeacherDashboard{
			Found:          true,
			Teacher:        &teacher,
			Curriculum:     curriculum,
			LessonPlans:    ownPlans,
			UpcomingEvents: s.views.UpcomingEvents(s.cfg.UpcomingEventsLimit),
		},
	}, nil
}

func (s *DashboardService) composeStudent(ctx context.Context, user *models.User) (*dto.Dashboard, error) {
	student, ok := s.matchStudent(user)
	if !ok {
		return &dto.Dashboard{
			Role: user.Role,
			Kind: dto.KindStudent,
			Student: &dto.StudentDashboard{
				Found:   false,
				Message: "student data not found",
			},
		}, nil
	}

	lines, err := s.grades.StudentGrades(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	gradeLines := make([]dto.GradeLine, 0, len(lines))
	for _, line := range lines {
		gradeLines = append(gradeLines, dto.GradeLine{
			SubjectID:   line.SubjectID,
			SubjectName: line.SubjectName,
			Average:     line.Average,
		})
	}

	tuition, err := s.finance.Tuition(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	className := views.PlaceholderName
	if class, ok := s.store.FindClass(student.ClassID); ok {
		className = class.Name
	}

	audience := string(user.Role)
	announcements := make([]models.Announcement, 0)
	all, _ := s.store.Announcements()
	for _, n := range all {
		if n.Audience == "ALL" || n.Audience == audience {
			announcements = append(announcements, n)
		}
	}

	return &dto.Dashboard{
		Role: user.Role,
		Kind: dto.KindStudent,
		Student: &dto.StudentDashboard{
			Found:          true,
			Student:        &student,
			ClassName:      className,
			Grades:         gradeLines,
			Tuition:        tuition,
			UpcomingEvents: s.views.UpcomingEventsForStudent(student.ID, s.cfg.UpcomingEventsLimit),
			Announcements:  announcements,
		},
	}, nil
}

// matchStudent resolves the student whose console this account sees: the
// account name itself for STUDENT, the guardian name for GUARDIAN.
func (s *DashboardService) matchStudent(user *models.User) (models.Student, bool) {
	students, _ := s.store.Students()
	for _, st := range students {
		if user.Role == models.RoleGuardian && st.Guardian == user.FullName {
			return st, true
		}
		if user.Role == models.RoleStudent && st.Name == user.FullName {
			return st, true
		}
	}
	return models.Student{}, false
}
