package dto

import "github.com/escolalink/escola-api/internal/models"

// Dashboard wraps the role-specific payload returned to the console shell.
type Dashboard struct {
	Role models.UserRole `json:"role"`
	Kind string          `json:"kind"`

	Admin       *AdminDashboard       `json:"admin,omitempty"`
	Secretariat *SecretariatDashboard `json:"secretariat,omitempty"`
	Teacher     *TeacherDashboard     `json:"teacher,omitempty"`
	Student     *StudentDashboard     `json:"student,omitempty"`
	Welcome     *WelcomeDashboard     `json:"welcome,omitempty"`
}

// Dashboard kinds rendered by the console shell.
const (
	KindAdmin       = "admin"
	KindSecretariat = "secretariat"
	KindTeacher     = "teacher"
	KindStudent     = "student"
	KindWelcome     = "welcome"
)

// AdminDashboard aggregates school-wide indicators for ADMIN and DIRECTION.
type AdminDashboard struct {
	TotalStudents  int                    `json:"total_students"`
	TotalTeachers  int                    `json:"total_teachers"`
	TotalClasses   int                    `json:"total_classes"`
	Finance        models.FinanceSummary  `json:"finance"`
	Classes        []models.ClassDetail   `json:"classes"`
	UpcomingEvents []models.CalendarEvent `json:"upcoming_events"`
	Announcements  []models.Announcement  `json:"announcements"`
}

// SecretariatDashboard surfaces the secretariat work queue.
type SecretariatDashboard struct {
	ActiveStudents int                    `json:"active_students"`
	PendingTuition int                    `json:"pending_tuition"`
	OverdueTuition int                    `json:"overdue_tuition"`
	OpenLoans      int                    `json:"open_loans"`
	UpcomingEvents []models.CalendarEvent `json:"upcoming_events"`
	Announcements  []models.Announcement  `json:"announcements"`
}

// TeacherDashboard scopes the console to one teacher's classes. When the
// authenticated email matches no teacher record, Found is false and Message
// explains the placeholder.
type TeacherDashboard struct {
	Found          bool                   `json:"found"`
	Message        string                 `json:"message,omitempty"`
	Teacher        *models.Teacher        `json:"teacher,omitempty"`
	Curriculum     []models.CurriculumRow `json:"curriculum,omitempty"`
	LessonPlans    []models.LessonPlan    `json:"lesson_plans,omitempty"`
	UpcomingEvents []models.CalendarEvent `json:"upcoming_events,omitempty"`
}

// GradeLine is a per-subject average shown on the student dashboard.
type GradeLine struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Average     string `json:"average"`
}

// StudentDashboard scopes the console to one student or their guardian.
type StudentDashboard struct {
	Found          bool                   `json:"found"`
	Message        string                 `json:"message,omitempty"`
	Student        *models.Student        `json:"student,omitempty"`
	ClassName      string                 `json:"class_name,omitempty"`
	Grades         []GradeLine            `json:"grades,omitempty"`
	Tuition        []models.TuitionRecord `json:"tuition,omitempty"`
	UpcomingEvents []models.CalendarEvent `json:"upcoming_events,omitempty"`
	Announcements  []models.Announcement  `json:"announcements,omitempty"`
}

// WelcomeDashboard is the generic fallback for unrecognised roles.
type WelcomeDashboard struct {
	Message    string `json:"message"`
	SchoolName string `json:"school_name"`
}
