package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/escolalink/escola-api/internal/models"
)

// Seed loads the static fixture dataset. This is the backend-unavailable
// operating mode: listings served from here must keep fixture order and
// content untouched. Seeding is deterministic apart from password hashes.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := time.Date(2026, time.February, 2, 8, 0, 0, 0, time.UTC)

	s.teachers.reset([]models.Teacher{
		{ID: "tch-001", Name: "Ana Ferreira", Email: "ana.ferreira@escola.edu", Phone: "923-010-101", Qualifications: "Licenciatura em Matemática", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
		{ID: "tch-002", Name: "Carlos Mendes", Email: "carlos.mendes@escola.edu", Phone: "923-010-102", Qualifications: "Licenciatura em Português", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
		{ID: "tch-003", Name: "Isabel Santos", Email: "isabel.santos@escola.edu", Phone: "923-010-103", Qualifications: "Licenciatura em Biologia", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
		{ID: "tch-004", Name: "João Baptista", Email: "joao.baptista@escola.edu", Phone: "923-010-104", Qualifications: "Licenciatura em História", Status: models.StatusInactive, CreatedAt: base, UpdatedAt: base},
	})

	s.staff.reset([]models.Staff{
		{ID: "stf-001", Name: "Marta Lopes", Role: "Secretária", Department: "Secretaria", Phone: "923-020-201", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
		{ID: "stf-002", Name: "Paulo Neto", Role: "Bibliotecário", Department: "Biblioteca", Phone: "923-020-202", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
	})

	s.classes.reset([]models.Class{
		{ID: "cls-001", Name: "10ª A", Year: "2026", TeacherID: "tch-001", CreatedAt: base, UpdatedAt: base},
		{ID: "cls-002", Name: "10ª B", Year: "2026", TeacherID: "tch-002", CreatedAt: base, UpdatedAt: base},
		{ID: "cls-003", Name: "11ª A", Year: "2026", TeacherID: "tch-003", CreatedAt: base, UpdatedAt: base},
	})

	s.students.reset([]models.Student{
		{ID: "stu-001", Name: "Beatriz Almeida", ClassID: "cls-001", Age: 15, Guardian: "Rui Almeida", Phone: "923-100-001", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
		{ID: "stu-002", Name: "Diogo Cunha", ClassID: "cls-001", Age: 16, Guardian: "Sofia Cunha", Phone: "923-100-002", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
		{ID: "stu-003", Name: "Eva Tavares", ClassID: "cls-001", Age: 15, Guardian: "Hugo Tavares", Phone: "923-100-003", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
		{ID: "stu-004", Name: "Filipe Rocha", ClassID: "cls-002", Age: 16, Guardian: "Clara Rocha", Phone: "923-100-004", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
		{ID: "stu-005", Name: "Gabriela Pinto", ClassID: "cls-002", Age: 15, Guardian: "Marco Pinto", Phone: "923-100-005", Status: models.StatusInactive, CreatedAt: base, UpdatedAt: base},
		{ID: "stu-006", Name: "Helena Duarte", ClassID: "cls-003", Age: 17, Guardian: "Vera Duarte", Phone: "923-100-006", Status: models.StatusActive, CreatedAt: base, UpdatedAt: base},
	})

	s.subjects.reset([]models.Subject{
		{ID: "sbj-001", Name: "Matemática", Code: "MAT", Workload: 6, CreatedAt: base, UpdatedAt: base},
		{ID: "sbj-002", Name: "Português", Code: "POR", Workload: 5, CreatedAt: base, UpdatedAt: base},
		{ID: "sbj-003", Name: "Biologia", Code: "BIO", Workload: 4, CreatedAt: base, UpdatedAt: base},
		{ID: "sbj-004", Name: "História", Code: "HIS", Workload: 3, CreatedAt: base, UpdatedAt: base},
	})

	s.curriculum.reset([]models.CurriculumEntry{
		{ID: "cur-001", ClassID: "cls-001", SubjectID: "sbj-001", TeacherID: "tch-001", CreatedAt: base},
		{ID: "cur-002", ClassID: "cls-001", SubjectID: "sbj-002", TeacherID: "tch-002", CreatedAt: base},
		{ID: "cur-003", ClassID: "cls-002", SubjectID: "sbj-001", TeacherID: "tch-001", CreatedAt: base},
		{ID: "cur-004", ClassID: "cls-003", SubjectID: "sbj-003", TeacherID: "tch-003", CreatedAt: base},
	})

	s.gradebooks.reset([]models.StudentGradebook{
		{ID: "grb-001", StudentID: "stu-001", Grades: map[string]models.GradeRecord{
			"sbj-001": {Nota1: "15", Nota2: "18", FinalExam: "16"},
			"sbj-002": {Nota1: "12", Nota2: "14", FinalExam: ""},
		}, UpdatedAt: base},
		{ID: "grb-002", StudentID: "stu-002", Grades: map[string]models.GradeRecord{
			"sbj-001": {Nota1: "", Nota2: "", FinalExam: ""},
		}, UpdatedAt: base},
	})

	s.categories.reset([]models.TransactionCategory{
		{ID: "cat-001", Name: "Propinas"},
		{ID: "cat-002", Name: "Material Escolar"},
		{ID: "cat-003", Name: "Salários"},
	})

	s.transactions.reset([]models.Transaction{
		{ID: "trx-001", Description: "Propina Fevereiro - Beatriz Almeida", CategoryID: "cat-001", Type: models.TransactionIncome, Amount: 25000, Date: base, Status: models.PaymentPaid, CreatedAt: base},
		{ID: "trx-002", Description: "Compra de manuais", CategoryID: "cat-002", Type: models.TransactionExpense, Amount: 8200, Date: base.AddDate(0, 0, 3), Status: models.PaymentPaid, CreatedAt: base},
		{ID: "trx-003", Description: "Propina Fevereiro - Diogo Cunha", CategoryID: "cat-001", Type: models.TransactionIncome, Amount: 25000, Date: base.AddDate(0, 0, 5), Status: models.PaymentPending, CreatedAt: base},
	})

	s.tuition.reset([]models.TuitionRecord{
		{ID: "tui-001", StudentID: "stu-001", Reference: "2026-02", Amount: 25000, DueDate: base.AddDate(0, 0, 8), Status: models.PaymentPaid, CreatedAt: base},
		{ID: "tui-002", StudentID: "stu-002", Reference: "2026-02", Amount: 25000, DueDate: base.AddDate(0, 0, 8), Status: models.PaymentPending, CreatedAt: base},
		{ID: "tui-003", StudentID: "stu-004", Reference: "2026-01", Amount: 25000, DueDate: base.AddDate(0, -1, 8), Status: models.PaymentOverdue, CreatedAt: base},
	})

	s.scholarships.reset([]models.Scholarship{
		{ID: "sch-001", Name: "Mérito Académico", DiscountPercent: 50, CreatedAt: base},
	})

	s.grants.reset([]models.ScholarshipGrant{
		{ID: "grt-001", ScholarshipID: "sch-001", StudentID: "stu-006", GrantedAt: base},
	})

	s.announcements.reset([]models.Announcement{
		{ID: "ann-001", Title: "Reunião de Encarregados", Body: "Reunião geral no dia 20 de Fevereiro às 17h.", Audience: "GUARDIAN", PublishedAt: base},
		{ID: "ann-002", Title: "Semana de Provas", Body: "As provas do primeiro trimestre começam a 9 de Março.", Audience: "ALL", PublishedAt: base.AddDate(0, 0, 2)},
	})

	s.books.reset([]models.Book{
		{ID: "bok-001", Title: "Os Lusíadas", Author: "Luís de Camões", ISBN: "978-972-0-04001-1", Available: true, CreatedAt: base},
		{ID: "bok-002", Title: "Matemática 10º Ano", Author: "M. Carvalho", ISBN: "978-972-0-04002-8", Available: false, CreatedAt: base},
	})

	s.loans.reset([]models.BookLoan{
		{ID: "lon-001", BookID: "bok-002", StudentID: "stu-003", LoanedAt: base, DueAt: base.AddDate(0, 0, 14)},
	})

	s.lessonPlans.reset([]models.LessonPlan{
		{ID: "lsp-001", TeacherID: "tch-001", ClassID: "cls-001", SubjectID: "sbj-001", Title: "Funções Quadráticas", Content: "Introdução às funções do segundo grau.", Date: base.AddDate(0, 0, 7), CreatedAt: base},
	})

	s.healthRecords.reset([]models.HealthRecord{
		{ID: "hlt-001", StudentID: "stu-001", BloodType: "O+", Allergies: "Amendoim", Notes: "", UpdatedAt: base},
	})

	s.events.reset([]models.CalendarEvent{
		{ID: "evt-001", Title: "Carnaval", Date: base.AddDate(0, 0, 15), Type: models.EventHoliday, CreatedAt: base},
		{ID: "evt-002", Title: "Prova de Matemática", Date: base.AddDate(0, 1, 7), Type: models.EventExam, ClassID: ptr("cls-001"), SubjectID: ptr("sbj-001"), CreatedAt: base},
		{ID: "evt-003", Title: "Feira do Livro", Date: base.AddDate(0, 1, 20), Type: models.EventGeneral, CreatedAt: base},
		{ID: "evt-004", Title: "Entrega de Pautas", Date: base.AddDate(0, 2, 0), Type: models.EventDeadline, CreatedAt: base},
	})

	s.users.reset([]models.User{
		{ID: "usr-001", Email: "admin@escola.edu", PasswordHash: hashPassword("admin123"), FullName: "Administrador", Role: models.RoleAdmin, Active: true, CreatedAt: base, UpdatedAt: base},
		{ID: "usr-002", Email: "secretaria@escola.edu", PasswordHash: hashPassword("secretaria123"), FullName: "Marta Lopes", Role: models.RoleSecretariat, Active: true, CreatedAt: base, UpdatedAt: base},
		{ID: "usr-003", Email: "ana.ferreira@escola.edu", PasswordHash: hashPassword("professora123"), FullName: "Ana Ferreira", Role: models.RoleTeacher, Active: true, CreatedAt: base, UpdatedAt: base},
		{ID: "usr-004", Email: "rui.almeida@mail.com", PasswordHash: hashPassword("encarregado123"), FullName: "Rui Almeida", Role: models.RoleGuardian, Active: true, CreatedAt: base, UpdatedAt: base},
	})

	s.settings = models.SchoolSettings{
		Name:         "Colégio Horizonte",
		Address:      "Rua das Acácias 12, Luanda",
		Phone:        "222-334-455",
		Email:        "geral@escola.edu",
		AcademicYear: "2026",
		UpdatedAt:    base,
	}
	s.settingsVersion++
}

func hashPassword(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}

func ptr(v string) *string {
	return &v
}
