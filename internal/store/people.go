package store

import (
	"github.com/escolalink/escola-api/internal/models"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// Students returns the student collection and its version.
func (s *Store) Students() ([]models.Student, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.students.list()
}

// FindStudent looks up a student by ID.
func (s *Store) FindStudent(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.students.find(id)
}

// AddStudent appends a student, assigning an ID when needed.
func (s *Store) AddStudent(student models.Student) models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	student.CreatedAt = now
	student.UpdatedAt = now
	return s.students.add(student)
}

// UpdateStudent replaces the student with a matching ID. Unknown IDs are a
// no-op.
func (s *Store) UpdateStudent(student models.Student) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	student.UpdatedAt = s.now()
	return s.students.replace(student)
}

// RemoveStudent filters the student out of the collection.
func (s *Store) RemoveStudent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.students.remove(id)
}

// ResetStudents replaces the whole collection with backend rows.
func (s *Store) ResetStudents(students []models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students.reset(students)
}

// Teachers returns the teacher collection and its version.
func (s *Store) Teachers() ([]models.Teacher, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teachers.list()
}

// FindTeacher looks up a teacher by ID.
func (s *Store) FindTeacher(id string) (models.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teachers.find(id)
}

// FindTeacherByEmail resolves a teacher from a login email.
func (s *Store) FindTeacherByEmail(email string) (models.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teachers.items {
		if t.Email == email {
			return t, true
		}
	}
	return models.Teacher{}, false
}

// AddTeacher appends a teacher record.
func (s *Store) AddTeacher(teacher models.Teacher) models.Teacher {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now
	return s.teachers.add(teacher)
}

// UpdateTeacher replaces a teacher record by ID.
func (s *Store) UpdateTeacher(teacher models.Teacher) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	teacher.UpdatedAt = s.now()
	return s.teachers.replace(teacher)
}

// RemoveTeacher deletes a teacher unless classes or curriculum entries still
// reference them. On rejection the store is unchanged.
func (s *Store) RemoveTeacher(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.classes.items {
		if c.TeacherID == id {
			return appErrors.Clone(appErrors.ErrInUse, "teacher is assigned to a class")
		}
	}
	for _, entry := range s.curriculum.items {
		if entry.TeacherID == id {
			return appErrors.Clone(appErrors.ErrInUse, "teacher is assigned in a curriculum")
		}
	}
	if !s.teachers.remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return nil
}

// Staff returns the staff collection and its version.
func (s *Store) Staff() ([]models.Staff, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staff.list()
}

// AddStaff appends a staff record.
func (s *Store) AddStaff(member models.Staff) models.Staff {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	member.CreatedAt = now
	member.UpdatedAt = now
	return s.staff.add(member)
}

// UpdateStaff replaces a staff record by ID.
func (s *Store) UpdateStaff(member models.Staff) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	member.UpdatedAt = s.now()
	return s.staff.replace(member)
}

// RemoveStaff filters out a staff record.
func (s *Store) RemoveStaff(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staff.remove(id)
}

// Users returns the account collection and its version.
func (s *Store) Users() ([]models.User, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.list()
}

// FindUser looks up an account by ID.
func (s *Store) FindUser(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.find(id)
}

// FindUserByEmail looks up an account by email.
func (s *Store) FindUserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.items {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// AddUser appends an account.
func (s *Store) AddUser(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return s.users.add(user)
}

// UpdateUser replaces an account by ID.
func (s *Store) UpdateUser(user models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.UpdatedAt = s.now()
	return s.users.replace(user)
}

// RemoveUser filters out an account.
func (s *Store) RemoveUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.remove(id)
}

// TouchLastLogin stamps the account's last login time.
func (s *Store) TouchLastLogin(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users.find(id)
	if !ok {
		return
	}
	ts := s.now()
	user.LastLogin = &ts
	user.UpdatedAt = ts
	s.users.replace(user)
}

// AddSession records an issued token session.
func (s *Store) AddSession(session models.Session) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.add(session)
}

// FindSession reports whether a session is still live.
func (s *Store) FindSession(id string) (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions.find(id)
}

// RemoveSession revokes a session. Unknown sessions are a no-op.
func (s *Store) RemoveSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.remove(id)
}
