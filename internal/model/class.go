package model

import "time"

// Class is a scheduled run of a training, taught by an instructor.
type Class struct {
	ID             int        `json:"id"`
	TrainingID     int        `json:"training_id"`
	TrainingTitle  string     `json:"training_title,omitempty"`
	InstructorID   int        `json:"instructor_id"`
	InstructorName string     `json:"instructor_name,omitempty"`
	Name           string     `json:"name"`
	StartsAt       time.Time  `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Lesson is a single session inside a class.
type Lesson struct {
	ID          int       `json:"id"`
	ClassID     int       `json:"class_id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// Attendance marks a student's presence in a lesson.
type Attendance struct {
	LessonID  int  `json:"lesson_id"`
	StudentID int  `json:"student_id"`
	Present   bool `json:"present"`
}

// CreateClassRequest schedules a new class.
type CreateClassRequest struct {
	TrainingID   int        `json:"training_id" binding:"required"`
	InstructorID int        `json:"instructor_id" binding:"required"`
	Name         string     `json:"name" binding:"required,max=255"`
	StartsAt     time.Time  `json:"starts_at" binding:"required"`
	EndsAt       *time.Time `json:"ends_at"`
}

// UpdateClassRequest is the class-update payload.
type UpdateClassRequest struct {
	Name     string     `json:"name" binding:"required,max=255"`
	StartsAt time.Time  `json:"starts_at" binding:"required"`
	EndsAt   *time.Time `json:"ends_at"`
}

// CreateLessonRequest adds a lesson to a class.
type CreateLessonRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// RosterRequest adds or removes students from a class.
type RosterRequest struct {
	StudentIDs []int `json:"student_ids" binding:"required,min=1"`
}

// AttendanceRequest records attendance for a lesson.
type AttendanceRequest struct {
	Records []Attendance `json:"records" binding:"required,min=1,dive"`
}
