package main

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority levels shared by tasks and plans.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Attendee participation states.
const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusDeclined = "DECLINED"
)

func validPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func validAttendeeStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusDeclined
}

// User represents a registered user. The password column holds a bcrypt hash
// and is never serialized.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Event is the core event model, owned by exactly one user.
type Event struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"startDate" gorm:"not null"`
	EndDate     *time.Time `json:"endDate"`
	ImageURL    *string    `json:"imageUrl"`
	IsPublic    bool       `json:"isPublic"`
	OwnerID     string     `json:"ownerId" gorm:"index;not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Owner      User            `json:"-" gorm:"foreignKey:OwnerID"`
	Attendees  []EventAttendee `json:"-" gorm:"foreignKey:EventID"`
	Tasks      []Task          `json:"-" gorm:"foreignKey:EventID"`
	Categories []Category      `json:"-" gorm:"many2many:event_categories"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EventAttendee links a user to an event with a participation status.
type EventAttendee struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"eventId" gorm:"uniqueIndex:idx_event_user;not null"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_event_user;not null"`
	Status    string    `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (a *EventAttendee) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Task belongs to one event and is optionally assigned to a user.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority" gorm:"type:varchar(8);not null"`
	IsCompleted bool       `json:"isCompleted"`
	EventID     string     `json:"eventId" gorm:"index;not null"`
	AssigneeID  *string    `json:"assigneeId" gorm:"index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Event    Event `json:"-" gorm:"foreignKey:EventID"`
	Assignee *User `json:"-" gorm:"foreignKey:AssigneeID"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Plan is a standalone checklist item with no owner.
type Plan struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority" gorm:"type:varchar(8);not null"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Category tags events (many to many).
type Category struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Color string `json:"color"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// -----------------------------
// Response projections
// -----------------------------
//
// Each entity has one projection per context, so sensitive or irrelevant
// fields are excluded in one place instead of at every call site.

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary is the embedded shape for owners, attendees and assignees.
type UserSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

type AttendeeResponse struct {
	ID        string      `json:"id"`
	EventID   string      `json:"eventId"`
	UserID    string      `json:"userId"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserSummary `json:"user"`
}

type EventRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type TaskResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"dueDate"`
	Priority    string       `json:"priority"`
	IsCompleted bool         `json:"isCompleted"`
	EventID     string       `json:"eventId"`
	AssigneeID  *string      `json:"assigneeId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Assignee    *UserSummary `json:"assignee,omitempty"`
	Event       *EventRef    `json:"event,omitempty"`
}

type EventResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     *time.Time         `json:"endDate"`
	ImageURL    *string            `json:"imageUrl"`
	IsPublic    bool               `json:"isPublic"`
	OwnerID     string             `json:"ownerId"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Owner       UserSummary        `json:"owner"`
	Attendees   []AttendeeResponse `json:"attendees"`
	Categories  []Category         `json:"categories"`
	TaskCount   int                `json:"taskCount"`
	Tasks       []TaskResponse     `json:"tasks,omitempty"`
}

func toUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func toUserSummary(u User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

func toAttendeeResponse(a EventAttendee) AttendeeResponse {
	return AttendeeResponse{
		ID:        a.ID,
		EventID:   a.EventID,
		UserID:    a.UserID,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		User:      toUserSummary(a.User),
	}
}

func toTaskResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		IsCompleted: t.IsCompleted,
		EventID:     t.EventID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Assignee != nil {
		s := toUserSummary(*t.Assignee)
		resp.Assignee = &s
	}
	return resp
}

// toEventResponse assumes Owner, Attendees.User and Categories are preloaded.
// Tasks are included only when includeTasks is set; otherwise preloaded tasks
// just feed the count.
func toEventResponse(e Event, includeTasks bool) EventResponse {
	attendees := make([]AttendeeResponse, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		attendees = append(attendees, toAttendeeResponse(a))
	}

	categories := e.Categories
	if categories == nil {
		categories = []Category{}
	}

	resp := EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		ImageURL:    e.ImageURL,
		IsPublic:    e.IsPublic,
		OwnerID:     e.OwnerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Owner:       toUserSummary(e.Owner),
		Attendees:   attendees,
		Categories:  categories,
		TaskCount:   len(e.Tasks),
	}

	if includeTasks {
		tasks := make([]TaskResponse, 0, len(e.Tasks))
		for _, t := range e.Tasks {
			tasks = append(tasks, toTaskResponse(t))
		}
		resp.Tasks = tasks
	}

	return resp
}
