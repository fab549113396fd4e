package main

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Incomplete tasks first, then higher priority, then sooner due date.
const taskOrdering = "is_completed asc, " +
	"CASE priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 1 ELSE 0 END desc, " +
	"due_date asc"

// GetEventTasks lists all tasks for an event.
func GetEventTasks(c *gin.Context) {
	eventID := c.Param("eventId")

	var tasks []Task
	if err := DB.Preload("Assignee").Where("event_id = ?", eventID).Order(taskOrdering).Find(&tasks).Error; err != nil {
		log.Printf("Get tasks error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching tasks")
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, toTaskResponse(t))
	}

	c.JSON(http.StatusOK, response)
}

func GetTask(c *gin.Context) {
	id := c.Param("id")

	var task Task
	err := DB.Preload("Event").Preload("Assignee").First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("Get task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching task")
		return
	}

	response := toTaskResponse(task)
	response.Event = &EventRef{ID: task.Event.ID, Title: task.Event.Title}

	c.JSON(http.StatusOK, response)
}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    string  `json:"priority"`
	EventID     string  `json:"eventId"`
	AssigneeID  *string `json:"assigneeId"`
}

func CreateTask(c *gin.Context) {
	var body CreateTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(body.Title) == "" || body.EventID == "" {
		respondError(c, http.StatusBadRequest, "Title and event ID are required")
		return
	}

	if body.Priority != "" && !validPriority(body.Priority) {
		respondError(c, http.StatusBadRequest, "priority must be one of: LOW, MEDIUM, HIGH")
		return
	}

	var ev Event
	if err := DB.First(&ev, "id = ?", body.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("Create task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating task")
		return
	}

	var dueDate *time.Time
	if body.DueDate != nil {
		t, err := parseDate(*body.DueDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date format (use RFC3339 or YYYY-MM-DD)")
			return
		}
		dueDate = &t
	}

	priority := body.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	task := Task{
		Title:       strings.TrimSpace(body.Title),
		Description: body.Description,
		DueDate:     dueDate,
		Priority:    priority,
		EventID:     body.EventID,
		AssigneeID:  body.AssigneeID,
	}

	if err := DB.Create(&task).Error; err != nil {
		log.Printf("Create task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating task")
		return
	}

	if err := DB.Preload("Assignee").First(&task, "id = ?", task.ID).Error; err != nil {
		log.Printf("Create task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating task")
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
	IsCompleted *bool   `json:"isCompleted"`
	AssigneeID  *string `json:"assigneeId"`
}

// UpdateTask applies only the fields present in the request. Any
// authenticated caller may update any task.
func UpdateTask(c *gin.Context) {
	id := c.Param("id")

	var task Task
	if err := DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("Update task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating task")
		return
	}

	var body UpdateTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := make(map[string]interface{})
	if body.Title != nil {
		updates["title"] = strings.TrimSpace(*body.Title)
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.DueDate != nil {
		t, err := parseDate(*body.DueDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date format (use RFC3339 or YYYY-MM-DD)")
			return
		}
		updates["due_date"] = t
	}
	if body.Priority != nil {
		if !validPriority(*body.Priority) {
			respondError(c, http.StatusBadRequest, "priority must be one of: LOW, MEDIUM, HIGH")
			return
		}
		updates["priority"] = *body.Priority
	}
	if body.IsCompleted != nil {
		updates["is_completed"] = *body.IsCompleted
	}
	if body.AssigneeID != nil {
		updates["assignee_id"] = *body.AssigneeID
	}

	if len(updates) > 0 {
		if err := DB.Model(&task).Updates(updates).Error; err != nil {
			log.Printf("Update task error: %v", err)
			respondError(c, http.StatusInternalServerError, "Error updating task")
			return
		}
	}

	if err := DB.Preload("Assignee").First(&task, "id = ?", id).Error; err != nil {
		log.Printf("Update task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating task")
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// ToggleTask flips the completion flag. Read then write, no transaction, so
// two concurrent toggles on the same task can lose one update.
func ToggleTask(c *gin.Context) {
	id := c.Param("id")

	var task Task
	if err := DB.Preload("Assignee").First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("Toggle task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error toggling task")
		return
	}

	task.IsCompleted = !task.IsCompleted
	if err := DB.Model(&task).Update("is_completed", task.IsCompleted).Error; err != nil {
		log.Printf("Toggle task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error toggling task")
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func DeleteTask(c *gin.Context) {
	id := c.Param("id")

	var task Task
	if err := DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("Delete task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error deleting task")
		return
	}

	if err := DB.Delete(&task).Error; err != nil {
		log.Printf("Delete task error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error deleting task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
