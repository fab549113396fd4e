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

// -----------------------------
// Plans
// -----------------------------
//
// Plans are standalone and their routes carry no authentication, matching
// the deployed behavior.

func GetPlans(c *gin.Context) {
	var plans []Plan
	if err := DB.Order("created_at desc").Find(&plans).Error; err != nil {
		log.Printf("Get plans error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching plans")
		return
	}

	if plans == nil {
		plans = []Plan{}
	}

	c.JSON(http.StatusOK, plans)
}

func GetPlan(c *gin.Context) {
	id := c.Param("id")

	var plan Plan
	if err := DB.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Plan not found")
			return
		}
		log.Printf("Get plan error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

type CreatePlanRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    string  `json:"priority"`
	Completed   bool    `json:"completed"`
}

func CreatePlan(c *gin.Context) {
	var body CreatePlanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(body.Title) == "" {
		respondError(c, http.StatusBadRequest, "Title is required")
		return
	}

	if body.Priority != "" && !validPriority(body.Priority) {
		respondError(c, http.StatusBadRequest, "priority must be one of: LOW, MEDIUM, HIGH")
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

	plan := Plan{
		Title:       strings.TrimSpace(body.Title),
		Description: body.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   body.Completed,
	}

	if err := DB.Create(&plan).Error; err != nil {
		log.Printf("Create plan error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

type UpdatePlanRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// UpdatePlan applies only the fields present in the request.
func UpdatePlan(c *gin.Context) {
	id := c.Param("id")

	var plan Plan
	if err := DB.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Plan not found")
			return
		}
		log.Printf("Update plan error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating plan")
		return
	}

	var body UpdatePlanRequest
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
	if body.Completed != nil {
		updates["completed"] = *body.Completed
	}

	if len(updates) > 0 {
		if err := DB.Model(&plan).Updates(updates).Error; err != nil {
			log.Printf("Update plan error: %v", err)
			respondError(c, http.StatusInternalServerError, "Error updating plan")
			return
		}
	}

	if err := DB.First(&plan, "id = ?", id).Error; err != nil {
		log.Printf("Update plan error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// TogglePlan flips the completion flag. Read then write, no transaction; the
// same lost-update caveat as ToggleTask applies.
func TogglePlan(c *gin.Context) {
	id := c.Param("id")

	var plan Plan
	if err := DB.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Plan not found")
			return
		}
		log.Printf("Toggle plan error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error toggling plan")
		return
	}

	plan.Completed = !plan.Completed
	if err := DB.Model(&plan).Update("completed", plan.Completed).Error; err != nil {
		log.Printf("Toggle plan error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error toggling plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

func DeletePlan(c *gin.Context) {
	id := c.Param("id")

	var plan Plan
	if err := DB.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Plan not found")
			return
		}
		log.Printf("Delete plan error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error deleting plan")
		return
	}

	if err := DB.Delete(&plan).Error; err != nil {
		log.Printf("Delete plan error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error deleting plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}
