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

// parseDate accepts RFC3339 or plain YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	return t, err
}

// -----------------------------
// Events
// -----------------------------

type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	ImageURL    *string `json:"imageUrl"`
	IsPublic    bool    `json:"isPublic"`
}

func CreateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	var body CreateEventRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(body.Title) == "" || body.StartDate == "" {
		respondError(c, http.StatusBadRequest, "Title and start date are required")
		return
	}

	startDate, err := parseDate(body.StartDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date format (use RFC3339 or YYYY-MM-DD)")
		return
	}

	var endDate *time.Time
	if body.EndDate != nil {
		t, err := parseDate(*body.EndDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date format (use RFC3339 or YYYY-MM-DD)")
			return
		}
		endDate = &t
	}

	ev := Event{
		Title:       strings.TrimSpace(body.Title),
		Description: body.Description,
		Location:    body.Location,
		StartDate:   startDate,
		EndDate:     endDate,
		ImageURL:    body.ImageURL,
		IsPublic:    body.IsPublic,
		OwnerID:     userID,
	}

	if err := DB.Create(&ev).Error; err != nil {
		log.Printf("Create event error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating event")
		return
	}

	if err := DB.Preload("Owner").First(&ev, "id = ?", ev.ID).Error; err != nil {
		log.Printf("Create event error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating event")
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(ev, false))
}

// GetEvents lists events the caller owns or attends, soonest first.
func GetEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	var attendances []EventAttendee
	if err := DB.Where("user_id = ?", userID).Find(&attendances).Error; err != nil {
		log.Printf("Get events error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching events")
		return
	}

	attendedIDs := make([]string, 0, len(attendances))
	for _, a := range attendances {
		attendedIDs = append(attendedIDs, a.EventID)
	}

	var events []Event
	query := DB.
		Preload("Owner").
		Preload("Attendees.User").
		Preload("Categories").
		Preload("Tasks").
		Order("start_date asc")
	if len(attendedIDs) > 0 {
		query = query.Where("owner_id = ? OR id IN ?", userID, attendedIDs)
	} else {
		query = query.Where("owner_id = ?", userID)
	}
	if err := query.Find(&events).Error; err != nil {
		log.Printf("Get events error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching events")
		return
	}

	response := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		response = append(response, toEventResponse(ev, false))
	}

	c.JSON(http.StatusOK, response)
}

func GetEvent(c *gin.Context) {
	id := c.Param("id")

	var ev Event
	err := DB.
		Preload("Owner").
		Preload("Attendees.User").
		Preload("Categories").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date asc")
		}).
		Preload("Tasks.Assignee").
		First(&ev, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("Get event error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching event")
		return
	}

	c.JSON(http.StatusOK, toEventResponse(ev, true))
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	ImageURL    *string `json:"imageUrl"`
	IsPublic    *bool   `json:"isPublic"`
}

// UpdateEvent is ownership-gated; absent fields are left untouched.
func UpdateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	id := c.Param("id")

	var ev Event
	if err := DB.First(&ev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("Update event error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating event")
		return
	}

	if ev.OwnerID != userID {
		respondError(c, http.StatusForbidden, "Not authorized to update this event")
		return
	}

	var body UpdateEventRequest
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
	if body.Location != nil {
		updates["location"] = *body.Location
	}
	if body.StartDate != nil {
		t, err := parseDate(*body.StartDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date format (use RFC3339 or YYYY-MM-DD)")
			return
		}
		updates["start_date"] = t
	}
	if body.EndDate != nil {
		t, err := parseDate(*body.EndDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date format (use RFC3339 or YYYY-MM-DD)")
			return
		}
		updates["end_date"] = t
	}
	if body.ImageURL != nil {
		updates["image_url"] = *body.ImageURL
	}
	if body.IsPublic != nil {
		updates["is_public"] = *body.IsPublic
	}

	if len(updates) > 0 {
		if err := DB.Model(&ev).Updates(updates).Error; err != nil {
			log.Printf("Update event error: %v", err)
			respondError(c, http.StatusInternalServerError, "Error updating event")
			return
		}
	}

	if err := DB.
		Preload("Owner").
		Preload("Attendees.User").
		Preload("Categories").
		Preload("Tasks").
		First(&ev, "id = ?", id).Error; err != nil {
		log.Printf("Update event error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating event")
		return
	}

	c.JSON(http.StatusOK, toEventResponse(ev, false))
}

// DeleteEvent is ownership-gated and removes attendee links and tasks with
// the event.
func DeleteEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	id := c.Param("id")

	var ev Event
	if err := DB.First(&ev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("Delete event error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error deleting event")
		return
	}

	if ev.OwnerID != userID {
		respondError(c, http.StatusForbidden, "Not authorized to delete this event")
		return
	}

	if err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", ev.ID).Delete(&EventAttendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", ev.ID).Delete(&Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, "id = ?", ev.ID).Error
	}); err != nil {
		log.Printf("Delete event error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error deleting event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// -----------------------------
// Attendees
// -----------------------------

type AddAttendeeRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

func AddAttendee(c *gin.Context) {
	eventID := c.Param("id")

	var body AddAttendeeRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID == "" {
		respondError(c, http.StatusBadRequest, "User ID is required")
		return
	}

	var ev Event
	if err := DB.First(&ev, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("Add attendee error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error adding attendee")
		return
	}

	var invitee User
	if err := DB.First(&invitee, "id = ?", body.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Add attendee error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error adding attendee")
		return
	}

	status := body.Status
	if status == "" {
		status = StatusPending
	}

	att := EventAttendee{
		EventID: eventID,
		UserID:  invitee.ID,
		Status:  status,
		User:    invitee,
	}

	if err := DB.Omit("User").Create(&att).Error; err != nil {
		log.Printf("Add attendee error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error adding attendee")
		return
	}

	c.JSON(http.StatusCreated, toAttendeeResponse(att))
}

type RespondAttendanceRequest struct {
	Status string `json:"status"`
}

// RespondAttendance lets the caller set their own participation status,
// creating the attendee row on first response.
func RespondAttendance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	eventID := c.Param("id")

	var body RespondAttendanceRequest
	if err := c.ShouldBindJSON(&body); err != nil || !validAttendeeStatus(body.Status) {
		respondError(c, http.StatusBadRequest, "status must be one of: PENDING, ACCEPTED, DECLINED")
		return
	}

	var ev Event
	if err := DB.First(&ev, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("Respond attendance error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating attendance")
		return
	}

	var att EventAttendee
	err := DB.Preload("User").Where("event_id = ? AND user_id = ?", eventID, userID).First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var user User
		if err := DB.First(&user, "id = ?", userID).Error; err != nil {
			log.Printf("Respond attendance error: %v", err)
			respondError(c, http.StatusInternalServerError, "Error updating attendance")
			return
		}
		att = EventAttendee{
			EventID: eventID,
			UserID:  userID,
			Status:  body.Status,
			User:    user,
		}
		if err := DB.Omit("User").Create(&att).Error; err != nil {
			log.Printf("Respond attendance error: %v", err)
			respondError(c, http.StatusInternalServerError, "Error updating attendance")
			return
		}
		c.JSON(http.StatusOK, toAttendeeResponse(att))
		return
	}
	if err != nil {
		log.Printf("Respond attendance error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating attendance")
		return
	}

	att.Status = body.Status
	if err := DB.Model(&att).Update("status", body.Status).Error; err != nil {
		log.Printf("Respond attendance error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error updating attendance")
		return
	}

	c.JSON(http.StatusOK, toAttendeeResponse(att))
}

// GetEventAttendees lists attendees; restricted to the event owner.
func GetEventAttendees(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	eventID := c.Param("id")

	var ev Event
	if err := DB.First(&ev, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("Get attendees error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching attendees")
		return
	}

	if ev.OwnerID != userID {
		respondError(c, http.StatusForbidden, "Only the event owner can view attendees")
		return
	}

	var attendees []EventAttendee
	if err := DB.Preload("User").Where("event_id = ?", eventID).Find(&attendees).Error; err != nil {
		log.Printf("Get attendees error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching attendees")
		return
	}

	response := make([]AttendeeResponse, 0, len(attendees))
	for _, a := range attendees {
		response = append(response, toAttendeeResponse(a))
	}

	c.JSON(http.StatusOK, response)
}
