package main

import (
	"log"
	"os"
	"time"

	"task-tracking-be/internal/model"
	"task-tracking-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a demo workspace: a few groups and notes in varied statuses so
// the list, stats and history endpoints have something to show.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	userIdStr := os.Getenv("SEED_USER_ID")
	if userIdStr == "" {
		log.Fatal("Error: SEED_USER_ID is not set")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		log.Fatal("Error: SEED_USER_ID is not a valid uuid")
	}

	color.Cyan("Seeding demo data for user %s", userId)

	groups := []model.Group{
		{Id: uuid.New(), UserId: userId, Name: "Work", Description: "Office tasks", Color: "#ef4444", CreatedAt: time.Now()},
		{Id: uuid.New(), UserId: userId, Name: "Home", Description: "Chores and errands", Color: "#22c55e", CreatedAt: time.Now()},
	}
	for i := range groups {
		var existing model.Group
		if err := db.Where("user_id = ? AND name = ?", userId, groups[i].Name).First(&existing).Error; err == nil {
			color.Yellow("Group '%s' already exists, reusing", groups[i].Name)
			groups[i] = existing
			continue
		}
		if err := db.Create(&groups[i]).Error; err != nil {
			color.Red("Failed to create group '%s': %v", groups[i].Name, err)
		} else {
			color.Green("Created group: %s", groups[i].Name)
		}
	}

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	notes := []model.Note{
		{Id: uuid.New(), UserId: userId, GroupId: &groups[0].Id, Title: "Prepare quarterly report", Description: "Numbers due Friday", Status: "in_progress", Priority: "high", CreatedAt: now},
		{Id: uuid.New(), UserId: userId, GroupId: &groups[0].Id, Title: "Review pull requests", Status: "todo", Priority: "medium", CreatedAt: now},
		{Id: uuid.New(), UserId: userId, GroupId: &groups[1].Id, Title: "Fix the leaking tap", Status: "todo", Priority: "low", CreatedAt: now},
		{Id: uuid.New(), UserId: userId, Title: "Renew passport", Description: "Appointment booked", Status: "done", Priority: "high", CompletedAt: &yesterday, CreatedAt: yesterday},
	}
	for _, n := range notes {
		var existing model.Note
		if err := db.Where("user_id = ? AND title = ?", userId, n.Title).First(&existing).Error; err == nil {
			color.Yellow("Note '%s' already exists, skipping", n.Title)
			continue
		}
		if err := db.Create(&n).Error; err != nil {
			color.Red("Failed to create note '%s': %v", n.Title, err)
			continue
		}
		color.Green("Created note: %s [%s]", n.Title, n.Status)

		if n.Status == "done" {
			archived := model.ArchivedNote{
				Id:             uuid.New(),
				UserId:         userId,
				OriginalNoteId: n.Id,
				Title:          n.Title,
				Description:    n.Description,
				Priority:       n.Priority,
				CompletedAt:    n.CompletedAt,
				ArchivedAt:     yesterday,
				CreatedAt:      yesterday,
			}
			if err := db.Create(&archived).Error; err != nil {
				color.Red("Failed to archive note '%s': %v", n.Title, err)
			} else {
				color.Green("Archived note: %s", n.Title)
			}
		}
	}

	color.Cyan("Seeding completed")
}
