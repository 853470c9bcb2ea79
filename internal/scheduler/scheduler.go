// Package scheduler runs the periodic variant pre-generation job.
package scheduler

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/readapt/internal/adaptation"
	"github.com/example/readapt/internal/database"
	"github.com/example/readapt/pkg/models"
	"github.com/go-co-op/gocron"
)

// DefaultPregenHour is the UTC hour the nightly pre-generation job runs
const DefaultPregenHour = 3

// Generator pre-generates variants for one piece of content
type Generator interface {
	PregenerateContent(content *models.Content) (*adaptation.BatchResult, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	generator Generator
}

// New creates a new scheduler instance
func New(generator Generator) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		generator: generator,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	hour := DefaultPregenHour
	if hourStr := os.Getenv("PREGEN_HOUR"); hourStr != "" {
		if h, err := strconv.Atoi(hourStr); err == nil && h >= 0 && h <= 23 {
			hour = h
		}
	}

	// Nightly sweep for content the batch has not covered yet
	s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", hour)).Do(s.pregenerateMissing)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// pregenerateMissing finds library content without a full variant set and
// runs batch pre-generation over it. Per-content failures are logged and
// the sweep continues.
func (s *Scheduler) pregenerateMissing() {
	contentRepo := database.NewContentRepository()

	ids, err := contentRepo.IDsMissingVariants()
	if err != nil {
		log.Printf("Error finding content missing variants: %v", err)
		return
	}
	if len(ids) == 0 {
		return
	}
	log.Printf("Pre-generating variants for %d content entries", len(ids))

	for _, id := range ids {
		content, err := contentRepo.GetByID(id)
		if err != nil {
			log.Printf("Error loading content %d: %v", id, err)
			continue
		}
		if content == nil {
			continue
		}

		result, err := s.generator.PregenerateContent(content)
		if err != nil {
			log.Printf("Error pre-generating content %d: %v", id, err)
			continue
		}
		log.Printf("Content %d (%s): %d variants generated, %d degraded to baseline",
			id, content.Title, result.Generated, result.Degraded)
	}
}

// RunManualSweep forces one pre-generation sweep outside the schedule
func (s *Scheduler) RunManualSweep() {
	s.pregenerateMissing()
}
