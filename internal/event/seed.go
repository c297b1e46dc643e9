package event

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// SeedSampleEvents inserts the starter campus events on a fresh
// database so the calendar is never empty on first boot. No-op when
// any event already exists.
func SeedSampleEvents(db *gorm.DB) error {
	repo := NewRepository(db)

	count, err := repo.CountEvents()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	at := func(hour, min int) *time.Time {
		t := time.Date(0, 1, 1, hour, min, 0, 0, time.UTC)
		return &t
	}
	date := func(value string) time.Time {
		d, _ := time.Parse("2006-01-02", value)
		return d
	}

	samples := []Event{
		{
			Title:         "Annual Tech Symposium 2024",
			Description:   "Join us for the biggest tech event of the year featuring keynote speakers, workshops, and networking opportunities. Learn about the latest trends in AI, blockchain, and cloud computing.",
			Category:      CategoryTechnical,
			EventDate:     date("2024-12-20"),
			EventTime:     at(9, 0),
			Venue:         "Main Auditorium, Building A",
			Capacity:      500,
			Status:        StatusUpcoming,
			OrganizerID:   1,
			OrganizerName: "Tech Club",
		},
		{
			Title:         "Cultural Fest - Harmony 2024",
			Description:   "Experience the vibrant cultural diversity of our campus. Music, dance, art exhibitions, and food stalls from around the world.",
			Category:      CategoryCultural,
			EventDate:     date("2024-12-25"),
			EventTime:     at(10, 0),
			Venue:         "Campus Ground",
			Capacity:      2000,
			Status:        StatusUpcoming,
			OrganizerID:   2,
			OrganizerName: "Cultural Committee",
		},
		{
			Title:         "Machine Learning Workshop",
			Description:   "Hands-on workshop on machine learning fundamentals. Learn to build your first ML model using Python and scikit-learn.",
			Category:      CategoryWorkshop,
			EventDate:     date("2024-12-18"),
			EventTime:     at(14, 0),
			Venue:         "Computer Lab 301",
			Capacity:      50,
			Status:        StatusUpcoming,
			OrganizerID:   1,
			OrganizerName: "AI Club",
		},
		{
			Title:         "Inter-College Basketball Tournament",
			Description:   "Annual basketball championship featuring teams from 16 colleges. Come support your team!",
			Category:      CategorySports,
			EventDate:     date("2024-12-22"),
			EventTime:     at(8, 0),
			Venue:         "Sports Complex",
			Capacity:      1000,
			Status:        StatusUpcoming,
			OrganizerID:   3,
			OrganizerName: "Sports Committee",
		},
	}

	for i := range samples {
		if err := repo.CreateEvent(&samples[i]); err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d sample events", len(samples))
	return nil
}
