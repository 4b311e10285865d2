package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/repositories"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/auth"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     models.RoleType
}

var defaultUsers = []seedUser{
	{"Admin User", "admin@college.edu", "admin123", models.RoleAdmin},
	{"John Doe", "john@student.edu", "student123", models.RoleStudent},
	{"Jane Smith", "jane@student.edu", "student123", models.RoleStudent},
	{"Event Coordinator", "coordinator@college.edu", "event123", models.RoleEventMember},
	{"Tech Club Lead", "techclub@college.edu", "event123", models.RoleEventMember},
}

// Sample events are dated relative to the seeding day so they stay upcoming.
type seedEvent struct {
	title       string
	description string
	category    models.EventCategory
	inDays      int
	time        string
	venue       string
	college     string
	organizer   string
	capacity    int
	image       string
}

var defaultEvents = []seedEvent{
	{
		title:       "TechFest 2025",
		description: "A grand celebration of technology featuring hackathons, tech talks, and innovation showcases. Join us for 3 days of coding, learning, and networking with industry experts.",
		category:    models.CategoryTechnical, inDays: 15, time: "09:00 AM",
		venue: "Main Auditorium", college: "MIT College of Engineering", organizer: "Tech Club", capacity: 200,
		image: "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=800&h=400&fit=crop",
	},
	{
		title:       "Cultural Night 2025",
		description: "Experience the diversity of cultures through music, dance, and drama. A night filled with performances from various cultural groups celebrating unity in diversity.",
		category:    models.CategoryCultural, inDays: 20, time: "06:00 PM",
		venue: "Open Air Theater", college: "Delhi University", organizer: "Cultural Committee", capacity: 300,
		image: "https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?w=800&h=400&fit=crop",
	},
	{
		title:       "Sports Tournament",
		description: "Inter-college sports championship featuring cricket, football, basketball, and athletics. Compete with the best athletes from colleges across the state.",
		category:    models.CategorySports, inDays: 25, time: "07:00 AM",
		venue: "Sports Complex", college: "Mumbai University", organizer: "Sports Council", capacity: 150,
		image: "https://images.unsplash.com/photo-1461896836934-ffe607ba8211?w=800&h=400&fit=crop",
	},
	{
		title:       "AI & ML Workshop",
		description: "Hands-on workshop on Artificial Intelligence and Machine Learning. Learn from industry experts and work on real-world projects using Python and TensorFlow.",
		category:    models.CategoryWorkshop, inDays: 18, time: "10:00 AM",
		venue: "Computer Lab", college: "IIT Bombay", organizer: "AI Research Group", capacity: 100,
		image: "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?w=800&h=400&fit=crop",
	},
	{
		title:       "Startup Conclave",
		description: "Meet successful entrepreneurs, pitch your ideas, and network with potential investors. A platform for aspiring startup founders to showcase their innovations.",
		category:    models.CategoryWorkshop, inDays: 22, time: "11:00 AM",
		venue: "Innovation Hub", college: "IIM Ahmedabad", organizer: "Entrepreneurship Cell", capacity: 120,
		image: "https://images.unsplash.com/photo-1557804506-669a67965ba0?w=800&h=400&fit=crop",
	},
	{
		title:       "Music Fest 2025",
		description: "Live performances by renowned bands and solo artists. From rock to classical, experience a musical extravaganza that celebrates all genres.",
		category:    models.CategoryCultural, inDays: 28, time: "05:00 PM",
		venue: "Stadium", college: "Delhi University", organizer: "Music Club", capacity: 500,
		image: "https://images.unsplash.com/photo-1514525253161-7a46d19cd819?w=800&h=400&fit=crop",
	},
	{
		title:       "Hackathon 2025",
		description: "36-hour coding marathon to solve real-world problems. Form teams, build innovative solutions, and compete for exciting prizes and internship opportunities.",
		category:    models.CategoryTechnical, inDays: 31, time: "08:00 AM",
		venue: "Tech Park", college: "BITS Pilani", organizer: "Coding Club", capacity: 180,
		image: "https://images.unsplash.com/photo-1504384308090-c894fdcc538d?w=800&h=400&fit=crop",
	},
	{
		title:       "Basketball Championship",
		description: "State-level basketball tournament with top teams competing for the championship trophy. Showcase your skills and lead your college to victory.",
		category:    models.CategorySports, inDays: 35, time: "08:00 AM",
		venue: "Indoor Stadium", college: "Mumbai University", organizer: "Basketball Association", capacity: 100,
		image: "https://images.unsplash.com/photo-1546519638-68e109498ffc?w=800&h=400&fit=crop",
	},
}

// CreateDefaultData creates the demo accounts and, when the event table is
// empty, the sample events owned by the first event member. Safe to run on
// every start.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (users/events)...")
	var finalErr error

	var organizerID int64
	for _, su := range defaultUsers {
		user, err := ensureUser(ctx, repos.Users, su)
		if err != nil {
			lgr.Error().Err(err).Str("email", su.email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if organizerID == 0 && user.RoleType == models.RoleEventMember {
			organizerID = user.ID
		}
	}

	count, err := repos.Events.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting events")
		return errors.Join(finalErr, err)
	}
	if count > 0 {
		lgr.Info().Int64("events", count).Msg("Events already present, skipping sample events")
		return finalErr
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	created := 0
	for _, se := range defaultEvents {
		event := &models.Event{
			Title:       se.title,
			Description: se.description,
			Category:    se.category,
			Date:        day.AddDate(0, 0, se.inDays),
			Time:        se.time,
			Venue:       se.venue,
			College:     se.college,
			Organizer:   se.organizer,
			Capacity:    se.capacity,
			Image:       se.image,
			Status:      models.StatusUpcoming,
		}
		if organizerID != 0 {
			id := organizerID
			event.CreatedByID = &id
		}
		if err := repos.Events.Create(ctx, event); err != nil {
			lgr.Error().Err(err).Str("title", se.title).Msg("Error creating sample event")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}

	lgr.Info().Int("users", len(defaultUsers)).Int("events", created).Msg("Default data ready")
	return finalErr
}

func ensureUser(ctx context.Context, users repositories.IUserRepository, su seedUser) (*models.User, error) {
	existing, err := users.GetByEmail(ctx, su.email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(su.password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: su.name, Email: su.email, Password: hash, RoleType: su.role}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return users.GetByEmail(ctx, su.email)
		}
		return nil, err
	}
	return user, nil
}
