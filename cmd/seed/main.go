// Command seed loads demo data into a UniMitr database: staff and student
// accounts, counsellors with their slots, leaderboard rows and approved events.
// Rows that already exist are left alone so the command can be re-run.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"unimitr-backend/internal/config"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository/postgres"
	"unimitr-backend/internal/security"
	"unimitr-backend/internal/service"
	"unimitr-backend/internal/workflow"
)

type seedUser struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Staff     bool   `yaml:"staff"`
}

type seedCounsellor struct {
	Name           string   `yaml:"name"`
	Specialization string   `yaml:"specialization"`
	Bio            string   `yaml:"bio"`
	Rating         float64  `yaml:"rating"`
	Slots          []string `yaml:"slots"`
}

type seedEntry struct {
	Name         string `yaml:"name"`
	University   string `yaml:"university"`
	Points       int    `yaml:"points"`
	Emoji        string `yaml:"emoji"`
	Category     string `yaml:"category"`
	IsUniversity bool   `yaml:"is_university_entry"`
}

type seedEvent struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Time        string `yaml:"time"`
	Location    string `yaml:"location"`
	Category    string `yaml:"category"`
	Approved    bool   `yaml:"approved"`
}

type SeedData struct {
	Users       []seedUser       `yaml:"users"`
	Counsellors []seedCounsellor `yaml:"counsellors"`
	Leaderboard []seedEntry      `yaml:"leaderboard"`
	Events      []seedEvent      `yaml:"events"`
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	dataPath := flag.String("data", "config/seed.yaml", "Path to seed data file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data, err := readSeedFile(*dataPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Connected to database", "host", cfg.Database.Host, "database", cfg.Database.Database)

	store := postgres.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	s := &seeder{
		store:  store,
		auth:   service.NewAuthService(store.Users, store.Profiles, security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())),
		events: workflow.NewEngine(workflow.Events, store.Events),
	}
	if err := s.run(ctx, data); err != nil {
		log.Fatalf("Failed to populate data: %v", err)
	}
	logger.Info("Seed data populated")
}

func readSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &data, nil
}

type seeder struct {
	store  *postgres.Store
	auth   service.AuthService
	events *workflow.Engine[*domain.Event, *domain.EventRegistration]
}

func (s *seeder) run(ctx context.Context, data *SeedData) error {
	for _, u := range data.Users {
		if err := s.user(ctx, u); err != nil {
			return fmt.Errorf("user %s: %w", u.Username, err)
		}
	}
	if err := s.counsellors(ctx, data.Counsellors); err != nil {
		return err
	}
	if err := s.leaderboard(ctx, data.Leaderboard); err != nil {
		return err
	}
	return s.publishEvents(ctx, data.Events)
}

func (s *seeder) user(ctx context.Context, u seedUser) error {
	if u.Staff {
		return s.auth.EnsureAdmin(ctx, u.Username, u.Email, u.Password)
	}
	if _, err := s.store.Users.GetByUsername(ctx, u.Username); err == nil {
		logger.Debug("User exists, skipping", "username", u.Username)
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	user, err := s.auth.Signup(ctx, service.SignupRequest{
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
	if err != nil {
		return err
	}
	logger.Info("User created", "username", u.Username, "userID", user.ID)
	return nil
}

func (s *seeder) counsellors(ctx context.Context, seeds []seedCounsellor) error {
	existing, err := s.store.Counsellors.List(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[strings.ToLower(c.Name)] = true
	}

	for _, sc := range seeds {
		if known[strings.ToLower(sc.Name)] {
			continue
		}
		c := &domain.Counsellor{
			Name:           sc.Name,
			Specialization: sc.Specialization,
			Bio:            sc.Bio,
			Rating:         sc.Rating,
			IsAvailable:    true,
		}
		if c.Rating == 0 {
			c.Rating = 4.5
		}
		c.Avatar = c.Initials()
		if err := s.store.Counsellors.Create(ctx, c); err != nil {
			return fmt.Errorf("counsellor %s: %w", sc.Name, err)
		}
		for _, slot := range sc.Slots {
			if err := s.store.Counsellors.AddSlot(ctx, &domain.CounsellorSlot{
				CounsellorID: c.ID,
				TimeSlot:     slot,
				IsAvailable:  true,
			}); err != nil {
				return fmt.Errorf("counsellor %s slot %s: %w", sc.Name, slot, err)
			}
		}
		logger.Info("Counsellor created", "name", c.Name, "id", c.ID, "slots", len(sc.Slots))
	}
	return nil
}

func (s *seeder) leaderboard(ctx context.Context, seeds []seedEntry) error {
	existing, err := s.store.Leaderboard.List(ctx, domain.LeaderboardAll)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		known[string(e.Category)+"/"+e.Name] = true
	}

	for _, se := range seeds {
		entry := &domain.LeaderboardEntry{
			Name:              se.Name,
			University:        se.University,
			Points:            se.Points,
			Emoji:             se.Emoji,
			Category:          domain.LeaderboardCategory(se.Category),
			IsUniversityEntry: se.IsUniversity,
		}
		if entry.Category == "" {
			entry.Category = domain.LeaderboardGlobal
		}
		if entry.Emoji == "" {
			entry.Emoji = "⭐"
		}
		if known[string(entry.Category)+"/"+entry.Name] {
			continue
		}
		if err := s.store.Leaderboard.Create(ctx, entry); err != nil {
			return fmt.Errorf("leaderboard %s: %w", se.Name, err)
		}
	}
	return nil
}

func (s *seeder) publishEvents(ctx context.Context, seeds []seedEvent) error {
	existing, err := s.events.ListResources(ctx, "")
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		known[e.Title+"/"+e.Date] = true
	}

	for _, se := range seeds {
		if known[se.Title+"/"+se.Date] {
			continue
		}
		ev := &domain.Event{
			Title:       se.Title,
			Description: se.Description,
			Date:        se.Date,
			Time:        se.Time,
			Location:    se.Location,
			Category:    se.Category,
		}
		if err := s.events.CreateResource(ctx, nil, ev); err != nil {
			return fmt.Errorf("event %s: %w", se.Title, err)
		}
		if se.Approved {
			if _, err := s.events.TransitionResource(ctx, ev.ID, domain.TransitionApprove); err != nil {
				return fmt.Errorf("approve event %s: %w", se.Title, err)
			}
		}
		logger.Info("Event created", "title", ev.Title, "id", ev.ID, "approved", se.Approved)
	}
	return nil
}
