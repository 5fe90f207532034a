// Command seed loads demo ports, vessels, and safety events, plus an initial
// admin account, into the configured database. Existing records are left in
// place.
package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/auth"
	"github.com/marinewatch/maritime-backend/internal/config"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	client, err := db.ConnectMongo(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	database := client.Database(cfg.MongoDatabase)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}
	store := db.NewStore(database)

	seedAdmin(ctx, cfg, store)
	seedPorts(ctx, store)
	seedVessels(ctx, store)
	seedEvents(ctx, store)

	log.Info("seeding complete")
}

func seedAdmin(ctx context.Context, cfg config.Config, store *db.Store) {
	authService := auth.NewService(cfg)
	hash, err := authService.HashPassword("admin12345")
	if err != nil {
		log.WithError(err).Fatal("failed to hash admin password")
	}

	_, err = store.Users.InsertUser(ctx, models.User{
		Username:     "admin",
		Email:        "admin@marinewatch.local",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	switch {
	case err == nil:
		log.Info("created admin user")
	case apperr.IsKind(err, apperr.KindDuplicate):
		log.Info("admin user already exists")
	default:
		log.WithError(err).Fatal("failed to create admin user")
	}
}

func seedPorts(ctx context.Context, store *db.Store) {
	ports := []models.Port{
		{Name: "Port of Mumbai", Location: models.Location{Lat: 18.94, Lon: 72.84}, Country: "India"},
		{Name: "Port of Singapore", Location: models.Location{Lat: 1.26, Lon: 103.83}, Country: "Singapore"},
		{Name: "Port of Dubai", Location: models.Location{Lat: 25.02, Lon: 55.06}, Country: "United Arab Emirates"},
		{Name: "Port of Colombo", Location: models.Location{Lat: 6.94, Lon: 79.84}, Country: "Sri Lanka"},
	}
	for _, port := range ports {
		if _, err := store.Ports.InsertPort(ctx, port); err != nil {
			if apperr.IsKind(err, apperr.KindDuplicate) {
				continue
			}
			log.WithError(err).WithField("port", port.Name).Fatal("failed to seed port")
		}
		log.WithField("port", port.Name).Info("created port")
	}
}

func seedVessels(ctx context.Context, store *db.Store) {
	vessels := []models.Vessel{
		{Name: "Ocean Voyager", Type: "Cargo", LastPosition: models.Location{Lat: 15.0, Lon: 70.0}, Status: models.VesselStatusActive},
		{Name: "Sea Stallion", Type: "Tanker", LastPosition: models.Location{Lat: 10.0, Lon: 65.0}, Status: models.VesselStatusActive},
		{Name: "Gulf Explorer", Type: "Container", LastPosition: models.Location{Lat: 22.0, Lon: 60.0}, Status: models.VesselStatusActive},
		{Name: "Blue Whale", Type: "Oil Tanker", LastPosition: models.Location{Lat: 5.0, Lon: 80.0}, Status: models.VesselStatusActive},
	}
	for _, vessel := range vessels {
		existing, err := store.Vessels.FindVessels(ctx, bson.M{"name": vessel.Name})
		if err != nil {
			log.WithError(err).Fatal("failed to check existing vessels")
		}
		if len(existing) > 0 {
			continue
		}
		if _, err := store.Vessels.InsertVessel(ctx, vessel); err != nil {
			log.WithError(err).WithField("vessel", vessel.Name).Fatal("failed to seed vessel")
		}
		log.WithField("vessel", vessel.Name).Info("created vessel")
	}
}

func seedEvents(ctx context.Context, store *db.Store) {
	events := []models.Event{
		{Type: "Storm", Location: models.Location{Lat: 12.0, Lon: 68.0}, Details: "Category 2 Cyclone developing."},
		{Type: "Risk", Location: models.Location{Lat: 3.0, Lon: 75.0}, Details: "High Piracy Alert zone."},
	}
	for _, event := range events {
		existing, err := store.Events.FindEvents(ctx, bson.M{"type": event.Type, "details": event.Details}, 1)
		if err != nil {
			log.WithError(err).Fatal("failed to check existing events")
		}
		if len(existing) > 0 {
			continue
		}
		if _, err := store.Events.InsertEvent(ctx, event); err != nil {
			log.WithError(err).WithField("type", event.Type).Fatal("failed to seed event")
		}
		log.WithField("type", event.Type).Info("created event")
	}
}
