package staffRepo

import (
	"context"
	"fmt"
	"time"

	"opdcare/database"
	"opdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStaffRepo implements StaffRepository using MongoDB, with a Redis
// read-through cache for doctor profiles (see cache.go).
type MongoStaffRepo struct {
	coll  *mongo.Collection
	cache *profileCache
}

// NewMongoStaffRepo constructs a new instance of MongoStaffRepo.
func NewMongoStaffRepo() StaffRepository {
	return &MongoStaffRepo{
		coll:  database.DB().Collection("staff"),
		cache: newProfileCache(),
	}
}

func (repo *MongoStaffRepo) Create(s *models.Staff) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("error creating staff: %w", err)
	}
	return nil
}

func (repo *MongoStaffRepo) findOne(filter bson.M) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var s models.Staff
	if err := repo.coll.FindOne(ctx, filter).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching staff: %w", err)
	}
	return &s, nil
}

func (repo *MongoStaffRepo) GetByID(id string) (*models.Staff, error) {
	return repo.findOne(bson.M{"id": id})
}

func (repo *MongoStaffRepo) GetByEmail(email string) (*models.Staff, error) {
	return repo.findOne(bson.M{"email": email})
}

func (repo *MongoStaffRepo) GetByEmailAndRole(email, role string) (*models.Staff, error) {
	return repo.findOne(bson.M{"email": email, "role": role})
}

func (repo *MongoStaffRepo) GetDoctorByID(id string) (*models.Staff, error) {
	if cached := repo.cache.get(id); cached != nil {
		return cached, nil
	}
	s, err := repo.findOne(bson.M{"id": id})
	if err != nil {
		return nil, err
	}
	if s.Role != models.RoleDoctor {
		return nil, ErrNotFound
	}
	repo.cache.put(s)
	return s, nil
}

func (repo *MongoStaffRepo) Update(s *models.Staff) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.UpdatedAt = time.Now()
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": s.ID}, bson.M{"$set": s})
	if err != nil {
		return fmt.Errorf("error updating staff %s: %w", s.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	repo.cache.invalidate(s.ID)
	return nil
}

func (repo *MongoStaffRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting staff %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	repo.cache.invalidate(id)
	return nil
}

func (repo *MongoStaffRepo) ListByRoles(roles []string) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"role": bson.M{"$in": roles}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("error decoding staff list: %w", err)
	}
	return staff, nil
}

func (repo *MongoStaffRepo) ListActiveDoctors() ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"role": models.RoleDoctor, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Staff
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("error decoding doctor list: %w", err)
	}
	return doctors, nil
}
