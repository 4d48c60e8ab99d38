package registrationRepo

import (
	"context"
	"fmt"
	"time"

	"opdcare/database"
	"opdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRegistrationRepo implements RegistrationRepository using MongoDB.
type MongoRegistrationRepo struct {
	coll *mongo.Collection
}

// NewMongoRegistrationRepo constructs a new instance of MongoRegistrationRepo.
func NewMongoRegistrationRepo() RegistrationRepository {
	return &MongoRegistrationRepo{
		coll: database.DB().Collection("patients"),
	}
}

func windowFilter(doctorID string, start, end time.Time) bson.M {
	return bson.M{
		"doctor_id": doctorID,
		"registration_date": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
}

func (repo *MongoRegistrationRepo) Create(p *models.Patient) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("error creating registration: %w", err)
	}
	return nil
}

func (repo *MongoRegistrationRepo) GetByID(id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p models.Patient
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching registration %s: %w", id, err)
	}
	return &p, nil
}

func (repo *MongoRegistrationRepo) Update(p *models.Patient) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": p})
	if err != nil {
		return fmt.Errorf("error updating registration %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoRegistrationRepo) CountForDoctorInWindow(doctorID string, start, end time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, windowFilter(doctorID, start, end))
	if err != nil {
		return 0, fmt.Errorf("error counting registrations in window: %w", err)
	}
	return int(count), nil
}

func (repo *MongoRegistrationRepo) MaxTokenInWindow(doctorID string, start, end time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "token_number", Value: -1}})
	var p models.Patient
	err := repo.coll.FindOne(ctx, windowFilter(doctorID, start, end), opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, fmt.Errorf("error finding max token in window: %w", err)
	}
	return p.TokenNumber, nil
}

func (repo *MongoRegistrationRepo) ListForDoctorInWindow(doctorID string, start, end time.Time) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "token_number", Value: 1}})
	cursor, err := repo.coll.Find(ctx, windowFilter(doctorID, start, end), opts)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations in window: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding registrations: %w", err)
	}
	return patients, nil
}

func prescribedFilter() bson.M {
	return bson.M{"prescription": bson.M{"$exists": true, "$ne": nil}}
}

func (repo *MongoRegistrationRepo) ListPrescribed(search string, page, limit int) ([]models.Patient, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := prescribedFilter()
	if search != "" {
		re := primitive.Regex{Pattern: search, Options: "i"}
		filter = bson.M{"$and": bson.A{
			prescribedFilter(),
			bson.M{"$or": bson.A{
				bson.M{"full_name": re},
				bson.M{"mobile_number": re},
			}},
		}}
	}

	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "prescription.created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing prescribed registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, 0, fmt.Errorf("error decoding prescribed registrations: %w", err)
	}

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting prescribed registrations: %w", err)
	}
	return patients, int(total), nil
}

func (repo *MongoRegistrationRepo) CountPrescribed(since *time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := prescribedFilter()
	if since != nil {
		filter = bson.M{"$and": bson.A{
			prescribedFilter(),
			bson.M{"prescription.created_at": bson.M{"$gte": *since}},
		}}
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting prescribed registrations: %w", err)
	}
	return int(count), nil
}

func (repo *MongoRegistrationRepo) ListAll() ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding registrations: %w", err)
	}
	return patients, nil
}
