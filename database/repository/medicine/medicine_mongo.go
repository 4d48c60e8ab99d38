package medicineRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"opdcare/database"
	"opdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMedicineRepo implements MedicineRepository using MongoDB.
type MongoMedicineRepo struct {
	medicineColl    *mongo.Collection
	transactionColl *mongo.Collection
}

// NewMongoMedicineRepo constructs a new instance of MongoMedicineRepo.
func NewMongoMedicineRepo() MedicineRepository {
	db := database.DB()
	return &MongoMedicineRepo{
		medicineColl:    db.Collection("medicines"),
		transactionColl: db.Collection("inventory_transactions"),
	}
}

// activeFilter matches medicines that are active or predate the is_active
// field (legacy documents stay visible).
func activeFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"is_active": true},
		bson.M{"is_active": bson.M{"$exists": false}},
	}}
}

func (repo *MongoMedicineRepo) Create(m *models.Medicine) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.medicineColl.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("error creating medicine: %w", err)
	}
	return nil
}

func (repo *MongoMedicineRepo) GetByID(id string) (*models.Medicine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var m models.Medicine
	if err := repo.medicineColl.FindOne(ctx, bson.M{"id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching medicine %s: %w", id, err)
	}
	return &m, nil
}

func (repo *MongoMedicineRepo) GetActiveByName(name string) (*models.Medicine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"name":      primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
		"is_active": true,
	}
	var m models.Medicine
	if err := repo.medicineColl.FindOne(ctx, filter).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching medicine %q: %w", name, err)
	}
	return &m, nil
}

func (repo *MongoMedicineRepo) Update(m *models.Medicine) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	m.UpdatedAt = time.Now()
	res, err := repo.medicineColl.UpdateOne(ctx, bson.M{"id": m.ID}, bson.M{"$set": m})
	if err != nil {
		return fmt.Errorf("error updating medicine %s: %w", m.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var allowedSortFields = map[string]string{
	"name":          "name",
	"price":         "price",
	"stockQuantity": "stock_quantity",
	"expiryDate":    "expiry_date",
	"createdAt":     "created_at",
	"category":      "category",
}

func (repo *MongoMedicineRepo) List(f Filter) ([]models.Medicine, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conditions := bson.A{activeFilter()}
	if f.Category != "" {
		conditions = append(conditions, bson.M{"category": primitive.Regex{Pattern: f.Category, Options: "i"}})
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: f.Search, Options: "i"}
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"name": re},
			bson.M{"generic_name": re},
			bson.M{"brand_name": re},
		}})
	}
	now := time.Now()
	if f.LowStock {
		conditions = append(conditions, bson.M{"$expr": bson.M{"$lte": bson.A{
			bson.M{"$ifNull": bson.A{"$stock_quantity", 0}},
			bson.M{"$ifNull": bson.A{"$min_stock_level", 10}},
		}}})
	}
	if f.ExpiringSoon {
		conditions = append(conditions, bson.M{"expiry_date": bson.M{
			"$gte": now,
			"$lte": now.AddDate(0, 0, 30),
		}})
	}
	if f.Expired {
		conditions = append(conditions, bson.M{"expiry_date": bson.M{"$lt": now}})
	}
	filter := bson.M{"$and": conditions}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	sortField, ok := allowedSortFields[f.SortBy]
	if !ok {
		sortField = "name"
	}
	sortDir := 1
	if f.SortDesc {
		sortDir = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := repo.medicineColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing medicines: %w", err)
	}
	defer cursor.Close(ctx)

	var medicines []models.Medicine
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, 0, fmt.Errorf("error decoding medicines: %w", err)
	}

	total, err := repo.medicineColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting medicines: %w", err)
	}
	return medicines, int(total), nil
}

func (repo *MongoMedicineRepo) ListActive() ([]models.Medicine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.medicineColl.Find(ctx, activeFilter())
	if err != nil {
		return nil, fmt.Errorf("error listing active medicines: %w", err)
	}
	defer cursor.Close(ctx)

	var medicines []models.Medicine
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, fmt.Errorf("error decoding medicines: %w", err)
	}
	return medicines, nil
}

func (repo *MongoMedicineRepo) Suggest(query string, limit int) ([]models.Medicine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}
	re := primitive.Regex{Pattern: query, Options: "i"}
	filter := bson.M{"$and": bson.A{
		bson.M{"$or": bson.A{
			bson.M{"name": re},
			bson.M{"generic_name": re},
			bson.M{"brand_name": re},
		}},
		activeFilter(),
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"id": 1, "name": 1, "generic_name": 1, "brand_name": 1, "form": 1, "strength": 1,
		})
	cursor, err := repo.medicineColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error searching medicines: %w", err)
	}
	defer cursor.Close(ctx)

	var medicines []models.Medicine
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, fmt.Errorf("error decoding medicine suggestions: %w", err)
	}
	return medicines, nil
}

func (repo *MongoMedicineRepo) SetStock(m *models.Medicine, newStock int, tx *models.InventoryTransaction) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"stock_quantity": newStock,
		"updated_at":     time.Now(),
	}}
	res, err := repo.medicineColl.UpdateOne(ctx, bson.M{"id": m.ID}, update)
	if err != nil {
		return fmt.Errorf("error updating stock for medicine %s: %w", m.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	m.StockQuantity = newStock

	if _, err := repo.transactionColl.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("error recording inventory transaction: %w", err)
	}
	return nil
}

func (repo *MongoMedicineRepo) ListTransactions(medicineID string, page, limit int) ([]models.InventoryTransaction, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if medicineID != "" {
		filter["medicine_id"] = medicineID
	}
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := repo.transactionColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing inventory transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []models.InventoryTransaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, 0, fmt.Errorf("error decoding inventory transactions: %w", err)
	}

	total, err := repo.transactionColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting inventory transactions: %w", err)
	}
	return txs, int(total), nil
}
