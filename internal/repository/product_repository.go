package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory-backend/internal/models"
)

// ErrNotFound is returned by mutating repository calls when the target
// document does not exist or is not owned by the caller. The two cases are
// deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ErrInvalidID is returned when a caller-supplied id is not a well-formed
// object id.
var ErrInvalidID = errors.New("invalid id")

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{collection: collection}
}

// Create inserts a new product owned by product.CreatedBy.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// FindOwned returns the product with the given id owned by ownerID, or
// (nil, nil) when it does not exist or belongs to someone else.
func (r *ProductRepository) FindOwned(ctx context.Context, id, ownerID string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	filter := bson.M{"_id": objID, "created_by": ownerID}
	if err := r.collection.FindOne(ctx, filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU looks up a product by SKU within one owner's catalog. Used to
// enforce per-owner SKU uniqueness on create.
func (r *ProductRepository) FindBySKU(ctx context.Context, sku, ownerID string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.Product
	filter := bson.M{"sku": sku, "created_by": ownerID}
	if err := r.collection.FindOne(ctx, filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// FindAll lists an owner's products with pagination, category filter and
// sorting. The total count runs in parallel with the page query.
func (r *ProductRepository) FindAll(ctx context.Context, ownerID string, page, pageSize int, category, sortBy, sortOrder string) ([]*models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"created_by": ownerID}
	if category != "" {
		filter["category"] = category
	}

	totalCh := make(chan int64, 1)
	errCh := make(chan error, 1)
	go func() {
		total, err := r.collection.CountDocuments(ctx, filter)
		if err != nil {
			errCh <- err
			return
		}
		totalCh <- total
	}()

	findOptions := options.Find()
	if page > 0 && pageSize > 0 {
		findOptions.SetSkip(int64((page - 1) * pageSize))
		findOptions.SetLimit(int64(pageSize))
	} else {
		findOptions.SetLimit(100)
	}

	sortField := "created_at"
	sortDir := -1
	if sortBy != "" {
		sortField = sortBy
	}
	if sortOrder == "asc" {
		sortDir = 1
	}
	findOptions.SetSort(bson.D{{Key: sortField, Value: sortDir}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	var total int64
	select {
	case total = <-totalCh:
	case err := <-errCh:
		return products, 0, err
	case <-ctx.Done():
		return products, 0, ctx.Err()
	}
	return products, total, nil
}

// Update applies an owner-scoped partial update.
func (r *ProductRepository) Update(ctx context.Context, id, ownerID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update["updated_at"] = time.Now().UTC()
	filter := bson.M{"_id": objID, "created_by": ownerID}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product. Hard delete: historical orders keep their own
// name/price snapshots and are unaffected.
func (r *ProductRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID, "created_by": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock atomically decrements quantity by qty, but only while the
// current quantity covers it. The filter and the $inc run as one document
// operation, so concurrent placements cannot drive quantity negative.
// Returns (nil, nil) when no document matched, i.e. the product is missing,
// not owned, or short on stock.
func (r *ProductRepository) DecrementStock(ctx context.Context, id, ownerID string, qty int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	filter := bson.M{
		"_id":        objID,
		"created_by": ownerID,
		"quantity":   bson.M{"$gte": qty},
	}
	update := bson.M{
		"$inc": bson.M{"quantity": -qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// CompensateStock reverses a previous decrement after a mid-order failure.
// Unconditional increment; not owner-scoped because the caller already
// proved ownership when it decremented.
func (r *ProductRepository) CompensateStock(ctx context.Context, id string, qty int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update := bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	return err
}

// CountLowStock counts an owner's products under their reorder level.
func (r *ProductRepository) CountLowStock(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"created_by": ownerID,
		"$expr":      bson.M{"$lt": bson.A{"$quantity", "$reorder_level"}},
	}
	return r.collection.CountDocuments(ctx, filter)
}
