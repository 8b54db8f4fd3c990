package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/contactsite/backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// contactCollection is the MongoDB collection holding contact messages.
const contactCollection = "contacts"

// contactDocument is the BSON shape of a stored contact message.
type contactDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Email   string             `bson:"email"`
	Message string             `bson:"message"`
	Date    time.Time          `bson:"date"`
}

func (d *contactDocument) toModel() *model.ContactMessage {
	return &model.ContactMessage{
		ID:      d.ID.Hex(),
		Name:    d.Name,
		Email:   d.Email,
		Message: d.Message,
		Date:    d.Date.UTC(),
	}
}

// MongoContactRepository is the MongoDB implementation of ContactRepository.
type MongoContactRepository struct {
	coll *mongo.Collection
}

// NewMongoContactRepository creates a MongoContactRepository over the given collection.
func NewMongoContactRepository(coll *mongo.Collection) *MongoContactRepository {
	return &MongoContactRepository{coll: coll}
}

var _ ContactRepository = (*MongoContactRepository)(nil)

// Create inserts a document; the ObjectID generated here becomes msg.ID.
// BSON dates have millisecond precision, so msg.Date is truncated to match.
func (r *MongoContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	doc := contactDocument{
		ID:      primitive.NewObjectID(),
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
		Date:    msg.Date.Truncate(time.Millisecond),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	msg.ID = doc.ID.Hex()
	msg.Date = doc.Date
	return nil
}

// List returns all documents sorted by date descending.
func (r *MongoContactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []contactDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]*model.ContactMessage, 0, len(docs))
	for i := range docs {
		messages = append(messages, docs[i].toModel())
	}
	return messages, nil
}

// Delete removes the document with the given hex ObjectID.
func (r *MongoContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Ping checks the primary is reachable.
func (r *MongoContactRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the date index used by List.
func (r *MongoContactRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("repository: create date index: %w", err)
	}
	return nil
}

// Drop removes the whole collection.
func (r *MongoContactRepository) Drop(ctx context.Context) error {
	return r.coll.Drop(ctx)
}
