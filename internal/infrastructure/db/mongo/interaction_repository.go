package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

const collectionInteractions = "interactions"

// InteractionRepository implements ports.InteractionRepository using MongoDB.
type InteractionRepository struct {
	db *mongo.Database
}

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(db *mongo.Database) ports.InteractionRepository {
	return &InteractionRepository{db: db}
}

type interactionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ContactID primitive.ObjectID `bson:"contact"`
	Type      string             `bson:"type"`
	Title     string             `bson:"title"`
	Location  string             `bson:"location,omitempty"`
	Date      time.Time          `bson:"date"`
	Notes     string             `bson:"notes,omitempty"`
	Reminder  *time.Time         `bson:"reminder,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *InteractionRepository) col() *mongo.Collection {
	return r.db.Collection(collectionInteractions)
}

func (r *InteractionRepository) Create(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	doc, err := toInteractionDoc(i)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col().InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert interaction: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *InteractionRepository) FindByID(ctx context.Context, id string) (*domain.Interaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInteractionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc interactionDoc
	if err := r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListByContact returns a contact's interactions, most recent date first.
func (r *InteractionRepository) ListByContact(ctx context.Context, contactID string) ([]*domain.Interaction, error) {
	cid, err := primitive.ObjectIDFromHex(contactID)
	if err != nil {
		return []*domain.Interaction{}, nil
	}
	return r.find(ctx, bson.M{"contact": cid}, -1)
}

// ListAll returns every interaction ordered by date ascending.
func (r *InteractionRepository) ListAll(ctx context.Context) ([]*domain.Interaction, error) {
	return r.find(ctx, bson.M{}, 1)
}

func (r *InteractionRepository) find(ctx context.Context, filter bson.M, dateOrder int) ([]*domain.Interaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: dateOrder}})
	cur, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.Interaction{}
	for cur.Next(ctx) {
		var doc interactionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode interaction: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *InteractionRepository) Update(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	oid, err := primitive.ObjectIDFromHex(i.ID)
	if err != nil {
		return nil, domain.ErrInteractionNotFound
	}
	doc, err := toInteractionDoc(i)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"contact":    doc.ContactID,
		"type":       doc.Type,
		"title":      doc.Title,
		"location":   doc.Location,
		"date":       doc.Date,
		"notes":      doc.Notes,
		"reminder":   doc.Reminder,
		"updated_at": doc.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated interactionDoc
	if err := r.col().FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, fmt.Errorf("update interaction: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInteractionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInteractionNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the interactions collection.
func (r *InteractionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "contact", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})
	return err
}

func toInteractionDoc(i *domain.Interaction) (interactionDoc, error) {
	cid, err := primitive.ObjectIDFromHex(i.ContactID)
	if err != nil {
		return interactionDoc{}, domain.ErrContactNotFound
	}
	return interactionDoc{
		ContactID: cid,
		Type:      string(i.Type),
		Title:     i.Title,
		Location:  i.Location,
		Date:      i.Date.UTC(),
		Notes:     i.Notes,
		Reminder:  i.Reminder,
		CreatedAt: i.CreatedAt.UTC(),
		UpdatedAt: i.UpdatedAt.UTC(),
	}, nil
}

func (d interactionDoc) toDomain() *domain.Interaction {
	return &domain.Interaction{
		ID:        d.ID.Hex(),
		ContactID: d.ContactID.Hex(),
		Type:      domain.InteractionType(d.Type),
		Title:     d.Title,
		Location:  d.Location,
		Date:      d.Date,
		Notes:     d.Notes,
		Reminder:  d.Reminder,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
