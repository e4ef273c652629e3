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
)

const collectionContacts = "contacts"

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionContacts)}
}

type noteDoc struct {
	Text string    `bson:"text"`
	Date time.Time `bson:"date"`
}

type socialLinkDoc struct {
	Platform string `bson:"platform"`
	URL      string `bson:"url"`
}

type contactDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user"`
	Name        string             `bson:"name"`
	Company     string             `bson:"company,omitempty"`
	JobTitle    string             `bson:"job_title,omitempty"`
	Emails      []string           `bson:"emails"`
	Phones      []string           `bson:"phones"`
	Address     string             `bson:"address,omitempty"`
	Notes       []noteDoc          `bson:"notes"`
	SocialLinks []socialLinkDoc    `bson:"social_links"`
	Birthday    *time.Time         `bson:"birthday,omitempty"`
	Anniversary *time.Time         `bson:"anniversary,omitempty"`
	Category    string             `bson:"category,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// ownerFilter scopes a lookup to one user's contact. ok is false when either
// id is not a valid ObjectID, which can never match.
func ownerFilter(userID, id string) (bson.M, bool) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "user": uid}, true
}

// Create inserts a new contact document.
func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	uid, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toContactDoc(c)
	doc.UserID = uid

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// ListByUser returns the user's contacts, newest first.
func (r *ContactRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Contact, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Contact{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.Contact{}
	for cur.Next(ctx) {
		var doc contactDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode contact: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// FindByID retrieves one of the user's contacts.
func (r *ContactRepository) FindByID(ctx context.Context, userID, id string) (*domain.Contact, error) {
	filter, ok := ownerFilter(userID, id)
	if !ok {
		return nil, domain.ErrContactNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contactDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Update replaces the writable fields of a contact the user owns.
func (r *ContactRepository) Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	filter, ok := ownerFilter(c.UserID, c.ID)
	if !ok {
		return nil, domain.ErrContactNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toContactDoc(c)
	update := bson.M{"$set": bson.M{
		"name":         doc.Name,
		"company":      doc.Company,
		"job_title":    doc.JobTitle,
		"emails":       doc.Emails,
		"phones":       doc.Phones,
		"address":      doc.Address,
		"notes":        doc.Notes,
		"social_links": doc.SocialLinks,
		"birthday":     doc.Birthday,
		"anniversary":  doc.Anniversary,
		"category":     doc.Category,
		"updated_at":   doc.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated contactDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *ContactRepository) Delete(ctx context.Context, userID, id string) error {
	filter, ok := ownerFilter(userID, id)
	if !ok {
		return domain.ErrContactNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the contacts collection.
func (r *ContactRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func toContactDoc(c *domain.Contact) contactDoc {
	doc := contactDoc{
		Name:        c.Name,
		Company:     c.Company,
		JobTitle:    c.JobTitle,
		Emails:      c.Emails,
		Phones:      c.Phones,
		Address:     c.Address,
		Notes:       make([]noteDoc, 0, len(c.Notes)),
		SocialLinks: make([]socialLinkDoc, 0, len(c.SocialLinks)),
		Birthday:    c.Birthday,
		Anniversary: c.Anniversary,
		Category:    c.Category,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
	for _, n := range c.Notes {
		doc.Notes = append(doc.Notes, noteDoc{Text: n.Text, Date: n.Date.UTC()})
	}
	for _, l := range c.SocialLinks {
		doc.SocialLinks = append(doc.SocialLinks, socialLinkDoc(l))
	}
	return doc
}

func (d contactDoc) toDomain() *domain.Contact {
	c := &domain.Contact{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Name:        d.Name,
		Company:     d.Company,
		JobTitle:    d.JobTitle,
		Emails:      nonNilStrings(d.Emails),
		Phones:      nonNilStrings(d.Phones),
		Address:     d.Address,
		Notes:       make([]domain.Note, 0, len(d.Notes)),
		SocialLinks: make([]domain.SocialLink, 0, len(d.SocialLinks)),
		Birthday:    d.Birthday,
		Anniversary: d.Anniversary,
		Category:    d.Category,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for _, n := range d.Notes {
		c.Notes = append(c.Notes, domain.Note{Text: n.Text, Date: n.Date})
	}
	for _, l := range d.SocialLinks {
		c.SocialLinks = append(c.SocialLinks, domain.SocialLink(l))
	}
	return c
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
