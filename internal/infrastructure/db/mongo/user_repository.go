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

const collectionUsers = "users"

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers), now: time.Now}
}

type otpDoc struct {
	Code      string    `bson:"code,omitempty"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
	Used      bool      `bson:"used"`
}

type addressDoc struct {
	Street     string `bson:"street,omitempty"`
	City       string `bson:"city,omitempty"`
	State      string `bson:"state,omitempty"`
	Country    string `bson:"country,omitempty"`
	PostalCode string `bson:"postal_code,omitempty"`
}

type socialLinksDoc struct {
	LinkedIn  string `bson:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

type preferencesDoc struct {
	Language      string `bson:"language"`
	Notifications bool   `bson:"notifications"`
	Theme         string `bson:"theme"`
}

type profileDoc struct {
	Name           string         `bson:"name"`
	ProfilePicture string         `bson:"profile_picture"`
	PhoneNumber    string         `bson:"phone_number,omitempty"`
	DateOfBirth    *time.Time     `bson:"date_of_birth,omitempty"`
	Gender         string         `bson:"gender,omitempty"`
	Address        addressDoc     `bson:"address"`
	Company        string         `bson:"company,omitempty"`
	JobTitle       string         `bson:"job_title,omitempty"`
	Bio            string         `bson:"bio,omitempty"`
	SocialLinks    socialLinksDoc `bson:"social_links"`
	Preferences    preferencesDoc `bson:"preferences"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	OTP          otpDoc             `bson:"otp"`
	Profile      profileDoc         `bson:",inline"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		OTP:          toOTPDoc(user.OTP),
		Profile:      toProfileDoc(user.Profile),
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// SaveOTP replaces the stored challenge wholesale.
func (r *UserRepository) SaveOTP(ctx context.Context, userID string, otp domain.OTPChallenge) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"otp":        toOTPDoc(otp),
			"updated_at": r.now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeOTP sets the new password hash and marks the challenge used in a
// single update whose filter re-checks code, used flag and expiry.
func (r *UserRepository) ConsumeOTP(ctx context.Context, userID, code, passwordHash string, now time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidOTP
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":            oid,
		"otp.code":       code,
		"otp.used":       false,
		"otp.expires_at": bson.M{"$gt": now.UTC()},
	}
	update := bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"otp.used":      true,
			"updated_at":    now.UTC(),
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidOTP
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, profile domain.Profile) (*domain.User, error) {
	return r.updateAndFetch(ctx, userID, bson.M{"$set": bson.M{
		"name":            profile.Name,
		"profile_picture": profile.ProfilePicture,
		"phone_number":    profile.PhoneNumber,
		"date_of_birth":   profile.DateOfBirth,
		"gender":          profile.Gender,
		"address":         toAddressDoc(profile.Address),
		"company":         profile.Company,
		"job_title":       profile.JobTitle,
		"bio":             profile.Bio,
		"social_links":    socialLinksDoc(profile.SocialLinks),
		"preferences":     preferencesDoc(profile.Preferences),
		"updated_at":      r.now().UTC(),
	}})
}

func (r *UserRepository) SetProfilePicture(ctx context.Context, userID, url string) (*domain.User, error) {
	return r.updateAndFetch(ctx, userID, bson.M{"$set": bson.M{
		"profile_picture": url,
		"updated_at":      r.now().UTC(),
	}})
}

func (r *UserRepository) updateAndFetch(ctx context.Context, userID string, update bson.M) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUser
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique email index the signup conflict check
// relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toOTPDoc(o domain.OTPChallenge) otpDoc {
	return otpDoc{Code: o.Code, ExpiresAt: o.ExpiresAt.UTC(), Used: o.Used}
}

func toAddressDoc(a domain.Address) addressDoc {
	return addressDoc{Street: a.Street, City: a.City, State: a.State, Country: a.Country, PostalCode: a.PostalCode}
}

func toProfileDoc(p domain.Profile) profileDoc {
	return profileDoc{
		Name:           p.Name,
		ProfilePicture: p.ProfilePicture,
		PhoneNumber:    p.PhoneNumber,
		DateOfBirth:    p.DateOfBirth,
		Gender:         p.Gender,
		Address:        toAddressDoc(p.Address),
		Company:        p.Company,
		JobTitle:       p.JobTitle,
		Bio:            p.Bio,
		SocialLinks:    socialLinksDoc(p.SocialLinks),
		Preferences:    preferencesDoc(p.Preferences),
	}
}

func (mu mongoUser) toDomain() *domain.User {
	p := mu.Profile
	return &domain.User{
		ID:           mu.ID.Hex(),
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		OTP: domain.OTPChallenge{
			Code:      mu.OTP.Code,
			ExpiresAt: mu.OTP.ExpiresAt,
			Used:      mu.OTP.Used,
		},
		Profile: domain.Profile{
			Name:           p.Name,
			ProfilePicture: p.ProfilePicture,
			PhoneNumber:    p.PhoneNumber,
			DateOfBirth:    p.DateOfBirth,
			Gender:         p.Gender,
			Address: domain.Address{
				Street:     p.Address.Street,
				City:       p.Address.City,
				State:      p.Address.State,
				Country:    p.Address.Country,
				PostalCode: p.Address.PostalCode,
			},
			Company:     p.Company,
			JobTitle:    p.JobTitle,
			Bio:         p.Bio,
			SocialLinks: domain.SocialLinks(p.SocialLinks),
			Preferences: domain.Preferences(p.Preferences),
		},
		CreatedAt: mu.CreatedAt,
		UpdatedAt: mu.UpdatedAt,
	}
}
