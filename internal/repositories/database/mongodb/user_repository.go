package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamhive/accounts-backend/internal/apperrors"
	"github.com/streamhive/accounts-backend/internal/core/domain"
	portsrepo "github.com/streamhive/accounts-backend/internal/core/ports/repositories"
	"github.com/streamhive/accounts-backend/internal/models"
)

const usersCollection = "users"

// MongoUserRepository persists users in a MongoDB collection. All writes
// target a single document; the collection's unique indexes enforce
// username and email uniqueness.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a repository bound to the users collection.
func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

var _ portsrepo.UserRepositoryFacade = (*MongoUserRepository)(nil)

// EnsureIndexes creates the unique indexes on username and email.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to ensure user indexes: %w", err)
	}
	return nil
}

// Helper to convert domain.User to models.User.
func toModelUser(d domain.User) (models.User, error) {
	m := models.User{
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		AvatarURL:    d.AvatarURL,
		CoverImage:   d.CoverImage,
		RefreshToken: d.RefreshToken,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(d.UserID)
		if err != nil {
			return models.User{}, fmt.Errorf("invalid user ID %q: %w", d.UserID, err)
		}
		m.ID = oid
	}
	for _, v := range d.WatchHistory {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return models.User{}, fmt.Errorf("invalid watch history entry %q: %w", v, err)
		}
		m.WatchHistory = append(m.WatchHistory, oid)
	}
	return m, nil
}

// Helper to convert models.User to domain.User.
func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.ID.Hex(),
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		AvatarURL:    m.AvatarURL,
		CoverImage:   m.CoverImage,
		RefreshToken: m.RefreshToken,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, oid := range m.WatchHistory {
		d.WatchHistory = append(d.WatchHistory, oid.Hex())
	}
	return d
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	modelUser, err := toModelUser(user)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	modelUser.ID = primitive.NewObjectID()
	modelUser.CreatedAt = now
	modelUser.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, modelUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Wrap(apperrors.ErrConflict, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, err)
	}

	var modelUser models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&modelUser); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *MongoUserRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	var terms bson.A
	if username != "" {
		terms = append(terms, bson.M{"username": username})
	}
	if email != "" {
		terms = append(terms, bson.M{"email": email})
	}
	if len(terms) == 0 {
		return nil, apperrors.ErrNotFound
	}

	var modelUser models.User
	if err := r.coll.FindOne(ctx, bson.M{"$or": terms}).Decode(&modelUser); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username or email: %w", err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *MongoUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshToken string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrNotFound, err)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"refreshToken": refreshToken, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrNotFound, err)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$unset": bson.M{"refreshToken": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrNotFound, err)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// findOneAndUpdate patches the given fields and returns the updated document.
func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, userID string, set bson.M) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, err)
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var modelUser models.User
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&modelUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Wrap(apperrors.ErrConflict, err)
		}
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *MongoUserRepository) UpdateAccountDetails(ctx context.Context, userID string, username, fullName string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"username": username, "fullName": fullName})
}

func (r *MongoUserRepository) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"avatar": avatarURL})
}

func (r *MongoUserRepository) UpdateCoverImage(ctx context.Context, userID string, coverImageURL string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"coverImage": coverImageURL})
}
