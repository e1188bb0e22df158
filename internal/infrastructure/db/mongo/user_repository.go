package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

type UserRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), seq: newSequence(db)}
}

type userDoc struct {
	ID             int64     `bson:"_id"`
	Email          string    `bson:"email"`
	Password       string    `bson:"password"`
	Name           string    `bson:"name"`
	Role           string    `bson:"role"`
	Description    string    `bson:"description"`
	Instrument     *string   `bson:"instrument,omitempty"`
	ProfilePicture *string   `bson:"profile_picture,omitempty"`
	Video          *string   `bson:"video,omitempty"`
	Audio          *string   `bson:"audio,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID,
		Email:          d.Email,
		PasswordHash:   d.Password,
		Name:           d.Name,
		Role:           domain.Role(d.Role),
		Description:    d.Description,
		Instrument:     d.Instrument,
		ProfilePicture: d.ProfilePicture,
		Video:          d.Video,
		Audio:          d.Audio,
		CreatedAt:      d.CreatedAt,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// Create relies on the unique email index; a duplicate key maps to
// domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionUsers)
	if err != nil {
		return nil, err
	}

	doc := userDoc{
		ID:             id,
		Email:          user.Email,
		Password:       user.PasswordHash,
		Name:           user.Name,
		Role:           string(user.Role),
		Description:    user.Description,
		Instrument:     user.Instrument,
		ProfilePicture: user.ProfilePicture,
		Video:          user.Video,
		Audio:          user.Audio,
		CreatedAt:      time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}
