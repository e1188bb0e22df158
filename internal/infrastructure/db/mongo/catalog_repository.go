package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

type bandDoc struct {
	ID          int64  `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	ImageURL    string `bson:"image_url"`
}

type BandRepository struct {
	bands       *mongo.Collection
	memberships *mongo.Collection
}

func NewBandRepository(db *mongo.Database) *BandRepository {
	return &BandRepository{
		bands:       db.Collection(collectionBands),
		memberships: db.Collection(collectionUserBands),
	}
}

func (r *BandRepository) List(ctx context.Context) ([]domain.Band, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.bands.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list bands: %w", err)
	}
	return decodeBands(ctx, cur)
}

// ListByMember resolves memberships with a single $lookup pipeline.
func (r *BandRepository) ListByMember(ctx context.Context, userID int64) ([]domain.Band, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionBands,
			"localField":   "band_id",
			"foreignField": "_id",
			"as":           "band",
		}}},
		{{Key: "$unwind", Value: "$band"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$band"}}},
	}

	cur, err := r.memberships.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list bands for user %d: %w", userID, err)
	}
	return decodeBands(ctx, cur)
}

func decodeBands(ctx context.Context, cur *mongo.Cursor) ([]domain.Band, error) {
	var docs []bandDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bands: %w", err)
	}

	bands := make([]domain.Band, 0, len(docs))
	for _, d := range docs {
		bands = append(bands, domain.Band{ID: d.ID, Name: d.Name, Description: d.Description, ImageURL: d.ImageURL})
	}
	return bands, nil
}

type eventDoc struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	ImageURL    string    `bson:"image_url"`
	OrganizerID *int64    `bson:"organizer_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d eventDoc) toDomain() domain.Event {
	return domain.Event{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		OrganizerID: d.OrganizerID,
		CreatedAt:   d.CreatedAt,
	}
}

type EventRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents), seq: newSequence(db)}
}

// List returns events newest first.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]domain.Event, error) {
	return r.find(ctx, bson.M{"organizer_id": organizerID})
}

func (r *EventRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	var docs []eventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]domain.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionEvents)
	if err != nil {
		return nil, err
	}

	doc := eventDoc{
		ID:          id,
		Title:       event.Title,
		Description: event.Description,
		ImageURL:    event.ImageURL,
		OrganizerID: event.OrganizerID,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

type ArtistRepository struct {
	col *mongo.Collection
}

func NewArtistRepository(db *mongo.Database) *ArtistRepository {
	return &ArtistRepository{col: db.Collection(collectionArtists)}
}

func (r *ArtistRepository) List(ctx context.Context) ([]domain.Artist, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}

	var docs []struct {
		ID          int64  `bson:"_id"`
		Name        string `bson:"name"`
		Genre       string `bson:"genre"`
		Description string `bson:"description"`
		ImageURL    string `bson:"image_url"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode artists: %w", err)
	}

	artists := make([]domain.Artist, 0, len(docs))
	for _, d := range docs {
		artists = append(artists, domain.Artist{
			ID:          d.ID,
			Name:        d.Name,
			Genre:       d.Genre,
			Description: d.Description,
			ImageURL:    d.ImageURL,
		})
	}
	return artists, nil
}
