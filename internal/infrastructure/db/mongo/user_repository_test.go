package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

func counterResponse(seq int64) bson.D {
	return mtest.CreateSuccessResponse(bson.E{
		Key:   "value",
		Value: bson.D{{Key: "_id", Value: "users"}, {Key: "seq", Value: seq}},
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gigcircle.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int64(7)},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password", Value: "hash"},
			{Key: "name", Value: "Alice"},
			{Key: "role", Value: "musician"},
			{Key: "instrument", Value: "bass"},
			{Key: "created_at", Value: created},
		}))

		got, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "alice@example.com")
		if err != nil {
			t.Fatalf("FindByEmail: %v", err)
		}
		if got.ID != 7 || got.Role != domain.RoleMusician || got.PasswordHash != "hash" {
			t.Fatalf("unexpected user: %+v", got)
		}
		if got.Instrument == nil || *got.Instrument != "bass" {
			t.Fatalf("instrument not decoded: %v", got.Instrument)
		}
		if got.Video != nil {
			t.Fatalf("absent video should stay nil")
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gigcircle.users", mtest.FirstBatch))

		_, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "nobody@example.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		_, err := NewUserRepository(mt.DB).FindByID(context.Background(), 1)
		if err == nil || errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected internal error, got %v", err)
		}
	})
}

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserted", func(mt *mtest.T) {
		mt.AddMockResponses(counterResponse(5), mtest.CreateSuccessResponse())

		got, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{
			Email:        "bob@example.com",
			PasswordHash: "hash",
			Role:         domain.RoleBandMember,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if got.ID != 5 || got.Email != "bob@example.com" || got.CreatedAt.IsZero() {
			t.Fatalf("unexpected user: %+v", got)
		}
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(counterResponse(6), mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: gigcircle.users index: email_1",
		}))

		_, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{Email: "bob@example.com"})
		if !errors.Is(err, domain.ErrUserExists) {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	mt.Run("counter failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "boom"}))

		_, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{Email: "bob@example.com"})
		if err == nil || errors.Is(err, domain.ErrUserExists) {
			t.Fatalf("expected internal error, got %v", err)
		}
	})
}
