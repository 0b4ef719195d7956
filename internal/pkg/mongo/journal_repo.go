package mongo

import (
	"Trellis/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type JournalRepo interface {
	InsertLogin(ctx context.Context, entry *model.LoginJournal) error
}

type JournalRepoImpl struct {
	collection *mongo.Collection
}

func NewJournalRepo(dbs *Databases) JournalRepo {
	return &JournalRepoImpl{collection: dbs.Journal.Collection("login")}
}

func (s *JournalRepoImpl) InsertLogin(ctx context.Context, entry *model.LoginJournal) error {
	_, err := s.collection.InsertOne(ctx, entry)
	return err
}
