package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// UnitOfWork runs fn inside one transaction. Repository calls made with the
// ctx handed to fn join that transaction. fn may run more than once when the
// store reports a transient conflict, so it must not keep state between runs.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoUnitOfWork struct {
	client *mongo.Client
}

// NewMongoUnitOfWork returns a UnitOfWork backed by MongoDB multi-document
// transactions. Requires a replica set or sharded cluster.
func NewMongoUnitOfWork(client *mongo.Client) UnitOfWork {
	return &mongoUnitOfWork{client: client}
}

func (u *mongoUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := u.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txnOpts)
	return err
}
