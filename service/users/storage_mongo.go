package users

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/floriva/shop-telegram/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type storageMongo struct {
	conn *mongo.Client
	db   *mongo.Database
	coll *mongo.Collection
}

const attrId = "id"

var optsSrvApi = options.ServerAPI(options.ServerAPIVersion1)

// the unique index enforces the one-record-per-telegram-id invariant,
// concurrent first-sight creators race on it
var indices = []mongo.IndexModel{
	{
		Keys: bson.D{
			{
				Key:   attrId,
				Value: 1,
			},
		},
		Options: options.
			Index().
			SetUnique(true),
	},
}

func NewStorage(ctx context.Context, cfgDb config.DbConfig) (s Storage, err error) {
	clientOpts := options.
		Client().
		ApplyURI(cfgDb.Uri).
		SetServerAPIOptions(optsSrvApi)
	if cfgDb.Tls.Enabled {
		clientOpts = clientOpts.SetTLSConfig(&tls.Config{InsecureSkipVerify: cfgDb.Tls.Insecure})
	}
	if len(cfgDb.UserName) > 0 {
		auth := options.Credential{
			Username:    cfgDb.UserName,
			Password:    cfgDb.Password,
			PasswordSet: len(cfgDb.Password) > 0,
		}
		clientOpts = clientOpts.SetAuth(auth)
	}
	conn, err := mongo.Connect(ctx, clientOpts)
	var sm storageMongo
	if err == nil {
		db := conn.Database(cfgDb.Name)
		coll := db.Collection(cfgDb.Table.Users)
		sm.conn = conn
		sm.db = db
		sm.coll = coll
		_, err = sm.ensureIndices(ctx)
	}
	if err == nil {
		s = sm
	}
	return
}

func (sm storageMongo) ensureIndices(ctx context.Context) ([]string, error) {
	return sm.coll.Indexes().CreateMany(ctx, indices)
}

func (sm storageMongo) Close() error {
	return sm.conn.Disconnect(context.TODO())
}

func (sm storageMongo) Create(ctx context.Context, u User) (err error) {
	_, err = sm.coll.InsertOne(ctx, u)
	err = decodeMongoError(err)
	return
}

func (sm storageMongo) Get(ctx context.Context, id int64) (u User, err error) {
	q := bson.M{
		attrId: id,
	}
	var result *mongo.SingleResult
	result = sm.coll.FindOne(ctx, q)
	err = result.Err()
	if err == nil {
		err = result.Decode(&u)
	}
	err = decodeMongoError(err)
	return
}

func (sm storageMongo) Update(ctx context.Context, u User) (err error) {
	q := bson.M{
		attrId: u.Id,
	}
	var result *mongo.UpdateResult
	result, err = sm.coll.ReplaceOne(ctx, q, u)
	if err == nil && result.MatchedCount < 1 {
		err = ErrNotFound
	}
	err = decodeMongoError(err)
	return
}

func decodeMongoError(src error) (dst error) {
	switch {
	case src == nil:
	case errors.Is(src, ErrNotFound):
		dst = src
	case mongo.IsDuplicateKeyError(src):
		dst = fmt.Errorf("%w: %s", ErrAlreadyExists, src)
	case errors.Is(src, mongo.ErrNoDocuments):
		dst = ErrNotFound
	default:
		dst = fmt.Errorf("%w: %s", ErrInternal, src)
	}
	return
}
