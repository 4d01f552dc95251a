package orders

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
const attrUserId = "userId"

var optsSrvApi = options.ServerAPI(options.ServerAPIVersion1)
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
	{
		Keys: bson.D{
			{
				Key:   attrUserId,
				Value: 1,
			},
			{
				Key:   attrId,
				Value: -1,
			},
		},
		Options: options.
			Index().
			SetUnique(false),
	},
}

// ksuid ids sort chronologically, newest first means descending by id
var sortPage = bson.D{
	{
		Key:   attrId,
		Value: -1,
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
		sm.conn = conn
		sm.db = db
		sm.coll = db.Collection(cfgDb.Table.Orders)
		_, err = sm.coll.Indexes().CreateMany(ctx, indices)
	}
	if err == nil {
		s = sm
	}
	return
}

func (sm storageMongo) Close() error {
	return sm.conn.Disconnect(context.TODO())
}

func (sm storageMongo) Create(ctx context.Context, o Order) (err error) {
	_, err = sm.coll.InsertOne(ctx, o)
	err = decodeMongoError(err)
	return
}

func (sm storageMongo) Get(ctx context.Context, id string) (o Order, err error) {
	q := bson.M{
		attrId: id,
	}
	var result *mongo.SingleResult
	result = sm.coll.FindOne(ctx, q)
	err = result.Err()
	if err == nil {
		err = result.Decode(&o)
	}
	err = decodeMongoError(err)
	return
}

func (sm storageMongo) GetPage(ctx context.Context, userId int64, limit uint32, cursor string) (page []Order, err error) {
	q := bson.M{
		attrUserId: userId,
	}
	if cursor != "" {
		q[attrId] = bson.M{
			"$lt": cursor,
		}
	}
	optsList := options.
		Find().
		SetLimit(int64(limit)).
		SetSort(sortPage)
	var cur *mongo.Cursor
	cur, err = sm.coll.Find(ctx, q, optsList)
	if err == nil {
		var rec Order
		for cur.Next(ctx) {
			err = errors.Join(err, cur.Decode(&rec))
			if err == nil {
				page = append(page, rec)
			}
		}
	}
	err = decodeMongoError(err)
	return
}

func decodeMongoError(src error) (dst error) {
	switch {
	case src == nil:
	case errors.Is(src, mongo.ErrNoDocuments):
		dst = ErrNotFound
	default:
		dst = fmt.Errorf("%w: %s", ErrInternal, src)
	}
	return
}
