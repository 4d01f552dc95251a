package products

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
	conn     *mongo.Client
	db       *mongo.Database
	collProd *mongo.Collection
	collCat  *mongo.Collection
}

const attrSlug = "slug"
const attrCategoryId = "categoryId"
const attrActive = "active"
const attrSortOrder = "sortOrder"

var optsSrvApi = options.ServerAPI(options.ServerAPIVersion1)
var indices = []mongo.IndexModel{
	{
		Keys: bson.D{
			{
				Key:   attrSlug,
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
				Key:   attrCategoryId,
				Value: 1,
			},
			{
				Key:   attrActive,
				Value: 1,
			},
		},
		Options: options.
			Index().
			SetUnique(false),
	},
}
var sortPage = bson.D{
	{
		Key:   attrSortOrder,
		Value: 1,
	},
	{
		Key:   attrSlug,
		Value: 1,
	},
}
var sortCategories = bson.D{
	{
		Key:   attrSortOrder,
		Value: 1,
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
		sm.collProd = db.Collection(cfgDb.Table.Products)
		sm.collCat = db.Collection(cfgDb.Table.Categories)
		_, err = sm.collProd.Indexes().CreateMany(ctx, indices)
	}
	if err == nil {
		s = sm
	}
	return
}

func (sm storageMongo) Close() error {
	return sm.conn.Disconnect(context.TODO())
}

func (sm storageMongo) GetPage(ctx context.Context, categoryId string, limit uint32, cursor string) (page []Product, err error) {
	q := bson.M{
		attrActive: true,
	}
	if categoryId != "" {
		q[attrCategoryId] = categoryId
	}
	if cursor != "" {
		var after Product
		after, err = sm.GetBySlug(ctx, cursor)
		if errors.Is(err, ErrNotFound) {
			// the cursor product vanished, the sequence ends here
			err = nil
			return
		}
		if err != nil {
			return
		}
		// the cursor filter must match the page sort key, a bare slug
		// comparison skips products with an earlier slug but a later
		// sort order
		q["$or"] = bson.A{
			bson.M{
				attrSortOrder: bson.M{
					"$gt": after.SortOrder,
				},
			},
			bson.M{
				attrSortOrder: after.SortOrder,
				attrSlug: bson.M{
					"$gt": after.Slug,
				},
			},
		}
	}
	optsList := options.
		Find().
		SetLimit(int64(limit)).
		SetSort(sortPage)
	var cur *mongo.Cursor
	cur, err = sm.collProd.Find(ctx, q, optsList)
	if err == nil {
		var rec Product
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

func (sm storageMongo) GetBySlug(ctx context.Context, slug string) (p Product, err error) {
	q := bson.M{
		attrSlug: slug,
	}
	var result *mongo.SingleResult
	result = sm.collProd.FindOne(ctx, q)
	err = result.Err()
	if err == nil {
		err = result.Decode(&p)
	}
	err = decodeMongoError(err)
	return
}

func (sm storageMongo) GetCategories(ctx context.Context) (cats []Category, err error) {
	optsList := options.
		Find().
		SetSort(sortCategories)
	var cur *mongo.Cursor
	cur, err = sm.collCat.Find(ctx, bson.M{}, optsList)
	if err == nil {
		var rec Category
		for cur.Next(ctx) {
			err = errors.Join(err, cur.Decode(&rec))
			if err == nil {
				cats = append(cats, rec)
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
