package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/userhub/internal/domain/user"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const DefaultCollection = "Users"

type userDocument struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Name     string        `bson:"name"`
	Email    string        `bson:"email"`
	Password string        `bson:"password"`
}

func (d userDocument) toUser() user.User {
	return user.User{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
	}
}

type UsersRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewUsersRepo(client *mongo.Client, database, collection string) *UsersRepo {
	if collection == "" {
		collection = DefaultCollection
	}

	return &UsersRepo{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (r *UsersRepo) Insert(ctx context.Context, doc user.Document) (user.User, error) {
	res, err := r.coll.InsertOne(ctx, userDocument{
		Name:     doc.Name,
		Email:    doc.Email,
		Password: doc.Password,
	})
	if err != nil {
		return user.User{}, err
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return user.User{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	return user.User{
		ID:       id.Hex(),
		Name:     doc.Name,
		Email:    doc.Email,
		Password: doc.Password,
	}, nil
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return user.User{}, err
	}

	var d userDocument

	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return d.toUser(), nil
}

func (r *UsersRepo) FindAll(ctx context.Context) ([]user.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]user.User, 0)

	for cur.Next(ctx) {
		var d userDocument
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toUser())
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// FindAndUpdate issues a $set of the supplied fields and returns the
// document as it was before the update.
func (r *UsersRepo) FindAndUpdate(ctx context.Context, id string, fields map[string]string) (user.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return user.User{}, err
	}

	set := bson.D{}
	for k, v := range fields {
		set = append(set, bson.E{Key: k, Value: v})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var prior userDocument

	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&prior)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return prior.toUser(), nil
}

func (r *UsersRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, user.ErrInvalidID
	}

	return oid, nil
}
