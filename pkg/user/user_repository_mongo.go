package user

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoTimeout = 1 * time.Second

type userMongoRepository struct {
	client     *mongo.Client
	db         string
	collection string
	timeout    time.Duration
}

type mongoProperties struct {
	URL        string
	Database   string
	Collection string
	Timeout    time.Duration
}

func (ur *userMongoRepository) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, ur.timeout)
	defer cancel()

	var user User
	err := ur.getCollection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, errors.Wrapf(err, "error finding user %v", email)
	}
	return user, true, nil
}

func (ur *userMongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ur.timeout)
	defer cancel()
	return ur.client.Disconnect(ctx)
}

func (ur *userMongoRepository) getCollection() *mongo.Collection {
	return ur.client.Database(ur.db).Collection(ur.collection)
}

func newUserMongoRepository(ctx context.Context, p mongoProperties) (*userMongoRepository, error) {
	if p.Timeout <= 0 {
		p.Timeout = defaultMongoTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	logger().Infof("connecting to mongo, database: %v, collection: %v", p.Database, p.Collection)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.URL))
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to mongo")
	}

	rep := &userMongoRepository{
		client:     client,
		db:         p.Database,
		collection: p.Collection,
		timeout:    p.Timeout,
	}

	mod := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err = rep.getCollection().Indexes().CreateOne(ctx, mod)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "error creating email index")
	}
	return rep, nil
}
