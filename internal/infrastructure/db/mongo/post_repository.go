package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

const collectionPosts = "posts"

// PostRepository implements ports.PostRepository on MongoDB. Like mutations
// use $addToSet/$pull so each user id appears at most once.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type postDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	OwnerID     string             `bson:"owner_id"`
	Category    string             `bson:"category"`
	Image       imageDoc           `bson:"image"`
	Likes       []string           `bson:"likes"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (d *postDoc) toDomain() *domain.Post {
	likes := d.Likes
	if likes == nil {
		likes = []string{}
	}
	return &domain.Post{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		OwnerID:     d.OwnerID,
		Category:    d.Category,
		Image:       domain.Image{URL: d.Image.URL, PublicID: d.Image.PublicID},
		Likes:       likes,
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	doc := postDoc{
		ID:          primitive.NewObjectID(),
		Title:       post.Title,
		Description: post.Description,
		OwnerID:     post.OwnerID,
		Category:    post.Category,
		Image:       imageDoc{URL: post.Image.URL, PublicID: post.Image.PublicID},
		Likes:       []string{},
		CreatedAt:   post.CreatedAt.Unix(),
		UpdatedAt:   post.UpdatedAt.Unix(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Post, error) {
	return r.findAll(ctx, bson.M{"owner_id": ownerID}, nil)
}

func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]domain.Post, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Page > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	posts, err := r.findAll(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) findAll(ctx context.Context, query bson.M, opts *options.FindOptions) ([]domain.Post, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.col.Find(ctx, query, opts)
	} else {
		cur, err = r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	}
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []domain.Post
	for cur.Next(ctx) {
		var doc postDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *doc.toDomain())
	}
	return posts, cur.Err()
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *PostRepository) Update(ctx context.Context, id string, upd ports.PostUpdate) (*domain.Post, error) {
	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	return r.findOneAndSet(ctx, id, set)
}

func (r *PostRepository) SetImage(ctx context.Context, id string, image domain.Image) (*domain.Post, error) {
	return r.findOneAndSet(ctx, id, bson.M{
		"image":      imageDoc{URL: image.URL, PublicID: image.PublicID},
		"updated_at": time.Now().UTC().Unix(),
	})
}

// AddLike appends userID to the like set in a single atomic document update.
func (r *PostRepository) AddLike(ctx context.Context, id, userID string) (*domain.Post, error) {
	return r.findOneAndApply(ctx, id, bson.M{"$addToSet": bson.M{"likes": userID}})
}

// RemoveLike removes userID from the like set in a single atomic document update.
func (r *PostRepository) RemoveLike(ctx context.Context, id, userID string) (*domain.Post, error) {
	return r.findOneAndApply(ctx, id, bson.M{"$pull": bson.M{"likes": userID}})
}

func (r *PostRepository) findOneAndSet(ctx context.Context, id string, set bson.M) (*domain.Post, error) {
	return r.findOneAndApply(ctx, id, bson.M{"$set": set})
}

func (r *PostRepository) findOneAndApply(ctx context.Context, id string, update bson.M) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc postDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("delete posts by owner: %w", err)
	}
	return nil
}

// EnsureIndexes creates the query indexes for the posts collection.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
