package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pagehub/pages-api/internal/core/domain"
)

const pagesCollection = "pages"

// PageRepository implements ports.PageRepository using MongoDB. Pages use
// their caller-assigned integer id as _id, so duplicate creation is rejected
// by the primary key itself.
type PageRepository struct {
	coll *mongo.Collection
}

func NewPageRepository(db *mongo.Database) *PageRepository {
	return &PageRepository{coll: db.Collection(pagesCollection)}
}

func (r *PageRepository) Insert(ctx context.Context, page *domain.Page) error {
	if _, err := r.coll.InsertOne(ctx, page); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrPageExists
		}
		return fmt.Errorf("insert page: %w", err)
	}
	return nil
}

func (r *PageRepository) FindByID(ctx context.Context, id int) (*domain.Page, error) {
	var page domain.Page
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&page); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("find page: %w", err)
	}
	return &page, nil
}

func (r *PageRepository) List(ctx context.Context) ([]*domain.Page, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer cur.Close(ctx)

	pages := make([]*domain.Page, 0)
	for cur.Next(ctx) {
		var page domain.Page
		if err := cur.Decode(&page); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		pages = append(pages, &page)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

func (r *PageRepository) Update(ctx context.Context, page *domain.Page) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": page.ID}, page)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

func (r *PageRepository) Delete(ctx context.Context, id int) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}
