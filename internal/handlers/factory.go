package handlers

import (
	"context"

	"gotours/internal/repositories/interfaces"
	"gotours/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource provides the five CRUD handlers for one document type,
// parametrized over the Store capability set instead of a runtime model.
// Resource-specific behavior plugs in through hooks: a create mutator
// (slugify, nested-id injection), an update mutator, a follow-up after
// writes (rating aggregates), a list scope (nested routes) and a read
// expansion (referenced associations).
type Resource[T any] struct {
	store        interfaces.Store[T]
	singular     string
	plural       string
	protected    map[string]bool
	beforeCreate func(c *gin.Context, doc *T) error
	beforeUpdate func(c *gin.Context, updates bson.M) error
	afterWrite   func(ctx context.Context, doc *T)
	scope        func(c *gin.Context) (bson.M, error)
	expand       func(ctx context.Context, doc *T) (interface{}, error)
}

func NewResource[T any](store interfaces.Store[T], singular, plural string) *Resource[T] {
	return &Resource[T]{
		store:    store,
		singular: singular,
		plural:   plural,
		protected: map[string]bool{
			"_id":       true,
			"id":        true,
			"createdAt": true,
			"updatedAt": true,
		},
	}
}

// Protected marks additional fields that partial updates silently drop.
func (r *Resource[T]) Protected(fields ...string) *Resource[T] {
	for _, field := range fields {
		r.protected[field] = true
	}
	return r
}

func (r *Resource[T]) BeforeCreate(fn func(c *gin.Context, doc *T) error) *Resource[T] {
	r.beforeCreate = fn
	return r
}

func (r *Resource[T]) BeforeUpdate(fn func(c *gin.Context, updates bson.M) error) *Resource[T] {
	r.beforeUpdate = fn
	return r
}

func (r *Resource[T]) AfterWrite(fn func(ctx context.Context, doc *T)) *Resource[T] {
	r.afterWrite = fn
	return r
}

func (r *Resource[T]) Scoped(fn func(c *gin.Context) (bson.M, error)) *Resource[T] {
	r.scope = fn
	return r
}

func (r *Resource[T]) Expanded(fn func(ctx context.Context, doc *T) (interface{}, error)) *Resource[T] {
	r.expand = fn
	return r
}

// GetAll lists documents through the query-feature chain. An explicitly
// requested page whose skip count reaches the matching document count is an
// out-of-range condition and surfaces as 404 rather than an empty result.
func (r *Resource[T]) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	features := utils.NewQueryFeatures(c.Request.URL.Query()).Apply()
	if r.scope != nil {
		extra, err := r.scope(c)
		if err != nil {
			c.Error(err)
			return
		}
		features.MergeFilter(extra)
	}

	if features.PageRequested() {
		total, err := r.store.Count(ctx, features.FilterQuery())
		if err != nil {
			c.Error(err)
			return
		}
		if int64(features.Skip()) >= total {
			c.Error(utils.NotFoundError(utils.ErrPageNotFound))
			return
		}
	}

	docs, err := r.store.Find(ctx, features)
	if err != nil {
		c.Error(err)
		return
	}
	if docs == nil {
		docs = []*T{}
	}

	utils.ListResponse(c, len(docs), gin.H{r.plural: docs})
}

func (r *Resource[T]) GetOne(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	doc, err := r.store.FindByID(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	var payload interface{} = doc
	if r.expand != nil {
		payload, err = r.expand(ctx, doc)
		if err != nil {
			c.Error(err)
			return
		}
	}

	utils.SuccessResponse(c, 200, gin.H{r.singular: payload})
}

func (r *Resource[T]) CreateOne(c *gin.Context) {
	ctx := c.Request.Context()

	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.Error(utils.BadRequestError("Invalid request body: " + err.Error()))
		return
	}

	if r.beforeCreate != nil {
		if err := r.beforeCreate(c, &doc); err != nil {
			c.Error(err)
			return
		}
	}

	created, err := r.store.Create(ctx, &doc)
	if err != nil {
		c.Error(err)
		return
	}

	if r.afterWrite != nil {
		r.afterWrite(ctx, created)
	}

	utils.CreatedResponse(c, gin.H{r.singular: created})
}

func (r *Resource[T]) UpdateOne(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.Error(utils.BadRequestError("Invalid request body: " + err.Error()))
		return
	}

	for field := range updates {
		if r.protected[field] {
			delete(updates, field)
		}
	}
	if len(updates) == 0 {
		c.Error(utils.BadRequestError("No updatable fields provided"))
		return
	}

	if r.beforeUpdate != nil {
		if err := r.beforeUpdate(c, updates); err != nil {
			c.Error(err)
			return
		}
	}

	doc, err := r.store.UpdateByID(ctx, id, updates)
	if err != nil {
		c.Error(err)
		return
	}

	if r.afterWrite != nil {
		r.afterWrite(ctx, doc)
	}

	utils.SuccessResponse(c, 200, gin.H{r.singular: doc})
}

func (r *Resource[T]) DeleteOne(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	// The follow-up hook needs the document's references after it is gone.
	var doc *T
	if r.afterWrite != nil {
		doc, err = r.store.FindByID(ctx, id)
		if err != nil {
			c.Error(err)
			return
		}
	}

	if err := r.store.DeleteByID(ctx, id); err != nil {
		c.Error(err)
		return
	}

	if r.afterWrite != nil {
		r.afterWrite(ctx, doc)
	}

	utils.NoContentResponse(c)
}

func parseID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, utils.BadRequestError("Invalid id: " + c.Param("id"))
	}
	return id, nil
}
