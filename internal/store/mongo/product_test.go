package mongo

import (
	"context"
	"testing"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func updateResponse(matched, modified int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: modified},
	)
}

func TestDecrementOptionStock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sufficient stock decrements in one update", func(mt *mtest.T) {
		r := NewProductRepository(mt.DB)
		mt.AddMockResponses(updateResponse(1, 1))

		err := r.DecrementOptionStock(context.Background(), primitive.NewObjectID(), "Size", "S", 2)
		require.NoError(mt, err)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 1)
		assert.Equal(mt, "update", events[0].CommandName)

		// the first update carries only the conditional $inc, so a matched
		// document with untouched stock reports ModifiedCount 0
		update := events[0].Command.Lookup("updates").Array().Index(0).Value().Document()
		u := update.Lookup("u").Document()
		assert.EqualValues(mt, -2, u.Lookup("$inc", "attributes.$[g].options.$[o].stock").Int64())
		_, err = u.LookupErr("$set")
		assert.Error(mt, err, "subtract update must not bundle a $set")
	})

	mt.Run("short stock falls through to the zero floor", func(mt *mtest.T) {
		r := NewProductRepository(mt.DB)
		// matched but unmodified: the stock filter rejected the $inc
		mt.AddMockResponses(
			updateResponse(1, 0),
			updateResponse(1, 1),
		)

		err := r.DecrementOptionStock(context.Background(), primitive.NewObjectID(), "Size", "S", 5)
		require.NoError(mt, err)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 2)

		update := events[1].Command.Lookup("updates").Array().Index(0).Value().Document()
		set := update.Lookup("u", "$set").Document()
		assert.EqualValues(mt, 0, set.Lookup("attributes.$[g].options.$[o].stock").Int64())

		// the floor only applies to tracked stock that is actually short;
		// null (untracked) stock fails the $type filter and stays null
		filters := update.Lookup("arrayFilters").String()
		assert.Contains(mt, filters, "$lt")
		assert.Contains(mt, filters, "number")
	})

	mt.Run("untracked stock matches neither filter and is left alone", func(mt *mtest.T) {
		r := NewProductRepository(mt.DB)
		// both updates match the product but modify nothing
		mt.AddMockResponses(
			updateResponse(1, 0),
			updateResponse(1, 0),
		)

		err := r.DecrementOptionStock(context.Background(), primitive.NewObjectID(), "Weight", "250g", 3)
		require.NoError(mt, err)
		require.Len(mt, mt.GetAllStartedEvents(), 2)
	})

	mt.Run("missing product", func(mt *mtest.T) {
		r := NewProductRepository(mt.DB)
		mt.AddMockResponses(updateResponse(0, 0))

		err := r.DecrementOptionStock(context.Background(), primitive.NewObjectID(), "Size", "S", 1)
		assert.ErrorIs(mt, err, repo.ErrNotFound)
		require.Len(mt, mt.GetAllStartedEvents(), 1)
	})
}
