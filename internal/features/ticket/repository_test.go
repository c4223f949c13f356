package ticket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestTicketRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create maps duplicate key to ErrDuplicateTicketNumber", func(mt *mtest.T) {
		repo := &TicketRepositoryImpl{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: tickets index: ticket_number_unique",
		}))

		err := repo.Create(context.Background(), &Ticket{TicketNumber: "TKT-AAAAAAAA"})
		assert.ErrorIs(t, err, ErrDuplicateTicketNumber)
	})

	mt.Run("create assigns the inserted id", func(mt *mtest.T) {
		repo := &TicketRepositoryImpl{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ticket := &Ticket{TicketNumber: "TKT-AAAAAAAA", Status: StatusOpen}
		require.NoError(t, repo.Create(context.Background(), ticket))
		assert.False(t, ticket.ID.IsZero())
	})

	mt.Run("find by statuses sorts newest first and limits", func(mt *mtest.T) {
		repo := &TicketRepositoryImpl{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.tickets", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "status", Value: "open"}, {Key: "created_at", Value: time.Now()}},
		))

		tickets, err := repo.FindByStatuses(context.Background(), OpenStatuses, OpenTicketsLimit)
		require.NoError(t, err)
		assert.Len(t, tickets, 1)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "find", started.CommandName)
		assert.Equal(t, int64(OpenTicketsLimit), started.Command.Lookup("limit").Int64())
		assert.Equal(t, int32(-1), started.Command.Lookup("sort", "created_at").Int32())
		statuses, err := started.Command.Lookup("filter", "status", "$in").Array().Values()
		require.NoError(t, err)
		require.Len(t, statuses, 2)
		assert.Equal(t, "open", statuses[0].StringValue())
		assert.Equal(t, "working", statuses[1].StringValue())
	})

	mt.Run("find by id reports not found", func(mt *mtest.T) {
		repo := &TicketRepositoryImpl{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.tickets", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	mt.Run("update with no match reports not found", func(mt *mtest.T) {
		repo := &TicketRepositoryImpl{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Update(context.Background(), primitive.NewObjectID(), bson.M{"status": "closed"})
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	mt.Run("update writes a $set", func(mt *mtest.T) {
		repo := &TicketRepositoryImpl{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(t, repo.Update(context.Background(), primitive.NewObjectID(), bson.M{"assigned_to": nil}))

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		update := started.Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.Equal(t, bson.TypeNull, update.Lookup("u", "$set", "assigned_to").Type)
	})

	mt.Run("count by status decodes groups", func(mt *mtest.T) {
		repo := &TicketRepositoryImpl{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.tickets", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "closed"}, {Key: "count", Value: int64(4)}},
			bson.D{{Key: "_id", Value: "open"}, {Key: "count", Value: int32(7)}},
		))

		counts, err := repo.CountByStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []StatusCount{{Status: "closed", Count: 4}, {Status: "open", Count: 7}}, counts)
	})
}

func TestCommentRepository_FindByTicketIDSortsNewestFirst(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find", func(mt *mtest.T) {
		repo := &TicketCommentRepositoryImpl{collection: mt.Coll}
		ticketID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.ticket_comments", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "ticket_id", Value: ticketID}, {Key: "comment", Value: "hi"}, {Key: "agent_id", Value: nil}},
		))

		comments, err := repo.FindByTicketID(context.Background(), ticketID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Nil(t, comments[0].AgentID)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, int32(-1), started.Command.Lookup("sort", "created_at").Int32())
	})
}
