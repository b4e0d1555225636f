package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/repository"
)

// eventLog is the append-only event collection backing one aggregate type.
// Optimistic concurrency: an append succeeds only when the stored event count
// for the aggregate matches the caller's expected version.
type eventLog struct {
	collection *mongo.Collection
}

func newEventLog(collection *mongo.Collection) *eventLog {
	return &eventLog{collection: collection}
}

func (l *eventLog) SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error {
	if len(events) == 0 {
		return nil
	}

	count, err := l.collection.CountDocuments(ctx, bson.M{"aggregate_id": aggregateID})
	if err != nil {
		return fmt.Errorf("failed to count events: %w", err)
	}
	if int(count) != expectedVersion {
		return repository.ErrVersionConflict
	}

	docs := make([]interface{}, 0, len(events))
	for _, e := range events {
		doc, err := newEventDocument(e)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	if _, err := l.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert events: %w", err)
	}
	return nil
}

func (l *eventLog) GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error) {
	events, err := l.find(ctx, bson.M{"aggregate_id": aggregateID})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, repository.ErrNotFound
	}
	return events, nil
}

func (l *eventLog) GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error) {
	return l.find(ctx, bson.M{
		"aggregate_id":  aggregateID,
		"event_version": bson.M{"$gt": version},
	})
}

func (l *eventLog) GetAllEvents(ctx context.Context) ([]event.DomainEvent, error) {
	return l.find(ctx, bson.M{})
}

func (l *eventLog) find(ctx context.Context, filter bson.M) ([]event.DomainEvent, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "aggregate_id", Value: 1},
		{Key: "event_version", Value: 1},
	})

	cursor, err := l.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []event.DomainEvent
	for cursor.Next(ctx) {
		var doc eventDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode event document: %w", err)
		}
		e, err := decodeEvent(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
