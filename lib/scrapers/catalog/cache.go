package catalog

import (
	"bytes"
	"context"
	"encoding/gob"
	"net/url"
	"ustcatalog/lib/timezone"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errPageNotFound = badger.ErrKeyNotFound

type cachedPage struct {
	Contents  []byte
	ExpiresAt int64
}

// pageCache keeps fetched subject pages in badger so a crashed or
// rerun pull does not hammer the catalog host. A nil db disables
// caching entirely.
type pageCache struct {
	db *badger.DB
}

func cacheKey(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	normalized := purell.NormalizeURL(
		parsed,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveDirectoryIndex|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	return "wcq:" + normalized, nil
}

func (c pageCache) get(ctx context.Context, link string) (cachedPage, error) {
	if c.db == nil {
		return cachedPage{}, errPageNotFound
	}

	ctx, span := tracer.Start(ctx, "cache:get")
	defer span.End()

	key, err := cacheKey(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return cachedPage{}, err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	tx := c.db.NewTransaction(false)
	defer tx.Discard()
	item, err := tx.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return cachedPage{}, errPageNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item from badger")
		return cachedPage{}, err
	}
	serialized, err := item.ValueCopy(nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to copy cached item")
		return cachedPage{}, err
	}

	var cached cachedPage
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&cached)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deserialize cached item")
		return cachedPage{}, err
	}

	if timezone.Now().Unix() >= cached.ExpiresAt {
		span.AddEvent("delete expired cache key", trace.WithAttributes(
			attribute.String("key", key),
		))

		tx := c.db.NewTransaction(true)
		defer tx.Commit()

		err = tx.Delete([]byte(key))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to delete expired key")
		}

		span.SetStatus(codes.Ok, "CACHE EXPIRED")
		return cachedPage{}, errPageNotFound
	}

	span.AddEvent("returned cached page", trace.WithAttributes(
		attribute.Int("contentlength", len(cached.Contents)),
	))
	return cached, nil
}

func (c pageCache) set(ctx context.Context, link string, page cachedPage) error {
	if c.db == nil {
		return nil
	}

	ctx, span := tracer.Start(ctx, "cache:set")
	defer span.End()

	key, err := cacheKey(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	serialized := bytes.NewBuffer(nil)
	err = gob.NewEncoder(serialized).Encode(page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize page")
		return err
	}

	tx := c.db.NewTransaction(true)
	defer tx.Commit()

	err = tx.Set([]byte(key), serialized.Bytes())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set badger item")
		return err
	}

	return nil
}
