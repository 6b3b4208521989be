package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	scraper "ustcatalog/lib/scrapers/catalog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/catalog")

const defaultConcurrency = 8

// Service snapshots catalog pages to disk and derives JSON documents
// from them.
type Service struct {
	client      scraper.Client
	store       Store
	concurrency int
}

func NewService(client scraper.Client, store Store, concurrency int) Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return Service{
		client:      client,
		store:       store,
		concurrency: concurrency,
	}
}

// Pull fetches every subject page of the current term into the store
// and reports the term it pulled. Individual subject failures are
// logged and skipped so one flaky page does not lose the whole run.
func (s Service) Pull(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "Pull")
	defer span.End()

	term, err := s.client.CurrentTerm(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.String("term", term))

	subjects, err := s.client.Subjects(ctx, term)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if len(subjects) == 0 {
		err := fmt.Errorf("term %s has no subjects", term)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	wg := sync.WaitGroup{}
	sem := make(chan struct{}, s.concurrency)
	var failed int
	var mu sync.Mutex

	for _, subject := range subjects {
		subject := subject
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			page, err := s.client.SubjectPage(ctx, subject)
			if err != nil {
				slog.WarnContext(
					ctx, "failed to fetch subject page",
					"term", term,
					"subject", subject.Name,
					"err", err,
				)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			err = s.store.WritePage(term, subject.Name, page)
			if err != nil {
				slog.WarnContext(
					ctx, "failed to store subject page",
					"term", term,
					"subject", subject.Name,
					"err", err,
				)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	span.SetAttributes(
		attribute.Int("subjects", len(subjects)),
		attribute.Int("failed", failed),
	)
	if failed == len(subjects) {
		err := fmt.Errorf("all %d subject pages failed", failed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return term, nil
}

// Update parses every stored page of a term and writes the derived
// documents: <term>.json with full course records and <term>-slim.json
// with the reduced shape, both keyed by subject.
func (s Service) Update(ctx context.Context, term string) error {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()
	span.SetAttributes(attribute.String("term", term))

	subjects, err := s.store.Subjects(term)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if len(subjects) == 0 {
		err := fmt.Errorf("no stored pages for term %s, pull first", term)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	full := make(map[string][]scraper.Course, len(subjects))
	slim := make(map[string][]scraper.SlimCourse, len(subjects))

	for _, subject := range subjects {
		page, err := s.store.ReadPage(term, subject)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		courses, courseErrs, err := scraper.ParsePage(ctx, page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("parse %s/%s: %w", term, subject, err)
		}
		for _, err := range courseErrs {
			slog.WarnContext(
				ctx, "dropped catalog unit",
				"term", term,
				"subject", subject,
				"err", err,
			)
		}

		slimmed := make([]scraper.SlimCourse, len(courses))
		for i, course := range courses {
			slimmed[i] = scraper.Slim(course)
		}
		full[subject] = courses
		slim[subject] = slimmed
	}

	err = s.store.WriteDocument(term, full)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	err = s.store.WriteDocument(term+"-slim", slim)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("subjects", len(subjects)))
	return nil
}

// Run pulls the current term then updates its documents.
func (s Service) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	term, err := s.Pull(ctx)
	if err != nil {
		return err
	}
	return s.Update(ctx, term)
}
