package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"ustcatalog/lib/htmlutil"
	"ustcatalog/lib/restyutil"
	"ustcatalog/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://w5.ab.ust.hk/wcq/cgi-bin"

// quota numbers move constantly during add/drop, so cached pages go
// stale quickly.
const subjectPageLifetime = int64(time.Hour / time.Second)

// Subject is one entry of a term's subject index.
type Subject struct {
	Name string
	Term string
	Href string
}

// Client fetches catalog pages from the wcq host. It does no parsing
// beyond locating subject links; page markup is handed to ParsePage
// by the caller.
type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	cache   pageCache
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// optional, nil disables page caching
	Cache *badger.DB
	// optional request/response dump output for debugging
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (Client, error) {
	base := opts.BaseUrl
	if base == "" {
		base = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(base)
	if err != nil {
		return Client{}, err
	}

	client := resty.New()
	client.SetBaseURL(base)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	// the term redirect must be observed, not followed
	client.SetRedirectPolicy(resty.NoRedirectPolicy())
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return Client{
		baseUrl: baseUrl,
		http:    client,
		cache:   pageCache{db: opts.Cache},
	}, nil
}

// CurrentTerm discovers the active term code (e.g. "2330") from the
// redirect the catalog root answers with.
func (c Client) CurrentTerm(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "client:CurrentTerm")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(c.baseUrl.String() + "/")
	if res == nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", err
	}

	location := res.Header().Get("Location")
	if location == "" {
		err := fmt.Errorf("catalog root did not redirect to a term")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	full, err := c.baseUrl.Parse(location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse redirect location")
		return "", err
	}

	segments := strings.Split(strings.Trim(full.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "cgi-bin" && i+1 < len(segments) {
			term := segments[i+1]
			span.SetAttributes(attribute.String("term", term))
			return term, nil
		}
	}

	err = fmt.Errorf("no term code in redirect location %q", location)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return "", err
}

// Subjects lists the subject index of a term.
func (c Client) Subjects(ctx context.Context, term string) ([]Subject, error) {
	ctx, span := tracer.Start(ctx, "client:Subjects")
	defer span.End()
	span.SetAttributes(attribute.String("term", term))

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%s/", c.baseUrl.String(), term))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	anchors := htmlutil.GetAnchors(ctx, doc.Find(".depts > a"))
	subjects := make([]Subject, 0, len(anchors))
	for _, a := range anchors {
		if a.Name == "" {
			continue
		}
		href, err := c.baseUrl.Parse(a.Href)
		if err != nil {
			span.RecordError(err)
			continue
		}
		subjects = append(subjects, Subject{
			Name: a.Name,
			Term: term,
			Href: href.String(),
		})
	}

	span.SetAttributes(attribute.Int("subjects", len(subjects)))
	return subjects, nil
}

// SubjectPage fetches one subject's raw page markup, consulting the
// page cache first.
func (c Client) SubjectPage(ctx context.Context, subject Subject) (string, error) {
	ctx, span := tracer.Start(ctx, "client:SubjectPage")
	defer span.End()
	span.SetAttributes(
		attribute.String("subject", subject.Name),
		attribute.String("term", subject.Term),
	)

	cached, err := c.cache.get(ctx, subject.Href)
	if err == nil {
		span.SetStatus(codes.Ok, "CACHE HIT")
		return string(cached.Contents), nil
	}
	if err != errPageNotFound {
		span.RecordError(err)
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(subject.Href)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", err
	}

	err = c.cache.set(ctx, subject.Href, cachedPage{
		Contents:  res.Body(),
		ExpiresAt: timezone.Now().Unix() + subjectPageLifetime,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to cache page")
	}

	return string(res.Body()), nil
}
