package background

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"reservaplus/internal/caching"
)

// JobScheduler runs periodic maintenance jobs. Identity-token key refresh is
// owned by the JWKS cache itself; the scheduler only observes dependency
// health so degradation shows up in logs before it shows up in requests.
type JobScheduler struct {
	scheduler gocron.Scheduler
	db        *pgxpool.Pool
	cacheSvc  caching.CacheService
	jwksURL   string
	client    *http.Client
}

func NewJobScheduler(db *pgxpool.Pool, cacheSvc caching.CacheService, jwksURL string) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		db:        db,
		cacheSvc:  cacheSvc,
		jwksURL:   jwksURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}

	js.registerJobs()

	return js
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.probeDependencies),
		gocron.WithName("dependency-health-probe"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dependency probe job: %v", err)
	}
}

func (js *JobScheduler) probeDependencies() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := js.db.Ping(ctx); err != nil {
		log.Printf("WARN: database probe failed: %v", err)
	}
	if err := js.cacheSvc.Ping(ctx); err != nil {
		log.Printf("WARN: redis probe failed: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, js.jwksURL, nil)
	if err != nil {
		log.Printf("WARN: building JWKS probe request failed: %v", err)
		return
	}
	resp, err := js.client.Do(req)
	if err != nil {
		log.Printf("WARN: JWKS endpoint unreachable: %v", err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		log.Printf("WARN: JWKS endpoint returned %d", resp.StatusCode)
	}
}
