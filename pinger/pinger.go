package pinger

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"app-pinger/apiv1"
)

// Config controls the sweep behavior.
type Config struct {
	// Interval is the time between sweeps
	Interval time.Duration

	// Timeout is the per-request timeout for a single ping
	Timeout time.Duration

	// Workers bounds how many pings run concurrently within a sweep
	Workers int

	// HistoryLimit caps the number of ping records kept per app
	HistoryLimit int
}

const (
	defaultInterval     = 10 * time.Minute
	defaultTimeout      = 5 * time.Second
	defaultWorkers      = 8
	defaultHistoryLimit = 100
)

// Pinger periodically issues HTTP GETs against every enabled app so that
// free-tier deployments do not idle out.
type Pinger struct {
	db     *gorm.DB
	client *http.Client
	log    *logrus.Entry
	conf   Config

	// mu serializes database writes; SQLite tolerates only one writer
	mu sync.Mutex
}

// New creates a pinger, filling in defaults for zero config values
func New(db *gorm.DB, conf Config) *Pinger {
	if conf.Interval <= 0 {
		conf.Interval = defaultInterval
	}
	if conf.Timeout <= 0 {
		conf.Timeout = defaultTimeout
	}
	if conf.Workers <= 0 {
		conf.Workers = defaultWorkers
	}
	if conf.HistoryLimit <= 0 {
		conf.HistoryLimit = defaultHistoryLimit
	}

	return &Pinger{
		db:     db,
		client: &http.Client{Timeout: conf.Timeout},
		log:    logrus.WithField("component", "pinger"),
		conf:   conf,
	}
}

// Run sweeps once immediately and then on every interval tick until the
// context is cancelled.
func (p *Pinger) Run(ctx context.Context) {
	p.log.WithField("interval", p.conf.Interval.String()).Info("pinger started")

	if err := p.Sweep(ctx); err != nil {
		p.log.WithError(err).Error("sweep failed")
	}

	ticker := time.NewTicker(p.conf.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("pinger stopped")
			return
		case <-ticker.C:
			if err := p.Sweep(ctx); err != nil {
				p.log.WithError(err).Error("sweep failed")
			}
		}
	}
}

// Sweep pings every enabled app once, recording each outcome. Per-URL
// failures are data, not errors; only storage problems are returned.
func (p *Pinger) Sweep(ctx context.Context) error {
	var apps []apiv1.App
	if err := p.db.Where("enabled = ? OR enabled IS NULL", true).Find(&apps).Error; err != nil {
		return fmt.Errorf("loading apps: %w", err)
	}

	if len(apps) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.conf.Workers)

	for i := range apps {
		app := apps[i]
		g.Go(func() error {
			p.pingApp(ctx, &app)
			return nil
		})
	}

	return g.Wait()
}

// pingApp issues one GET against the app URL and persists the outcome
func (p *Pinger) pingApp(ctx context.Context, app *apiv1.App) {
	record := apiv1.PingRecord{
		AppID: app.ID,
		URL:   app.URL,
	}

	start := time.Now()
	statusCode, err := p.ping(ctx, app.URL)
	record.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		record.Error = err.Error()
		app.MarkUnhealthy(record.Error)
		p.log.WithFields(logrus.Fields{
			"url":   app.URL,
			"error": err.Error(),
		}).Warn("ping failed")
	} else {
		record.StatusCode = statusCode
		record.Success = statusCode >= 200 && statusCode < 400
		if record.Success {
			app.MarkHealthy(fmt.Sprintf("responded with %d", statusCode))
		} else {
			app.MarkUnhealthy(fmt.Sprintf("responded with %d", statusCode))
		}
		p.log.WithFields(logrus.Fields{
			"url":       app.URL,
			"status":    statusCode,
			"latencyMs": record.LatencyMs,
		}).Info("pinged")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.db.Create(&record).Error; err != nil {
		p.log.WithError(err).WithField("url", app.URL).Error("recording ping failed")
		return
	}
	if err := p.db.Save(app).Error; err != nil {
		p.log.WithError(err).WithField("url", app.URL).Error("updating app status failed")
		return
	}
	if err := p.prune(app.ID); err != nil {
		p.log.WithError(err).WithField("url", app.URL).Error("pruning ping history failed")
	}
}

// ping performs the HTTP GET, returning the status code or an error
func (p *Pinger) ping(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// prune drops records beyond the per-app history cap, oldest first
func (p *Pinger) prune(appID uint) error {
	keep := p.db.Model(&apiv1.PingRecord{}).
		Select("id").
		Where("app_id = ?", appID).
		Order("id DESC").
		Limit(p.conf.HistoryLimit)

	return p.db.Unscoped().
		Where("app_id = ? AND id NOT IN (?)", appID, keep).
		Delete(&apiv1.PingRecord{}).Error
}
