package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"housing-prediction-api/artifacts"
	"housing-prediction-api/features"
	"housing-prediction-api/metrics"
	"housing-prediction-api/models"

	"github.com/sirupsen/logrus"
)

const sideChannelTimeout = 2 * time.Second

// PredictionResult is the outcome of one submission. Confidence is nil when
// the margin has no precomputed entry.
type PredictionResult struct {
	PointEstimate float64  `json:"point_estimate"`
	LowerBound    float64  `json:"lower_bound"`
	UpperBound    float64  `json:"upper_bound"`
	Margin        int      `json:"margin"`
	Confidence    *float64 `json:"confidence"`
}

// Bounds returns the symmetric interval of margin percent around point.
func Bounds(point float64, margin int) (lower, upper float64) {
	marginValue := (float64(margin) / 100) * point
	return point - marginValue, point + marginValue
}

type Option func(*Predictor)

// WithCache stores results in Redis for ttl and publishes each one on
// PredictionsChannel.
func WithCache(cache *CacheService, ttl time.Duration) Option {
	return func(p *Predictor) {
		p.cache = cache
		p.cacheTTL = ttl
	}
}

func WithHistory(store HistoryStore) Option {
	return func(p *Predictor) { p.history = store }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Predictor) { p.log = log }
}

// Predictor runs the encode, scale, predict, bounds and confidence pipeline
// against an injected artifact bundle.
type Predictor struct {
	bundle      *artifacts.Bundle
	schema      []string
	fingerprint string

	cache    *CacheService
	cacheTTL time.Duration
	history  HistoryStore
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewPredictor(bundle *artifacts.Bundle, opts ...Option) *Predictor {
	p := &Predictor{
		bundle:      bundle,
		schema:      bundle.Schema.Columns(),
		fingerprint: bundle.Schema.Fingerprint(),
		log:         logrus.StandardLogger(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Evaluate is the pure pipeline. It panics if the artifacts disagree with the
// schema width.
func (p *Predictor) Evaluate(in features.RawInput) PredictionResult {
	start := time.Now()
	defer func() {
		metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}()

	encoded := features.Encode(in, p.schema)
	scaled := p.bundle.Scaler.Transform(encoded)
	point := p.bundle.Model.Predict(scaled)
	lower, upper := Bounds(point, in.Margin)

	res := PredictionResult{
		PointEstimate: point,
		LowerBound:    lower,
		UpperBound:    upper,
		Margin:        in.Margin,
	}
	if c, ok := p.bundle.Confidence.Lookup(in.Margin); ok {
		res.Confidence = &c
	}
	return res
}

// Predict serves one submission: from the result cache when possible,
// otherwise through Evaluate. Cache, publish and history writes are best
// effort and never fail the prediction.
func (p *Predictor) Predict(ctx context.Context, in features.RawInput) PredictionResult {
	key, cacheable := p.cacheKey(in)
	cacheable = cacheable && p.cache.Available()

	var res PredictionResult
	hit := false
	if cacheable {
		var err error
		hit, err = p.getCached(ctx, key, &res)
		if err != nil {
			p.sideChannelFailed(metrics.ChannelCache, err)
		}
	}
	if hit {
		metrics.PredictionCacheHits.Inc()
	} else {
		res = p.Evaluate(in)
		if cacheable {
			p.withTimeout(ctx, metrics.ChannelCache, func(ctx context.Context) error {
				return p.cache.Set(ctx, key, res, p.cacheTTL)
			})
		}
	}

	metrics.PredictionsServed.WithLabelValues(string(in.OceanProximity)).Inc()
	if res.Confidence == nil {
		metrics.ConfidenceFallbacks.Inc()
	}

	rec := p.record(in, res)
	if p.cache.Available() {
		p.withTimeout(ctx, metrics.ChannelPublish, func(ctx context.Context) error {
			return p.cache.Publish(ctx, PredictionsChannel, rec)
		})
	}
	if p.history != nil {
		p.withTimeout(ctx, metrics.ChannelHistory, func(ctx context.Context) error {
			return p.history.Append(ctx, rec)
		})
	}
	return res
}

func (p *Predictor) getCached(ctx context.Context, key string, dest *PredictionResult) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, sideChannelTimeout)
	defer cancel()
	return p.cache.Get(ctx, key, dest)
}

func (p *Predictor) withTimeout(ctx context.Context, channel string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, sideChannelTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		p.sideChannelFailed(channel, err)
	}
}

func (p *Predictor) sideChannelFailed(channel string, err error) {
	metrics.SideChannelFailures.WithLabelValues(channel).Inc()
	p.log.WithError(err).WithField("channel", channel).Warn("prediction side channel failed")
}

// cacheKey covers the schema fingerprint so results computed against other
// artifacts are never reused. Inputs that cannot be marshaled (NaN, Inf) are
// not cacheable.
func (p *Predictor) cacheKey(in features.RawInput) (string, bool) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("prediction:%s:%s", p.fingerprint, hex.EncodeToString(sum[:])), true
}

func (p *Predictor) record(in features.RawInput, res PredictionResult) *models.PredictionRecord {
	return &models.PredictionRecord{
		TS:                p.now().UTC(),
		Longitude:         in.Longitude,
		Latitude:          in.Latitude,
		HousingMedianAge:  in.HousingMedianAge,
		TotalRooms:        in.TotalRooms,
		Population:        in.Population,
		Households:        in.Households,
		MedianIncome:      in.MedianIncome,
		OceanProximity:    string(in.OceanProximity),
		Margin:            in.Margin,
		PointEstimate:     res.PointEstimate,
		LowerBound:        res.LowerBound,
		UpperBound:        res.UpperBound,
		Confidence:        res.Confidence,
		SchemaFingerprint: p.fingerprint,
	}
}
