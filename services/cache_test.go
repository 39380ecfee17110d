package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"housing-prediction-api/config"

	"github.com/go-redis/redismock/v9"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	for name, cache := range map[string]*CacheService{
		"nil service": nil,
		"nil client":  NewCacheServiceFromClient(nil),
	} {
		t.Run(name, func(t *testing.T) {
			if cache.Available() {
				t.Fatal("Available() should be false")
			}
			var dest PredictionResult
			found, err := cache.Get(ctx, "k", &dest)
			if found || err != nil {
				t.Errorf("Get() = %v, %v, want miss", found, err)
			}
			if err := cache.Set(ctx, "k", dest, time.Minute); err != nil {
				t.Errorf("Set() error: %v", err)
			}
			if err := cache.Publish(ctx, PredictionsChannel, dest); err != nil {
				t.Errorf("Publish() error: %v", err)
			}
			if ps := cache.Subscribe(ctx, PredictionsChannel); ps != nil {
				t.Error("Subscribe() should return nil")
			}
			if err := cache.Close(); err != nil {
				t.Errorf("Close() error: %v", err)
			}
		})
	}
}

func TestNewCacheServiceUnreachable(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cache, err := NewCacheService(config.RedisConfig{
		Host:            "127.0.0.1",
		Port:            1,
		ConnectAttempts: 1,
	}, logger)
	if err == nil {
		t.Fatal("expected error for unreachable redis")
	}
	if cache.Available() {
		t.Error("cache should be disabled after a failed connect")
	}
	if len(hook.AllEntries()) != 1 {
		t.Errorf("logged %d entries, want 1", len(hook.AllEntries()))
	}
}

func TestCacheServiceRoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCacheServiceFromClient(db)
	ctx := context.Background()

	confidence := 64.53
	want := PredictionResult{
		PointEstimate: 128918,
		LowerBound:    116026.2,
		UpperBound:    141809.8,
		Margin:        10,
		Confidence:    &confidence,
	}
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}

	mock.ExpectGet("prediction:k").RedisNil()
	mock.ExpectSet("prediction:k", data, time.Minute).SetVal("OK")
	mock.ExpectGet("prediction:k").SetVal(string(data))
	mock.ExpectGet("prediction:k").SetErr(errors.New("i/o timeout"))

	var got PredictionResult
	if found, err := cache.Get(ctx, "prediction:k", &got); found || err != nil {
		t.Fatalf("Get() before Set = %v, %v, want miss", found, err)
	}
	if err := cache.Set(ctx, "prediction:k", want, time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	found, err := cache.Get(ctx, "prediction:k", &got)
	if !found || err != nil {
		t.Fatalf("Get() after Set = %v, %v, want hit", found, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cached result mismatch (-want +got):\n%s", diff)
	}
	if _, err := cache.Get(ctx, "prediction:k", &got); err == nil {
		t.Error("Get() should report a redis error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCacheServicePublish(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCacheServiceFromClient(db)

	msg := map[string]string{"ocean_proximity": "INLAND"}
	data, _ := json.Marshal(msg)
	mock.ExpectPublish(PredictionsChannel, data).SetVal(1)

	if err := cache.Publish(context.Background(), PredictionsChannel, msg); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
