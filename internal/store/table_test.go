package store

import (
	"context"
	"errors"
	"testing"

	"github.com/evyataryagoni/aqi2cigarette/internal/exposure"
	"github.com/evyataryagoni/aqi2cigarette/internal/models"
)

// TestLoadTable_NilStore tests the built-in fallback
func TestLoadTable_NilStore(t *testing.T) {
	table, err := LoadTable(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Bands()) != len(exposure.DefaultBreakpoints()) {
		t.Errorf("expected the EPA table, got %d bands", len(table.Bands()))
	}
}

// TestLoadTable_FromStore tests that the store's bands are used
func TestLoadTable_FromStore(t *testing.T) {
	mockStore := NewMockStore([]models.Breakpoint{{AQILow: 0, AQIHigh: 100, PM25Low: 0, PM25High: 44}})

	table, err := LoadTable(context.Background(), mockStore)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mockStore.LoadCalls != 1 {
		t.Errorf("expected 1 load call, got %d", mockStore.LoadCalls)
	}

	est, _ := table.Convert(50)
	if est.Text != "1.00" {
		t.Errorf("expected 1.00 from custom table, got %s", est.Text)
	}
}

// TestLoadTable_StoreError tests propagation of load errors
func TestLoadTable_StoreError(t *testing.T) {
	mockStore := NewMockStore(nil)
	mockStore.LoadError = errors.New("connection refused")

	if _, err := LoadTable(context.Background(), mockStore); err == nil {
		t.Error("expected error, got nil")
	}
}

// TestLoadTable_InvalidBands tests that bad tables are rejected
func TestLoadTable_InvalidBands(t *testing.T) {
	mockStore := NewMockStore([]models.Breakpoint{
		{AQILow: 0, AQIHigh: 50, PM25Low: 0, PM25High: 12},
		{AQILow: 30, AQIHigh: 100, PM25Low: 12.1, PM25High: 35.4},
	})

	_, err := LoadTable(context.Background(), mockStore)

	if !errors.Is(err, exposure.ErrInvalidTable) {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}

// TestMockStore_Close tests close tracking
func TestMockStore_Close(t *testing.T) {
	mockStore := NewMockStore(nil)
	mockStore.CloseError = errors.New("failed to close connection")

	if err := mockStore.Close(); err == nil {
		t.Error("expected close error")
	}
	if !mockStore.CloseCalled {
		t.Error("expected Close to be tracked")
	}
}
