package fetchjob

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/pkg/logger"
)

// fetcherFunc adapta una función al puerto Fetcher.
type fetcherFunc func(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error)

func (f fetcherFunc) Fetch(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error) {
	return f(ctx, kind, limit)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func waitDone(t *testing.T, job *Job) {
	t.Helper()
	select {
	case <-job.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("el trabajo no terminó a tiempo")
	}
}

func TestJobLifecycle(t *testing.T) {
	release := make(chan struct{})
	reg := NewRegistry(fetcherFunc(func(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error) {
		<-release
		return &erpdata.Result{Kind: kind, Sales: []entity.SaleOrder{{ID: 1}}}, nil
	}), testLogger())

	job, err := reg.Start(erpdata.KindSales, 50)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, job.Status())

	_, err = job.Result()
	assert.ErrorIs(t, err, domain.ErrJobRunning)

	close(release)
	waitDone(t, job)

	assert.Equal(t, StatusDone, job.Status())
	res, err := job.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count())

	got, err := reg.Get(job.ID)
	require.NoError(t, err)
	assert.Same(t, job, got)
}

func TestJobFailure(t *testing.T) {
	reg := NewRegistry(fetcherFunc(func(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error) {
		return nil, domain.ErrNotAuthenticated
	}), testLogger())

	job, err := reg.Start(erpdata.KindPurchases, 0)
	require.NoError(t, err)
	waitDone(t, job)

	assert.Equal(t, StatusFailed, job.Status())
	_, err = job.Result()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestCancelDiscardsLateResult(t *testing.T) {
	release := make(chan struct{})
	reg := NewRegistry(fetcherFunc(func(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error) {
		<-release
		// la carga "terminó" después de la cancelación
		return &erpdata.Result{Kind: kind, Sales: []entity.SaleOrder{{ID: 1}}}, nil
	}), testLogger())

	job, err := reg.Start(erpdata.KindSales, 50)
	require.NoError(t, err)

	require.NoError(t, reg.Cancel(job.ID))
	assert.Equal(t, StatusCancelled, job.Status())

	close(release)
	waitDone(t, job)

	// el resultado tardío se descartó y el trabajo ya no está en el índice
	assert.Equal(t, StatusCancelled, job.Status())
	_, err = job.Result()
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = reg.Get(job.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelPropagatesContext(t *testing.T) {
	gotCancel := make(chan struct{})
	reg := NewRegistry(fetcherFunc(func(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error) {
		<-ctx.Done()
		close(gotCancel)
		return nil, ctx.Err()
	}), testLogger())

	job, err := reg.Start(erpdata.KindManufacturing, 20)
	require.NoError(t, err)
	require.NoError(t, reg.Cancel(job.ID))

	select {
	case <-gotCancel:
	case <-time.After(2 * time.Second):
		t.Fatal("la cancelación no llegó al contexto de la carga")
	}
}

func TestStartEvictsFinishedJobs(t *testing.T) {
	release := make(chan struct{})
	reg := NewRegistry(fetcherFunc(func(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error) {
		if kind == erpdata.KindPurchases {
			<-release
		}
		return &erpdata.Result{Kind: kind, Sales: []entity.SaleOrder{{ID: 1}}}, nil
	}), testLogger())

	first, err := reg.Start(erpdata.KindSales, 50)
	require.NoError(t, err)
	waitDone(t, first)

	running, err := reg.Start(erpdata.KindPurchases, 50)
	require.NoError(t, err)

	// una nueva carga desecha los resultados ya terminados
	third, err := reg.Start(erpdata.KindSales, 50)
	require.NoError(t, err)

	_, err = reg.Get(first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el trabajo terminado se desecha")

	// el trabajo en curso sigue consultable
	got, err := reg.Get(running.ID)
	require.NoError(t, err)
	assert.Same(t, running, got)

	close(release)
	waitDone(t, running)
	waitDone(t, third)
}

func TestStartInvalidKind(t *testing.T) {
	reg := NewRegistry(fetcherFunc(func(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error) {
		return nil, nil
	}), testLogger())

	_, err := reg.Start(erpdata.Kind("rentals"), 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancelUnknownJob(t *testing.T) {
	reg := NewRegistry(fetcherFunc(func(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error) {
		return nil, nil
	}), testLogger())

	assert.ErrorIs(t, reg.Cancel("no-such-job"), domain.ErrNotFound)
}
