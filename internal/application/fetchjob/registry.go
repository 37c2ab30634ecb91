// Package fetchjob administra los trabajos de carga en segundo plano: una
// goroutine por carga, un único slot de resultado y cancelación consultiva
// (la carga remota sigue, pero el resultado tardío se descarta).
package fetchjob

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/pkg/logger"
)

// Status estado de un trabajo.
type Status string

const (
	StatusRunning   Status = "running"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Job un trabajo de carga. El resultado se escribe una sola vez, bajo mu,
// antes de cerrar done.
type Job struct {
	ID   string
	Kind erpdata.Kind

	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	result    *erpdata.Result
	err       error
	cancelled bool
}

// Status estado actual del trabajo.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancelled {
		return StatusCancelled
	}
	select {
	case <-j.done:
		if j.err != nil {
			return StatusFailed
		}
		return StatusDone
	default:
		return StatusRunning
	}
}

// Result resultado y error del trabajo. ErrJobRunning mientras no termine;
// ErrNotFound si fue cancelado (el resultado tardío se descartó).
func (j *Job) Result() (*erpdata.Result, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancelled {
		return nil, domain.ErrNotFound
	}
	select {
	case <-j.done:
	default:
		return nil, domain.ErrJobRunning
	}
	if j.err != nil {
		return nil, j.err
	}
	return j.result, nil
}

// Done canal que se cierra al terminar el trabajo. Para tests.
func (j *Job) Done() <-chan struct{} { return j.done }

// Fetcher el puerto que ejecuta la carga en sí.
type Fetcher interface {
	Fetch(ctx context.Context, kind erpdata.Kind, limit int) (*erpdata.Result, error)
}

// Registry índice de trabajos por id.
type Registry struct {
	fetcher Fetcher
	log     *logger.Logger

	mu   sync.Mutex
	jobs map[string]*Job
}

// NewRegistry construye el registro.
func NewRegistry(fetcher Fetcher, log *logger.Logger) *Registry {
	return &Registry{fetcher: fetcher, log: log, jobs: map[string]*Job{}}
}

// Start lanza un trabajo de carga y devuelve su id de inmediato. Los
// resultados de cargas anteriores ya terminadas se desechan aquí: una nueva
// carga reemplaza a la vista previa, nada se retiene entre cargas.
func (r *Registry) Start(kind erpdata.Kind, limit int) (*Job, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{
		ID:     uuid.NewString(),
		Kind:   kind,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	r.mu.Lock()
	for id, prev := range r.jobs {
		// los trabajos en curso siguen consultables hasta terminar
		if prev.Status() != StatusRunning {
			delete(r.jobs, id)
		}
	}
	r.jobs[job.ID] = job
	r.mu.Unlock()

	r.log.Debug().Str("job", job.ID).Str("tipo", string(kind)).Msg("trabajo de carga iniciado")

	go func() {
		defer cancel()
		res, err := r.fetcher.Fetch(ctx, kind, limit)

		job.mu.Lock()
		if !job.cancelled {
			job.result, job.err = res, err
		}
		job.mu.Unlock()
		close(job.done)
	}()

	return job, nil
}

// Get busca un trabajo por id.
func (r *Registry) Get(id string) (*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

// Cancel marca el trabajo como cancelado y lo quita del índice. La llamada
// remota en curso recibe la cancelación de contexto; si ya había terminado,
// su resultado simplemente se descarta.
func (r *Registry) Cancel(id string) error {
	r.mu.Lock()
	job, ok := r.jobs[id]
	if ok {
		delete(r.jobs, id)
	}
	r.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}

	job.mu.Lock()
	job.cancelled = true
	job.result, job.err = nil, nil
	job.mu.Unlock()
	job.cancel()

	r.log.Debug().Str("job", job.ID).Msg("trabajo de carga cancelado")
	return nil
}
