package access

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recepciones-api/internal/domain"
)

// Saga secuencia ordenada de pasos independientes contra el almacén, sin transacción
// entre ellos. Si un paso falla tras confirmar otros, devuelve *domain.PartialMutationError;
// los pasos deben ser idempotentes para que un reintento converja.
type Saga struct {
	operation string
	log       zerolog.Logger
	steps     []sagaStep
}

type sagaStep struct {
	name string
	run  func(ctx context.Context) error
}

// StepRecord entrada del registro de operación de un paso ejecutado.
type StepRecord struct {
	Step     string
	Err      error
	Duration time.Duration
}

// NewSaga crea una saga vacía para la operación indicada.
func NewSaga(operation string, log zerolog.Logger) *Saga {
	return &Saga{operation: operation, log: log}
}

// Step agrega un paso al final de la saga.
func (s *Saga) Step(name string, run func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, sagaStep{name: name, run: run})
	return s
}

// Run ejecuta los pasos en orden y se detiene en el primer fallo.
// Si falla el primer paso no hubo mutación y se devuelve el error tal cual.
func (s *Saga) Run(ctx context.Context) ([]StepRecord, error) {
	records := make([]StepRecord, 0, len(s.steps))
	completed := make([]string, 0, len(s.steps))
	for _, st := range s.steps {
		start := time.Now()
		err := st.run(ctx)
		records = append(records, StepRecord{Step: st.name, Err: err, Duration: time.Since(start)})
		if err != nil {
			s.log.Error().Err(err).
				Str("operation", s.operation).
				Str("step", st.name).
				Strs("completed", completed).
				Msg("paso de mutación fallido")
			if len(completed) == 0 {
				return records, err
			}
			return records, &domain.PartialMutationError{
				Operation: s.operation,
				Step:      st.name,
				Completed: completed,
				Err:       err,
			}
		}
		s.log.Debug().Str("operation", s.operation).Str("step", st.name).Msg("paso completado")
		completed = append(completed, st.name)
	}
	return records, nil
}
