package provisioning

import (
	"fmt"
	"time"
)

// Phase is one step of experiment provisioning or teardown.
type Phase interface {
	Name() string
	Provision(ctx *Context) error
}

// RunPhases executes all phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("starting with %d phases", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Event(Event{Type: EventPhaseStarted, Phase: name, Message: "starting"})

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Event(Event{Type: EventPhaseFailed, Phase: name, Message: err.Error()})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:    EventPhaseCompleted,
			Phase:   name,
			Message: fmt.Sprintf("completed in %v", time.Since(phaseStart).Round(time.Millisecond)),
		})
	}

	ctx.Observer.Printf("done in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// Up returns the phases that bring an experiment up, in order.
func Up() []Phase {
	return []Phase{
		&ValidatePhase{},
		&KeypairPhase{},
		&LeasePhase{},
		&ContainerPhase{},
	}
}

// Down returns the phases that tear an experiment down, in order.
func Down() []Phase {
	return []Phase{
		&ContainerTeardownPhase{},
		&LeaseTeardownPhase{},
		&KeypairTeardownPhase{},
	}
}
